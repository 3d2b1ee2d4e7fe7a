// Package notify is the outbound chat notification sink. Delivery is best
// effort: the discovery pipeline logs failures and moves on.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 5 * time.Second

// Notifier accepts a formatted message for fire-and-forget delivery.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Telegram delivers messages through the bot sendMessage API. An instance
// without credentials is a valid no-op sink.
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
	logger   *zap.Logger

	warnedUnconfigured atomic.Bool
}

func NewTelegram(logger *zap.Logger, botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: strings.TrimSpace(botToken),
		chatID:   strings.TrimSpace(chatID),
		apiBase:  "https://api.telegram.org",
		client:   &http.Client{Timeout: sendTimeout},
		logger:   logger,
	}
}

// NewTelegramWithBaseURL points the sink at a stub API for tests.
func NewTelegramWithBaseURL(logger *zap.Logger, botToken, chatID, apiBase string) *Telegram {
	t := NewTelegram(logger, botToken, chatID)
	t.apiBase = strings.TrimRight(apiBase, "/")
	return t
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (t *Telegram) Send(ctx context.Context, message string) error {
	if t.botToken == "" || t.chatID == "" {
		if t.warnedUnconfigured.CompareAndSwap(false, true) {
			t.logger.Warn("telegram not configured, notifications disabled")
		}
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      message,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage status %d", resp.StatusCode)
	}
	return nil
}
