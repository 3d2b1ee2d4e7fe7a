package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestTelegram_SendPostsMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("body is not valid JSON: %v", err)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	sink := NewTelegramWithBaseURL(zap.NewNop(), "token-123", "chat-456", srv.URL)
	if err := sink.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bottoken-123/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.ChatID != "chat-456" || gotBody.Text != "hello" || gotBody.ParseMode != "HTML" {
		t.Errorf("request = %+v", gotBody)
	}
}

func TestTelegram_SendReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	sink := NewTelegramWithBaseURL(zap.NewNop(), "token", "chat", srv.URL)
	if err := sink.Send(context.Background(), "hello"); err == nil {
		t.Fatal("want error for non-2xx response")
	}
}

func TestTelegram_UnconfiguredIsNoOp(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	sink := NewTelegramWithBaseURL(zap.NewNop(), "", "", srv.URL)
	for i := 0; i < 3; i++ {
		if err := sink.Send(context.Background(), "ignored"); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	if requests != 0 {
		t.Errorf("requests = %d, want none without credentials", requests)
	}
}
