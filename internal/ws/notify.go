package ws

import (
	"encoding/json"
	"time"
)

// DiscoveryCompletedEvent is pushed after every discovery cycle so
// dashboards can refresh their listings without polling.
type DiscoveryCompletedEvent struct {
	Type       string `json:"type"`
	Discovered int    `json:"discovered"`
	Persisted  int    `json:"persisted"`
	Notified   int    `json:"notified"`
	Timestamp  string `json:"timestamp"`
}

func (h *Hub) NotifyDiscoveryCompleted(discovered, persisted, notified int) {
	if h == nil {
		return
	}

	evt := DiscoveryCompletedEvent{
		Type:       "discovery_completed",
		Discovered: discovered,
		Persisted:  persisted,
		Notified:   notified,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
