package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// Publish sends an event to the user's open connections. Use uuid.Nil to reach everyone.
func (h *Hub) Publish(userID uuid.UUID, eventType string, payload any) {
	if h == nil || eventType == "" {
		return
	}

	evt := Event{
		Type:      eventType,
		UserID:    userID,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logf("[WS] event marshal failed type=%s err=%v", eventType, err)
		return
	}

	h.Send(userID, b)
}
