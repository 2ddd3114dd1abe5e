package session

import (
	"encoding/json"
	"time"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
)

// inboundFrame is what a client sends: one message's content.
type inboundFrame struct {
	Content string `json:"content"`
}

type ackFrame struct {
	Type   string `json:"type"`
	RoomID int64  `json:"room_id,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// MessageFrame is the wire shape of a persisted message fanned out to a
// room. The queue worker reuses it so HTTP-originated messages look the
// same on the socket as websocket-originated ones.
type MessageFrame struct {
	Type      string    `json:"type"`
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// EncodeMessage serializes a persisted message into its broadcast frame.
func EncodeMessage(m chat.Message) ([]byte, error) {
	return json.Marshal(MessageFrame{
		Type:      "message",
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	})
}
