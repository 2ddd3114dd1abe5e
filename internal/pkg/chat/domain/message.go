package chat

import (
	"strings"
	"time"
)

// Message is an immutable log entry in a room. ID and CreatedAt are
// assigned by the store at persistence time, never by the client.
type Message struct {
	ID        int64     `db:"id"`
	RoomID    int64     `db:"room_id"`
	SenderID  int64     `db:"sender_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// NewMessage normalizes and validates an unsaved message.
func NewMessage(roomID, senderID int64, content string) (Message, error) {
	if roomID <= 0 || senderID <= 0 {
		return Message{}, ErrRoomNotFound
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}
	return Message{RoomID: roomID, SenderID: senderID, Content: trimmed}, nil
}
