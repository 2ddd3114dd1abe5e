package task

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	qport "github.com/wont-laylow/punch-chat/internal/infrastructure/queue/port"
	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/session"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
)

// SendMessageTaskType is the queue task name for the HTTP fallback send
// path: the controller enqueues, this worker persists and broadcasts.
const SendMessageTaskType = "chat:send_message"

// SendMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SendMessageTaskPayload struct {
	RoomID   int64  `json:"roomId"`
	SenderID int64  `json:"senderId"`
	Content  string `json:"content"`
}

// RegisterSendMessageTask binds the send-message handler to the server.
// The worker shares the process registry, so a successful append is
// fanned out to live connections exactly like a websocket-originated
// message. Caller-input errors are terminal; persistence errors are
// returned so the adapter's retry policy applies.
func RegisterSendMessageTask(srv qport.Server, appendUC *usecase.AppendMessageUseCase, broadcaster *realtime.Broadcaster) {
	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot fix it, drop the task
			log.Printf("task: dropping undecodable send_message payload: %v", err)
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		msg, err := appendUC.Execute(ctx, usecase.AppendMessageInput{
			RoomID:   p.RoomID,
			SenderID: p.SenderID,
			Content:  p.Content,
		})
		if err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrNotAMember) {
				// invalid input stays invalid on retry; drop the task
				log.Printf("task: dropping invalid send_message for room %d: %v", p.RoomID, err)
				return nil
			}
			return err
		}

		payload, err := session.EncodeMessage(*msg)
		if err != nil {
			return err
		}
		broadcaster.Broadcast(msg.RoomID, payload)
		return nil
	})
}
