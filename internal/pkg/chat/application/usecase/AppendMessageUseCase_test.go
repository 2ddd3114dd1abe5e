package usecase

import (
	"context"
	"errors"
	"testing"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	adapter "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/adapter"
)

func newRoomWithMembers(t *testing.T, repo *adapter.MemChatRepository, memberIDs ...int64) *chat.Room {
	t.Helper()
	room, err := repo.CreateRoomWithMembers(context.Background(), chat.Room{Kind: chat.RoomGroup, Name: "test"}, memberIDs)
	if err != nil {
		t.Fatalf("CreateRoomWithMembers(): %v", err)
	}
	return room
}

func TestAppendMessage_EmptyContentRejected(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemChatRepository()
	room := newRoomWithMembers(t, repo, 1, 2)
	uc := NewAppendMessageUseCase(repo)

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, AppendMessageInput{RoomID: room.ID, SenderID: 1, Content: tt.content})
			if !errors.Is(err, chat.ErrEmptyMessage) {
				t.Errorf("Execute() error = %v, want ErrEmptyMessage", err)
			}
		})
	}

	if got := repo.MessageCount(); got != 0 {
		t.Errorf("storage changed by rejected messages: %d messages stored", got)
	}
}

func TestAppendMessage_NonMemberRejected(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemChatRepository()
	room := newRoomWithMembers(t, repo, 1, 2)
	uc := NewAppendMessageUseCase(repo)

	_, err := uc.Execute(ctx, AppendMessageInput{RoomID: room.ID, SenderID: 99, Content: "hello"})
	if !errors.Is(err, chat.ErrNotAMember) {
		t.Errorf("Execute() error = %v, want ErrNotAMember", err)
	}
	if got := repo.MessageCount(); got != 0 {
		t.Errorf("storage changed by rejected message: %d messages stored", got)
	}
}

func TestAppendMessage_AssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemChatRepository()
	room := newRoomWithMembers(t, repo, 1, 2)
	uc := NewAppendMessageUseCase(repo)

	msg, err := uc.Execute(ctx, AppendMessageInput{RoomID: room.ID, SenderID: 1, Content: "  hello  "})
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if msg.ID == 0 {
		t.Error("message ID not assigned")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("message timestamp not assigned")
	}
	if msg.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello")
	}
	if msg.RoomID != room.ID || msg.SenderID != 1 {
		t.Errorf("message = %+v, want room %d sender 1", msg, room.ID)
	}
}

func TestAppendMessage_MonotonicIDsPerStream(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemChatRepository()
	room := newRoomWithMembers(t, repo, 1, 2)
	uc := NewAppendMessageUseCase(repo)

	var last int64
	for _, content := range []string{"a", "b", "c"} {
		msg, err := uc.Execute(ctx, AppendMessageInput{RoomID: room.ID, SenderID: 1, Content: content})
		if err != nil {
			t.Fatalf("Execute(%q): %v", content, err)
		}
		if msg.ID <= last {
			t.Errorf("message IDs not monotonic: %d after %d", msg.ID, last)
		}
		last = msg.ID
	}
}
