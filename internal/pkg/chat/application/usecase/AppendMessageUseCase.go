package usecase

import (
	"context"
	"fmt"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// AppendMessageInput carries one message to append to a room's log.
type AppendMessageInput struct {
	RoomID   int64
	SenderID int64
	Content  string
}

// AppendMessageUseCase persists a message and returns the stored record
// with its store-assigned ID and timestamp. The membership check here is
// the final gate; callers are expected to have verified it already.
type AppendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewAppendMessageUseCase(repo repository.ChatRepository) *AppendMessageUseCase {
	return &AppendMessageUseCase{Repo: repo}
}

func (uc *AppendMessageUseCase) Execute(ctx context.Context, in AppendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(in.RoomID, in.SenderID, in.Content)
	if err != nil {
		return nil, err
	}

	isMember, err := uc.Repo.IsMember(ctx, in.RoomID, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !isMember {
		return nil, chat.ErrNotAMember
	}

	saved, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
