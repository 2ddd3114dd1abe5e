package usecase

import (
	"context"
	"fmt"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch a room's message history.
type GetMessageInput struct {
	RoomID int64
	UserID int64
	Limit  int
	Offset int
}

// GetMessageUseCase returns a room's messages, newest first, for a
// member of the room.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	room, err := uc.Repo.RoomForUser(ctx, in.RoomID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if room == nil {
		return nil, chat.ErrNotAMember
	}

	msgs, err := uc.Repo.MessagesByRoom(ctx, in.RoomID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
