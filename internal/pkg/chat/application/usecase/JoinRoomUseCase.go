package usecase

import (
	"context"
	"fmt"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// JoinRoomInput validates a request to attach a live session to a room.
type JoinRoomInput struct {
	RoomID int64
	UserID int64
}

// JoinRoomUseCase ensures the room exists, is active, and the user is a
// member before the realtime session registers its connection.
type JoinRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinRoomUseCase(repo repository.ChatRepository) *JoinRoomUseCase {
	return &JoinRoomUseCase{Repo: repo}
}

func (uc *JoinRoomUseCase) Execute(ctx context.Context, in JoinRoomInput) (*chat.Room, error) {
	if in.RoomID <= 0 || in.UserID <= 0 {
		return nil, chat.ErrRoomNotFound
	}

	room, err := uc.Repo.RoomForUser(ctx, in.RoomID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if room == nil {
		return nil, chat.ErrNotAMember
	}
	return room, nil
}
