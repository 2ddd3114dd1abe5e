package usecase

import (
	"context"
	"fmt"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// ListRoomsInput wraps the user whose rooms are listed.
type ListRoomsInput struct {
	UserID int64
}

// ListRoomsUseCase returns the active rooms the user belongs to.
type ListRoomsUseCase struct {
	Repo repository.ChatRepository
}

func NewListRoomsUseCase(repo repository.ChatRepository) *ListRoomsUseCase {
	return &ListRoomsUseCase{Repo: repo}
}

func (uc *ListRoomsUseCase) Execute(ctx context.Context, in ListRoomsInput) ([]chat.Room, error) {
	if in.UserID <= 0 {
		return nil, chat.ErrUserNotFound
	}
	rooms, err := uc.Repo.RoomsForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rooms, nil
}
