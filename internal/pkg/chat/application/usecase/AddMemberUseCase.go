package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// AddMemberInput adds a user, looked up by username, to a group room.
type AddMemberInput struct {
	RoomID       int64
	Username     string
	ActingUserID int64
}

// AddMemberUseCase grows a group room's membership. The acting user must
// already belong to the room; direct rooms never grow.
type AddMemberUseCase struct {
	Repo  repository.ChatRepository
	Users repository.UserRepository
}

func NewAddMemberUseCase(repo repository.ChatRepository, users repository.UserRepository) *AddMemberUseCase {
	return &AddMemberUseCase{Repo: repo, Users: users}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, in AddMemberInput) (*chat.Room, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, chat.ErrUserNotFound
	}

	room, err := uc.Repo.RoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if room == nil || !room.Active {
		return nil, chat.ErrRoomNotFound
	}
	if room.Kind != chat.RoomGroup {
		return nil, chat.ErrNotGroupRoom
	}

	acting, err := uc.Repo.IsMember(ctx, in.RoomID, in.ActingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !acting {
		return nil, chat.ErrNotAMember
	}

	user, err := uc.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil || !user.Active {
		return nil, chat.ErrUserNotFound
	}

	already, err := uc.Repo.IsMember(ctx, in.RoomID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if already {
		return nil, chat.ErrAlreadyMember
	}

	if err := uc.Repo.AddMember(ctx, in.RoomID, user.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return room, nil
}
