package usecase

import (
	"context"
	"fmt"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// ResolveRoomInput carries a request to start a conversation.
// Direct rooms need exactly two distinct participants and no name;
// group rooms need a name and at least two participants.
type ResolveRoomInput struct {
	Kind           chat.RoomKind
	ParticipantIDs []int64
	Name           string
}

// ResolveRoomUseCase returns the canonical room for a participant set,
// creating one only when none exists. Direct rooms are deduplicated per
// unordered pair; group rooms are always created fresh.
type ResolveRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewResolveRoomUseCase(repo repository.ChatRepository) *ResolveRoomUseCase {
	return &ResolveRoomUseCase{Repo: repo}
}

func (uc *ResolveRoomUseCase) Execute(ctx context.Context, in ResolveRoomInput) (*chat.Room, error) {
	switch in.Kind {
	case chat.RoomDirect:
		return uc.resolveDirect(ctx, in.ParticipantIDs)
	case chat.RoomGroup:
		return uc.createGroup(ctx, in.Name, in.ParticipantIDs)
	default:
		return nil, chat.ErrInvalidParticipants
	}
}

func (uc *ResolveRoomUseCase) resolveDirect(ctx context.Context, participantIDs []int64) (*chat.Room, error) {
	room, members, err := chat.NewDirectRoom(participantIDs)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Repo.FindDirectRoom(ctx, members[0], members[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return existing, nil
	}

	created, err := uc.Repo.CreateRoomWithMembers(ctx, room, members)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}

func (uc *ResolveRoomUseCase) createGroup(ctx context.Context, name string, participantIDs []int64) (*chat.Room, error) {
	room, members, err := chat.NewGroupRoom(name, participantIDs)
	if err != nil {
		return nil, err
	}

	created, err := uc.Repo.CreateRoomWithMembers(ctx, room, members)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
