package usecase

import (
	"context"
	"errors"
	"testing"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	adapter "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/adapter"
)

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	users := adapter.NewMemUserRepository(
		chat.User{ID: 1, Username: "alice", Active: true},
		chat.User{ID: 2, Username: "bob", Active: true},
		chat.User{ID: 3, Username: "carol", Active: true},
		chat.User{ID: 4, Username: "mallory", Active: false},
	)

	setup := func(t *testing.T) (*adapter.MemChatRepository, *chat.Room, *chat.Room) {
		repo := adapter.NewMemChatRepository()
		group, err := repo.CreateRoomWithMembers(ctx, chat.Room{Kind: chat.RoomGroup, Name: "team"}, []int64{1, 2})
		if err != nil {
			t.Fatalf("create group: %v", err)
		}
		direct, err := repo.CreateRoomWithMembers(ctx, chat.Room{Kind: chat.RoomDirect}, []int64{1, 2})
		if err != nil {
			t.Fatalf("create direct: %v", err)
		}
		return repo, group, direct
	}

	t.Run("adds user to group room", func(t *testing.T) {
		repo, group, _ := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		if _, err := uc.Execute(ctx, AddMemberInput{RoomID: group.ID, Username: "carol", ActingUserID: 1}); err != nil {
			t.Fatalf("Execute(): %v", err)
		}
		ok, _ := repo.IsMember(ctx, group.ID, 3)
		if !ok {
			t.Error("carol not a member after add")
		}
	})

	t.Run("rejects direct rooms", func(t *testing.T) {
		repo, _, direct := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		_, err := uc.Execute(ctx, AddMemberInput{RoomID: direct.ID, Username: "carol", ActingUserID: 1})
		if !errors.Is(err, chat.ErrNotGroupRoom) {
			t.Errorf("error = %v, want ErrNotGroupRoom", err)
		}
	})

	t.Run("rejects non-member actor", func(t *testing.T) {
		repo, group, _ := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		_, err := uc.Execute(ctx, AddMemberInput{RoomID: group.ID, Username: "carol", ActingUserID: 3})
		if !errors.Is(err, chat.ErrNotAMember) {
			t.Errorf("error = %v, want ErrNotAMember", err)
		}
	})

	t.Run("rejects unknown or inactive user", func(t *testing.T) {
		repo, group, _ := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		for _, username := range []string{"nobody", "mallory", " "} {
			_, err := uc.Execute(ctx, AddMemberInput{RoomID: group.ID, Username: username, ActingUserID: 1})
			if !errors.Is(err, chat.ErrUserNotFound) {
				t.Errorf("Execute(%q) error = %v, want ErrUserNotFound", username, err)
			}
		}
	})

	t.Run("rejects existing member", func(t *testing.T) {
		repo, group, _ := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		_, err := uc.Execute(ctx, AddMemberInput{RoomID: group.ID, Username: "bob", ActingUserID: 1})
		if !errors.Is(err, chat.ErrAlreadyMember) {
			t.Errorf("error = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("rejects unknown room", func(t *testing.T) {
		repo, _, _ := setup(t)
		uc := NewAddMemberUseCase(repo, users)

		_, err := uc.Execute(ctx, AddMemberInput{RoomID: 999, Username: "carol", ActingUserID: 1})
		if !errors.Is(err, chat.ErrRoomNotFound) {
			t.Errorf("error = %v, want ErrRoomNotFound", err)
		}
	})
}
