package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// MemChatRepository is a mutex-guarded in-memory implementation of the
// chat repository port. It backs unit tests and local development; the
// contract matches the pgx adapter, including atomic room creation and
// store-assigned message IDs and timestamps.
type MemChatRepository struct {
	mu          sync.Mutex
	rooms       map[int64]chat.Room
	memberships map[int64]map[int64]struct{} // roomID -> userID set
	messages    []chat.Message

	nextRoomID    int64
	nextMessageID int64
}

func NewMemChatRepository() *MemChatRepository {
	return &MemChatRepository{
		rooms:       make(map[int64]chat.Room),
		memberships: make(map[int64]map[int64]struct{}),
	}
}

var _ repository.ChatRepository = (*MemChatRepository)(nil)

func (r *MemChatRepository) CreateRoomWithMembers(_ context.Context, room chat.Room, memberIDs []int64) (*chat.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextRoomID++
	room.ID = r.nextRoomID
	room.Active = true
	room.CreatedAt = time.Now().UTC()
	r.rooms[room.ID] = room

	members := make(map[int64]struct{}, len(memberIDs))
	for _, uid := range memberIDs {
		members[uid] = struct{}{}
	}
	r.memberships[room.ID] = members

	return &room, nil
}

func (r *MemChatRepository) FindDirectRoom(_ context.Context, userA, userB int64) (*chat.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, room := range r.rooms {
		if room.Kind != chat.RoomDirect || !room.Active {
			continue
		}
		members := r.memberships[id]
		if len(members) != 2 {
			continue
		}
		if _, okA := members[userA]; !okA {
			continue
		}
		if _, okB := members[userB]; okB {
			found := room
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemChatRepository) RoomByID(_ context.Context, roomID int64) (*chat.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (r *MemChatRepository) RoomForUser(_ context.Context, roomID, userID int64) (*chat.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok || !room.Active {
		return nil, nil
	}
	if _, member := r.memberships[roomID][userID]; !member {
		return nil, nil
	}
	return &room, nil
}

func (r *MemChatRepository) RoomsForUser(_ context.Context, userID int64) ([]chat.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rooms []chat.Room
	for id, room := range r.rooms {
		if !room.Active {
			continue
		}
		if _, member := r.memberships[id][userID]; member {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID > rooms[j].ID })
	return rooms, nil
}

func (r *MemChatRepository) AddMember(_ context.Context, roomID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.memberships[roomID]
	if members == nil {
		members = make(map[int64]struct{})
		r.memberships[roomID] = members
	}
	members[userID] = struct{}{}
	return nil
}

func (r *MemChatRepository) IsMember(_ context.Context, roomID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.memberships[roomID][userID]
	return ok, nil
}

func (r *MemChatRepository) SaveMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMessageID++
	m.ID = r.nextMessageID
	m.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, m)
	return &m, nil
}

func (r *MemChatRepository) MessagesByRoom(_ context.Context, roomID int64, limit, offset int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var all []chat.Message
	for i := len(r.messages) - 1; i >= 0; i-- { // newest first
		if r.messages[i].RoomID == roomID {
			all = append(all, r.messages[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// MessageCount reports how many messages are stored, across all rooms.
// Test helper for "storage unchanged" assertions.
func (r *MemChatRepository) MessageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// MemUserRepository is the in-memory counterpart of PgUserRepository.
type MemUserRepository struct {
	mu    sync.Mutex
	users map[int64]chat.User
}

func NewMemUserRepository(users ...chat.User) *MemUserRepository {
	r := &MemUserRepository{users: make(map[int64]chat.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

var _ repository.UserRepository = (*MemUserRepository)(nil)

func (r *MemUserRepository) FindByUsername(_ context.Context, username string) (*chat.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepository) FindByID(_ context.Context, id int64) (*chat.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
