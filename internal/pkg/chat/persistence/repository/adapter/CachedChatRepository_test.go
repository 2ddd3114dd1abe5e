package adapter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cache "github.com/wont-laylow/punch-chat/internal/infrastructure/cache/port"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// fakeCache is a map-backed Cache. TTLs are ignored; failing flips every
// operation into an error to exercise the fall-through path.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return "", errors.New("cache down")
	}
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache down")
	}
	c.values[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                   { return nil }

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// spyRepo counts how often the inner repository answers membership checks.
type spyRepo struct {
	repository.ChatRepository
	isMemberCalls int
}

func (s *spyRepo) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	s.isMemberCalls++
	return s.ChatRepository.IsMember(ctx, roomID, userID)
}

func newCachedFixture(t *testing.T) (*CachedChatRepository, *spyRepo, *fakeCache, *chat.Room) {
	t.Helper()
	spy := &spyRepo{ChatRepository: NewMemChatRepository()}
	c := newFakeCache()
	cached := NewCachedChatRepository(spy, c)

	room, err := spy.CreateRoomWithMembers(context.Background(),
		chat.Room{Kind: chat.RoomGroup, Name: "test"}, []int64{1, 2})
	if err != nil {
		t.Fatalf("CreateRoomWithMembers(): %v", err)
	}
	return cached, spy, c, room
}

func TestCachedChatRepository_HitSkipsInnerRepository(t *testing.T) {
	ctx := context.Background()
	cached, spy, _, room := newCachedFixture(t)

	for i := 0; i < 3; i++ {
		ok, err := cached.IsMember(ctx, room.ID, 1)
		if err != nil || !ok {
			t.Fatalf("IsMember() = %v, %v, want true", ok, err)
		}
	}
	if spy.isMemberCalls != 1 {
		t.Errorf("inner IsMember called %d times, want 1 (later checks served from cache)", spy.isMemberCalls)
	}
}

func TestCachedChatRepository_NegativeResultsNotCached(t *testing.T) {
	ctx := context.Background()
	cached, spy, c, room := newCachedFixture(t)

	ok, err := cached.IsMember(ctx, room.ID, 99)
	if err != nil || ok {
		t.Fatalf("IsMember() = %v, %v, want false", ok, err)
	}
	if c.has(membershipKey(room.ID, 99)) {
		t.Fatal("negative membership result was cached")
	}

	// Once the user joins, the very next check must see it.
	if err := cached.AddMember(ctx, room.ID, 99); err != nil {
		t.Fatalf("AddMember(): %v", err)
	}
	calls := spy.isMemberCalls
	ok, err = cached.IsMember(ctx, room.ID, 99)
	if err != nil || !ok {
		t.Fatalf("IsMember() after AddMember = %v, %v, want true", ok, err)
	}
	if spy.isMemberCalls != calls {
		t.Errorf("AddMember did not prime the cache: inner repository consulted again")
	}
}

func TestCachedChatRepository_CreateRoomPrimesAllMembers(t *testing.T) {
	ctx := context.Background()
	spy := &spyRepo{ChatRepository: NewMemChatRepository()}
	c := newFakeCache()
	cached := NewCachedChatRepository(spy, c)

	room, err := cached.CreateRoomWithMembers(ctx, chat.Room{Kind: chat.RoomGroup, Name: "team"}, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("CreateRoomWithMembers(): %v", err)
	}
	for _, uid := range []int64{1, 2, 3} {
		if !c.has(membershipKey(room.ID, uid)) {
			t.Errorf("membership for user %d not primed", uid)
		}
	}
}

func TestCachedChatRepository_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	cached, spy, c, room := newCachedFixture(t)
	c.failing = true

	ok, err := cached.IsMember(ctx, room.ID, 1)
	if err != nil || !ok {
		t.Fatalf("IsMember() with failing cache = %v, %v, want true", ok, err)
	}
	if spy.isMemberCalls != 1 {
		t.Errorf("inner IsMember called %d times, want 1", spy.isMemberCalls)
	}
}
