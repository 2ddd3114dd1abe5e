package adapter

import (
	"context"
	"fmt"
	"time"

	cache "github.com/wont-laylow/punch-chat/internal/infrastructure/cache/port"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// membershipTTL bounds how long a cached positive membership check lives.
const membershipTTL = 60 * time.Second

// CachedChatRepository decorates a ChatRepository with a cache for the
// hot-path membership checks the realtime session and message store hit
// on every frame. Only positive results are cached, so a freshly granted
// membership is visible immediately; cache failures fall through to the
// inner repository.
type CachedChatRepository struct {
	repository.ChatRepository
	cache cache.Cache
}

func NewCachedChatRepository(inner repository.ChatRepository, c cache.Cache) *CachedChatRepository {
	return &CachedChatRepository{ChatRepository: inner, cache: c}
}

var _ repository.ChatRepository = (*CachedChatRepository)(nil)

func (r *CachedChatRepository) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	key := membershipKey(roomID, userID)

	// Misses and cache transport errors both fall through to the inner
	// repository; the cache is never a reason to fail the check.
	if v, err := r.cache.Get(ctx, key); err == nil && v == "1" {
		return true, nil
	}

	ok, err := r.ChatRepository.IsMember(ctx, roomID, userID)
	if err != nil {
		return false, err
	}
	if ok {
		_ = r.cache.Set(ctx, key, "1", membershipTTL)
	}
	return ok, nil
}

// AddMember writes through and primes the cache for the new member.
func (r *CachedChatRepository) AddMember(ctx context.Context, roomID, userID int64) error {
	if err := r.ChatRepository.AddMember(ctx, roomID, userID); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, membershipKey(roomID, userID), "1", membershipTTL)
	return nil
}

// CreateRoomWithMembers writes through and primes membership entries for
// every initial member.
func (r *CachedChatRepository) CreateRoomWithMembers(ctx context.Context, room chat.Room, memberIDs []int64) (*chat.Room, error) {
	created, err := r.ChatRepository.CreateRoomWithMembers(ctx, room, memberIDs)
	if err != nil {
		return nil, err
	}
	for _, uid := range memberIDs {
		_ = r.cache.Set(ctx, membershipKey(created.ID, uid), "1", membershipTTL)
	}
	return created, nil
}

func membershipKey(roomID, userID int64) string {
	return fmt.Sprintf("member:%d:%d", roomID, userID)
}
