package chat

import (
	"strings"
	"time"
)

// RoomKind distinguishes deduplicated 1:1 rooms from named group rooms.
type RoomKind string

const (
	RoomDirect RoomKind = "direct"
	RoomGroup  RoomKind = "group"
)

// Room is a conversation container. Direct rooms have no name and are
// unique per unordered participant pair; group rooms are always created
// fresh and carry a display name.
type Room struct {
	ID        int64     `db:"id"`
	Kind      RoomKind  `db:"kind"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership captures who belongs to a room.
// Primary key: (RoomID, UserID).
type Membership struct {
	RoomID    int64     `db:"room_id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewDirectRoom validates a direct room participant pair and returns the
// room shell plus the normalized (deduplicated, sorted) member IDs.
func NewDirectRoom(participantIDs []int64) (Room, []int64, error) {
	members := dedupeIDs(participantIDs)
	if len(members) != 2 {
		return Room{}, nil, ErrInvalidParticipants
	}
	if members[0] > members[1] {
		members[0], members[1] = members[1], members[0]
	}
	return Room{Kind: RoomDirect, Active: true}, members, nil
}

// NewGroupRoom validates a group room request. The name must be non-empty
// after trimming; an absent name and a blank name are the same failure.
func NewGroupRoom(name string, participantIDs []int64) (Room, []int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Room{}, nil, ErrInvalidName
	}
	members := dedupeIDs(participantIDs)
	if len(members) < 2 {
		return Room{}, nil, ErrInvalidParticipants
	}
	return Room{Kind: RoomGroup, Name: trimmed, Active: true}, members, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
