package repository

import (
	"context"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
)

// ChatRepository defines persistence operations for the chat domain.
// Implementations must make CreateRoomWithMembers atomic: a room without
// its memberships must never be observable.
type ChatRepository interface {
	// CreateRoomWithMembers persists the room and one membership per
	// member ID in a single transaction and returns the stored room
	// with its assigned ID and timestamp.
	CreateRoomWithMembers(ctx context.Context, room chat.Room, memberIDs []int64) (*chat.Room, error)

	// FindDirectRoom returns the active direct room whose membership set
	// is exactly {userA, userB}, or nil when none exists.
	FindDirectRoom(ctx context.Context, userA, userB int64) (*chat.Room, error)

	// RoomByID returns the room or nil when absent.
	RoomByID(ctx context.Context, roomID int64) (*chat.Room, error)

	// RoomForUser returns the active room only if userID is a member,
	// nil otherwise.
	RoomForUser(ctx context.Context, roomID, userID int64) (*chat.Room, error)

	// RoomsForUser lists the active rooms userID belongs to.
	RoomsForUser(ctx context.Context, userID int64) ([]chat.Room, error)

	// AddMember inserts a membership row.
	AddMember(ctx context.Context, roomID, userID int64) error

	// IsMember reports whether userID holds a membership in roomID.
	IsMember(ctx context.Context, roomID, userID int64) (bool, error)

	// SaveMessage appends m to the room's log, letting the store assign
	// ID and CreatedAt, and returns the persisted record.
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// MessagesByRoom returns the room's messages, newest first.
	MessagesByRoom(ctx context.Context, roomID int64, limit, offset int) ([]chat.Message, error)
}
