package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository implements the chat repository port on pgx.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

// CreateRoomWithMembers inserts the room and its memberships in one
// transaction so a half-created room is never visible.
func (r *PgChatRepository) CreateRoomWithMembers(ctx context.Context, room chat.Room, memberIDs []int64) (*chat.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO chat_rooms (kind, name, is_active)
		VALUES ($1, NULLIF($2, ''), TRUE)
		RETURNING id, created_at
	`, string(room.Kind), room.Name).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	room.Active = true

	for _, uid := range memberIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO room_memberships (room_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (room_id, user_id) DO NOTHING
		`, room.ID, uid); err != nil {
			return nil, fmt.Errorf("insert membership: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &room, nil
}

// FindDirectRoom matches an active direct room whose membership set is
// exactly the given pair.
func (r *PgChatRepository) FindDirectRoom(ctx context.Context, userA, userB int64) (*chat.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT cr.id, cr.kind, COALESCE(cr.name, ''), cr.is_active, cr.created_at
		FROM chat_rooms cr
		WHERE cr.kind = 'direct'
		  AND cr.is_active
		  AND cr.id IN (
			SELECT rm.room_id
			FROM room_memberships rm
			GROUP BY rm.room_id
			HAVING COUNT(*) = 2
			   AND COUNT(*) FILTER (WHERE rm.user_id IN ($1, $2)) = 2
		  )
		LIMIT 1
	`, userA, userB)
	return scanRoom(row)
}

func (r *PgChatRepository) RoomByID(ctx context.Context, roomID int64) (*chat.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, kind, COALESCE(name, ''), is_active, created_at
		FROM chat_rooms WHERE id = $1
	`, roomID)
	return scanRoom(row)
}

func (r *PgChatRepository) RoomForUser(ctx context.Context, roomID, userID int64) (*chat.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT cr.id, cr.kind, COALESCE(cr.name, ''), cr.is_active, cr.created_at
		FROM chat_rooms cr
		JOIN room_memberships rm ON rm.room_id = cr.id
		WHERE cr.id = $1 AND rm.user_id = $2 AND cr.is_active
	`, roomID, userID)
	return scanRoom(row)
}

func (r *PgChatRepository) RoomsForUser(ctx context.Context, userID int64) ([]chat.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT cr.id, cr.kind, COALESCE(cr.name, ''), cr.is_active, cr.created_at
		FROM chat_rooms cr
		JOIN room_memberships rm ON rm.room_id = cr.id
		WHERE rm.user_id = $1 AND cr.is_active
		ORDER BY cr.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []chat.Room
	for rows.Next() {
		var room chat.Room
		var kind string
		if err := rows.Scan(&room.ID, &kind, &room.Name, &room.Active, &room.CreatedAt); err != nil {
			return nil, err
		}
		room.Kind = chat.RoomKind(kind)
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *PgChatRepository) AddMember(ctx context.Context, roomID, userID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO room_memberships (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (room_id, user_id) DO NOTHING
	`, roomID, userID)
	return err
}

func (r *PgChatRepository) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM room_memberships WHERE room_id = $1 AND user_id = $2
		)
	`, roomID, userID).Scan(&exists)
	return exists, err
}

// SaveMessage lets the database assign the identifier and timestamp so
// both are atomic with the write.
func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (room_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.RoomID, m.SenderID, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgChatRepository) MessagesByRoom(ctx context.Context, roomID int64, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, room_id, sender_id, content, created_at
		FROM messages
		WHERE room_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func scanRoom(row pgx.Row) (*chat.Room, error) {
	var room chat.Room
	var kind string
	err := row.Scan(&room.ID, &kind, &room.Name, &room.Active, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	room.Kind = chat.RoomKind(kind)
	return &room, nil
}
