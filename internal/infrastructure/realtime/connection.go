package realtime

import "github.com/google/uuid"

// Connection binds one live transport to one user and one room for its
// whole lifetime. The ID is an opaque handle unique for the process.
type Connection struct {
	ID     string
	UserID int64
	RoomID int64

	transport Transport
}

// NewConnection constructs a Connection for the given user and room.
func NewConnection(userID, roomID int64, t Transport) *Connection {
	return &Connection{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomID:    roomID,
		transport: t,
	}
}

// Send forwards payload to the underlying transport.
func (c *Connection) Send(payload []byte) error {
	return c.transport.Send(payload)
}

// Close tears down the underlying transport.
func (c *Connection) Close(code int, reason string) {
	_ = c.transport.Close(code, reason)
}
