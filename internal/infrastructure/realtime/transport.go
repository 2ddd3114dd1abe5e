package realtime

import "errors"

// ErrClosed is returned by transports once the underlying channel is gone.
// Callers use errors.Is to tell an orderly close apart from payload errors.
var ErrClosed = errors.New("realtime: transport closed")

// Transport is one live, framed, bidirectional channel to a client.
// Implementations must make Send safe to call concurrently with Close:
// a send racing a close either completes or returns an error, never panics.
type Transport interface {
	// Send enqueues one frame for delivery. A non-nil error means the
	// transport is unusable and the caller should treat it as dead.
	Send(payload []byte) error

	// Receive blocks until the next inbound frame. It returns an error
	// wrapping ErrClosed when the peer closed the channel.
	Receive() ([]byte, error)

	// Close tears the channel down with a status code and reason.
	// Safe to call more than once.
	Close(code int, reason string) error
}
