package realtime

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	readWait       = 60 * time.Second
	maxFrameSize   = 1 << 20 // 1MB payload cap
	sendBufferSize = 128
)

// WSTransport adapts a gorilla websocket to the Transport port. Outbound
// writes go through a buffered channel drained by a single write loop so
// Send is safe from any goroutine; pings keep the read deadline fresh.
type WSTransport struct {
	ws     *websocket.Conn
	send   chan []byte
	closed chan struct{}
	once   sync.Once
}

// NewWSTransport wraps ws and starts the write loop. The caller keeps
// ownership of the read side via Receive.
func NewWSTransport(ws *websocket.Conn) *WSTransport {
	t := &WSTransport{
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
	ws.SetReadLimit(maxFrameSize)
	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readWait))
	})
	go t.writeLoop()
	return t
}

// Send enqueues payload for delivery. A full buffer means the client is
// not draining; the transport is closed to keep backpressure bounded.
func (t *WSTransport) Send(payload []byte) error {
	select {
	case <-t.closed:
		return ErrClosed
	default:
	}
	select {
	case t.send <- payload:
		return nil
	case <-t.closed:
		return ErrClosed
	default:
		_ = t.Close(websocket.CloseGoingAway, "send buffer full")
		return fmt.Errorf("realtime: send buffer exceeded: %w", ErrClosed)
	}
}

// Receive blocks for the next text frame from the peer.
func (t *WSTransport) Receive() ([]byte, error) {
	_, data, err := t.ws.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
			errors.Is(err, websocket.ErrCloseSent) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("realtime: read: %w", err)
	}
	return data, nil
}

// Close signals the write loop, sends a close control frame and tears the
// socket down. The send channel is deliberately never closed so a Send
// racing Close fails with ErrClosed instead of panicking.
func (t *WSTransport) Close(code int, reason string) error {
	t.once.Do(func() {
		close(t.closed)
		deadline := time.Now().Add(writeWait)
		_ = t.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = t.ws.Close()
	})
	return nil
}

func (t *WSTransport) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-t.closed:
			return
		case msg := <-t.send:
			if err := t.writeMessage(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := t.writePing(); err != nil {
				return
			}
		}
	}
}

func (t *WSTransport) writeMessage(payload []byte) error {
	if err := t.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.ws.WriteMessage(websocket.TextMessage, payload)
}

func (t *WSTransport) writePing() error {
	if err := t.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.ws.WriteMessage(websocket.PingMessage, nil)
}

var _ Transport = (*WSTransport)(nil)
