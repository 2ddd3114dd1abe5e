// Package session owns the lifecycle of one realtime chat connection:
// accept, membership validation, registration, the read loop bridging
// inbound frames to the message store and outbound persisted messages to
// the broadcast engine, and idempotent teardown.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
)

// State models the connection lifecycle. Transitions only move forward:
// Connecting -> Active -> Closing -> Closed, or Connecting -> Closed when
// the handshake fails before registration.
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateClosing
	StateClosed
)

// Close codes surfaced to the peer. 4xxx is the application range;
// 1011 is the standard internal-error code.
const (
	closeCodeForbidden = 4403
	closeCodeInternal  = 1011
	closeCodeNormal    = 1000
)

const opTimeout = 5 * time.Second

// Deps bundles the collaborators a session needs. The registry and
// broadcaster are shared across all sessions in the process.
type Deps struct {
	Registry    *realtime.Registry
	Broadcaster *realtime.Broadcaster
	Join        *usecase.JoinRoomUseCase
	Append      *usecase.AppendMessageUseCase
}

// Session drives one client connection to completion.
//
// mu makes the CONNECTING->ACTIVE transition and the close path mutually
// exclusive: a Close that lands during the handshake marks the session
// Closing before registration, and Run observes that instead of going
// active. conn and registered are only written and read under mu.
type Session struct {
	deps   Deps
	userID int64
	roomID int64

	mu         sync.Mutex
	conn       *realtime.Connection
	registered bool

	// state starts at StateConnecting (the zero value). Forward
	// transitions are decided under mu; reads may be lock-free via State.
	state atomic.Int32
}

// NewSession prepares a session for one client. Run it with Run.
func NewSession(userID, roomID int64, deps Deps) *Session {
	return &Session{deps: deps, userID: userID, roomID: roomID}
}

// Open runs a session over t until the connection closes. It blocks the
// calling goroutine; the caller typically runs one goroutine per client.
// The returned error describes why the handshake failed; a session that
// reached Active always returns nil after an orderly teardown.
func Open(ctx context.Context, t realtime.Transport, userID, roomID int64, deps Deps) error {
	return NewSession(userID, roomID, deps).Run(ctx, t)
}

// Run drives the connection through its lifecycle until Closed.
func (s *Session) Run(ctx context.Context, t realtime.Transport) error {
	joinCtx, cancel := context.WithTimeout(ctx, opTimeout)
	room, err := s.deps.Join.Execute(joinCtx, usecase.JoinRoomInput{RoomID: s.roomID, UserID: s.userID})
	cancel()
	if err != nil {
		// Never registered: close the transport and stop without
		// touching the registry. A store failure is reported as an
		// internal error, not as a membership rejection.
		if errors.Is(err, usecase.ErrPersistence) {
			_ = t.Close(closeCodeInternal, "temporarily unavailable")
		} else {
			_ = t.Close(closeCodeForbidden, "not a member of this room")
		}
		s.mu.Lock()
		s.state.Store(int32(StateClosed))
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if State(s.state.Load()) != StateConnecting {
		// Close arrived during the handshake: never go active.
		s.mu.Unlock()
		_ = t.Close(closeCodeNormal, "session closed")
		return nil
	}
	s.conn = realtime.NewConnection(s.userID, room.ID, t)
	s.deps.Registry.Register(room.ID, s.conn)
	s.registered = true
	s.state.Store(int32(StateActive))
	s.mu.Unlock()
	defer s.close(closeCodeNormal, "session closed")

	if payload, err := json.Marshal(ackFrame{Type: "connected", RoomID: room.ID}); err == nil {
		_ = s.conn.Send(payload)
	}

	for {
		data, err := t.Receive()
		if err != nil {
			if !errors.Is(err, realtime.ErrClosed) {
				log.Printf("session: read error for user %d in room %d: %v", s.userID, s.roomID, err)
			}
			return nil
		}
		s.handleFrame(ctx, data)
	}
}

// handleFrame persists one inbound message and fans it out. Failures are
// reported to the originating connection only and never end the session.
func (s *Session) handleFrame(ctx context.Context, data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.replyError("bad_request", "invalid payload")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	msg, err := s.deps.Append.Execute(opCtx, usecase.AppendMessageInput{
		RoomID:   s.roomID,
		SenderID: s.userID,
		Content:  frame.Content,
	})
	if err != nil {
		s.replyAppendError(err)
		return
	}

	payload, err := EncodeMessage(*msg)
	if err != nil {
		s.replyError("internal_error", "failed to encode message")
		return
	}
	s.deps.Broadcaster.Broadcast(s.roomID, payload)
}

// Close tears the session down. Safe to call concurrently with the read
// loop and with in-flight broadcasts; the second and later calls are
// no-ops and never double-unregister.
func (s *Session) Close() {
	s.close(closeCodeNormal, "session closed")
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) close(code int, reason string) {
	s.mu.Lock()
	switch State(s.state.Load()) {
	case StateClosing, StateClosed:
		// Already torn down (or being torn down): never unregister twice.
		s.mu.Unlock()
		return
	}
	s.state.Store(int32(StateClosing))
	conn, registered := s.conn, s.registered
	s.mu.Unlock()

	if registered {
		s.deps.Registry.Unregister(s.roomID, conn)
	}
	if conn != nil {
		conn.Close(code, reason)
	}
	s.state.Store(int32(StateClosed))
}

func (s *Session) replyAppendError(err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		s.replyError("empty_message", "message content must not be empty")
	case errors.Is(err, chat.ErrNotAMember):
		s.replyError("forbidden", "sender is not a member of this room")
	case errors.Is(err, usecase.ErrPersistence):
		s.replyError("internal_error", "message could not be stored")
	default:
		s.replyError("bad_request", err.Error())
	}
}

func (s *Session) replyError(code, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = s.conn.Send(payload)
	}
}
