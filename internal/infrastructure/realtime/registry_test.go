package realtime

import (
	"errors"
	"sync"
	"testing"
)

// fakeTransport is an in-memory Transport for exercising the registry
// and broadcaster without sockets.
type fakeTransport struct {
	mu       sync.Mutex
	sent     [][]byte
	failSend bool
	closed   bool
}

func (f *fakeTransport) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if f.failSend {
		return errors.New("send failed")
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *fakeTransport) Receive() ([]byte, error) {
	return nil, ErrClosed
}

func (f *fakeTransport) Close(code int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestRegistry_RegisterAndSnapshot(t *testing.T) {
	reg := NewRegistry()
	c1 := NewConnection(1, 10, &fakeTransport{})
	c2 := NewConnection(2, 10, &fakeTransport{})

	reg.Register(10, c1)
	reg.Register(10, c2)

	conns := reg.ConnectionsFor(10)
	if len(conns) != 2 {
		t.Fatalf("ConnectionsFor() returned %d connections, want 2", len(conns))
	}

	// The snapshot must not see later mutations.
	reg.Unregister(10, c1)
	if len(conns) != 2 {
		t.Errorf("snapshot changed after Unregister: len = %d, want 2", len(conns))
	}
	if got := len(reg.ConnectionsFor(10)); got != 1 {
		t.Errorf("ConnectionsFor() after Unregister = %d connections, want 1", got)
	}
}

func TestRegistry_PrunesEmptyRooms(t *testing.T) {
	reg := NewRegistry()
	conn := NewConnection(1, 10, &fakeTransport{})

	reg.Register(10, conn)
	if got := reg.RoomCount(); got != 1 {
		t.Fatalf("RoomCount() = %d, want 1", got)
	}

	reg.Unregister(10, conn)
	if got := reg.RoomCount(); got != 0 {
		t.Errorf("RoomCount() after last unregister = %d, want 0 (empty room entry must be removed)", got)
	}
	if conns := reg.ConnectionsFor(10); conns != nil {
		t.Errorf("ConnectionsFor() on pruned room = %v, want nil", conns)
	}
}

func TestRegistry_UnregisterUnknownIsNoop(t *testing.T) {
	reg := NewRegistry()
	known := NewConnection(1, 10, &fakeTransport{})
	unknown := NewConnection(2, 10, &fakeTransport{})

	reg.Register(10, known)
	reg.Unregister(10, unknown) // never registered
	reg.Unregister(99, known)   // wrong room

	if got := len(reg.ConnectionsFor(10)); got != 1 {
		t.Errorf("ConnectionsFor() = %d connections, want 1", got)
	}
}

func TestRegistry_IndependentRooms(t *testing.T) {
	reg := NewRegistry()
	c1 := NewConnection(1, 10, &fakeTransport{})
	c2 := NewConnection(2, 20, &fakeTransport{})

	reg.Register(10, c1)
	reg.Register(20, c2)

	if got := len(reg.ConnectionsFor(10)); got != 1 {
		t.Errorf("room 10 has %d connections, want 1", got)
	}
	if got := len(reg.ConnectionsFor(20)); got != 1 {
		t.Errorf("room 20 has %d connections, want 1", got)
	}

	reg.Unregister(10, c1)
	if got := len(reg.ConnectionsFor(20)); got != 1 {
		t.Errorf("room 20 affected by room 10 unregister: %d connections, want 1", got)
	}
}

func TestRegistry_ConcurrentRegisterUnregister(t *testing.T) {
	reg := NewRegistry()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(roomID int64) {
			defer wg.Done()
			conn := NewConnection(roomID, roomID%4, &fakeTransport{})
			reg.Register(roomID%4, conn)
			reg.ConnectionsFor(roomID % 4)
			reg.Unregister(roomID%4, conn)
		}(int64(i + 1))
	}
	wg.Wait()

	if got := reg.RoomCount(); got != 0 {
		t.Errorf("RoomCount() after all unregistered = %d, want 0", got)
	}
}

func TestRegistry_CloseClosesTransports(t *testing.T) {
	reg := NewRegistry()
	ft := &fakeTransport{}
	reg.Register(10, NewConnection(1, 10, ft))

	reg.Close()

	if got := reg.RoomCount(); got != 0 {
		t.Errorf("RoomCount() after Close = %d, want 0", got)
	}
	ft.mu.Lock()
	closed := ft.closed
	ft.mu.Unlock()
	if !closed {
		t.Error("transport not closed by registry Close")
	}
}
