package realtime

import "sync"

// Registry tracks, per room, the set of currently connected transports.
// It is the only state shared across session goroutines; all mutation
// happens under one RWMutex and reads hand out snapshots so broadcast
// iteration never races a register/unregister.
type Registry struct {
	mu    sync.RWMutex
	rooms map[int64]map[string]*Connection // roomID -> connectionID -> connection
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[int64]map[string]*Connection)}
}

// Register adds conn to the room's set, creating the entry on first use.
func (r *Registry) Register(roomID int64, conn *Connection) {
	if conn == nil {
		return
	}
	r.mu.Lock()
	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[roomID] = room
	}
	room[conn.ID] = conn
	r.mu.Unlock()
}

// Unregister removes conn from the room's set. When the set empties the
// room entry is deleted outright, so an idle room leaves no bookkeeping
// behind. Unregistering an unknown connection is a no-op.
func (r *Registry) Unregister(roomID int64, conn *Connection) {
	if conn == nil {
		return
	}
	r.mu.Lock()
	if room, ok := r.rooms[roomID]; ok {
		delete(room, conn.ID)
		if len(room) == 0 {
			delete(r.rooms, roomID)
		}
	}
	r.mu.Unlock()
}

// ConnectionsFor returns a snapshot of the room's current connections.
// The slice is a copy taken under the read lock; mutating the registry
// afterwards does not affect it.
func (r *Registry) ConnectionsFor(roomID int64) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[roomID]
	if len(room) == 0 {
		return nil
	}
	conns := make([]*Connection, 0, len(room))
	for _, c := range room {
		conns = append(conns, c)
	}
	return conns
}

// RoomCount reports how many rooms currently hold live connections.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Close clears the registry and closes every tracked transport. Used on
// process shutdown; the session loops observe the closed transports and
// unwind on their own.
func (r *Registry) Close() {
	r.mu.Lock()
	var conns []*Connection
	for _, room := range r.rooms {
		for _, c := range room {
			conns = append(conns, c)
		}
	}
	r.rooms = make(map[int64]map[string]*Connection)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close(1001, "server shutdown")
	}
}
