package realtime

import (
	"log"

	"github.com/gorilla/websocket"
)

// Report summarizes one fan-out. Used for observability only; broadcast
// correctness does not depend on it.
type Report struct {
	Delivered int
	Failed    int
}

// Broadcaster fans persisted messages out to every connection registered
// for a room. Delivery failures are contained per connection: the dead
// connection is unregistered and closed, the rest of the fan-out proceeds.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster constructs a Broadcaster over the given registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// Broadcast delivers payload to the room's snapshot of connections.
// A room with no registered connections is a no-op.
func (b *Broadcaster) Broadcast(roomID int64, payload []byte) Report {
	var report Report
	for _, conn := range b.registry.ConnectionsFor(roomID) {
		if err := conn.Send(payload); err != nil {
			report.Failed++
			b.registry.Unregister(roomID, conn)
			conn.Close(websocket.CloseGoingAway, "delivery failed")
			log.Printf("broadcast: dropping dead connection %s in room %d: %v", conn.ID, roomID, err)
			continue
		}
		report.Delivered++
	}
	return report
}
