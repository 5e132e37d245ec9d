package collab

import (
	"encoding/json"
	"sync"
)

// frame is the wire format for both directions: an event name plus an
// event-specific payload.
type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// client is one connected socket. Writes are serialized per connection.
type client struct {
	id     string
	userID string
	mu     sync.Mutex
	enc    *json.Encoder
}

func (c *client) send(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(frame{Event: event, Payload: raw})
}

// Hub tracks which sockets are present in which paper room. A room exists
// only while it has members.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{})}
}

// join adds the client to a paper room and returns the new member count.
func (h *Hub) join(paperID string, c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[paperID]
	if room == nil {
		room = make(map[*client]struct{})
		h.rooms[paperID] = room
	}
	room[c] = struct{}{}
	return len(room)
}

// leave removes the client from a paper room and returns the remaining
// member count. Empty rooms are dropped.
func (h *Hub) leave(paperID string, c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[paperID]
	if room == nil {
		return 0
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, paperID)
		return 0
	}
	return len(room)
}

// leaveAll removes the client from every room it is in, returning the rooms
// left along with their remaining member counts.
func (h *Hub) leaveAll(c *client) map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	left := map[string]int{}
	for paperID, room := range h.rooms {
		if _, ok := room[c]; !ok {
			continue
		}
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, paperID)
			left[paperID] = 0
		} else {
			left[paperID] = len(room)
		}
	}
	return left
}

// broadcast sends an event to every room member except the sender.
func (h *Hub) broadcast(paperID string, exclude *client, event string, payload any) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[paperID]))
	for member := range h.rooms[paperID] {
		if member != exclude {
			members = append(members, member)
		}
	}
	h.mu.RUnlock()

	for _, member := range members {
		// A failed write means the peer is going away; its own read
		// loop will clean it up.
		_ = member.send(event, payload)
	}
}

// RoomCount reports the current member count of a paper room.
func (h *Hub) RoomCount(paperID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[paperID])
}
