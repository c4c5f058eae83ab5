package ws

import (
	"sync"

	"padlink/pkg/metrics"
)

// Directory maintains the room -> member-set mapping plus a reverse
// connection -> rooms index so disconnect cleanup does not scan every room.
// Room IDs are caller-trusted opaque strings; rooms are created lazily on
// first join and evicted when their member set becomes empty.
type Directory struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Conn]struct{}
	joined map[*Conn]map[string]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  map[string]map[*Conn]struct{}{},
		joined: map[*Conn]map[string]struct{}{},
	}
}

// Join adds c to roomID, creating the room if needed. Duplicate joins are
// idempotent set adds.
func (d *Directory) Join(c *Conn, roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	members := d.rooms[roomID]
	if members == nil {
		members = map[*Conn]struct{}{}
		d.rooms[roomID] = members
		metrics.RoomsActive.Inc()
	}
	members[c] = struct{}{}

	back := d.joined[c]
	if back == nil {
		back = map[string]struct{}{}
		d.joined[c] = back
	}
	back[roomID] = struct{}{}
}

// Leave removes c from roomID. No-op if not a member.
func (d *Directory) Leave(c *Conn, roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leaveLocked(c, roomID)
}

func (d *Directory) leaveLocked(c *Conn, roomID string) {
	members, ok := d.rooms[roomID]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(d.rooms, roomID)
		metrics.RoomsActive.Dec()
	}
	if back, ok := d.joined[c]; ok {
		delete(back, roomID)
		if len(back) == 0 {
			delete(d.joined, c)
		}
	}
}

// MembersOf returns a snapshot of the room's members; empty for an unknown
// room (not an error, just zero recipients).
func (d *Directory) MembersOf(roomID string) []*Conn {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members := d.rooms[roomID]
	out := make([]*Conn, 0, len(members))
	for c := range members {
		out = append(out, c)
	}
	return out
}

// RemoveEverywhere drops c from every room it belongs to.
func (d *Directory) RemoveEverywhere(c *Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for roomID := range d.joined[c] {
		d.leaveLocked(c, roomID)
	}
	delete(d.joined, c)
}

// Rooms reports the number of live (non-empty) rooms.
func (d *Directory) Rooms() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}
