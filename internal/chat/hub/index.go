// Package hub keeps the in-process map of which sessions are subscribed to
// which room. It holds no persistent state and is rebuilt as clients
// reconnect.
package hub

import (
	"errors"
	"sync"

	"famchat/internal/metrics"
)

var (
	ErrSessionClosed = errors.New("session closed")
	ErrSlowConsumer  = errors.New("session send buffer full")
)

// Subscriber is a live connection. Send must not block; it returns
// ErrSessionClosed or ErrSlowConsumer instead.
type Subscriber interface {
	ID() string
	UserID() uint64
	Send(frame []byte) error
	Close()
}

type Stats struct {
	Rooms    int `json:"rooms"`
	Sessions int `json:"sessions"`
}

// Index maps rooms to subscribed sessions and sessions to their room.
// A session is in at most one room at a time.
type Index struct {
	mu      sync.RWMutex
	rooms   map[uint64]map[string]Subscriber
	current map[string]uint64
}

func NewIndex() *Index {
	return &Index{
		rooms:   make(map[uint64]map[string]Subscriber),
		current: make(map[string]uint64),
	}
}

// Subscribe moves s into roomID, leaving any previous room. Repeating it
// for the same room changes nothing.
func (x *Index) Subscribe(s Subscriber, roomID uint64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if prev, ok := x.current[s.ID()]; ok {
		if prev == roomID {
			return
		}
		x.removeLocked(s.ID(), prev)
	}

	set, ok := x.rooms[roomID]
	if !ok {
		set = make(map[string]Subscriber)
		x.rooms[roomID] = set
	}
	set[s.ID()] = s
	x.current[s.ID()] = roomID
	metrics.SubscribedRooms.Set(float64(len(x.rooms)))
}

// Unsubscribe removes s from its room. It is safe on a session that
// never subscribed.
func (x *Index) Unsubscribe(s Subscriber) {
	x.mu.Lock()
	defer x.mu.Unlock()

	roomID, ok := x.current[s.ID()]
	if !ok {
		return
	}
	x.removeLocked(s.ID(), roomID)
	metrics.SubscribedRooms.Set(float64(len(x.rooms)))
}

func (x *Index) removeLocked(sessionID string, roomID uint64) {
	delete(x.current, sessionID)
	set := x.rooms[roomID]
	delete(set, sessionID)
	if len(set) == 0 {
		delete(x.rooms, roomID)
	}
}

// SessionsFor returns a snapshot of the room's sessions. Sessions may
// disconnect after the snapshot is taken.
func (x *Index) SessionsFor(roomID uint64) []Subscriber {
	x.mu.RLock()
	defer x.mu.RUnlock()

	set := x.rooms[roomID]
	out := make([]Subscriber, 0, len(set))
	for _, s := range set {
		out = append(out, s)
	}
	return out
}

// RoomOf returns the room s is subscribed to.
func (x *Index) RoomOf(s Subscriber) (uint64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	roomID, ok := x.current[s.ID()]
	return roomID, ok
}

func (x *Index) Stats() Stats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return Stats{Rooms: len(x.rooms), Sessions: len(x.current)}
}
