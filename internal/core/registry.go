package core

import "sync"

// Registry tracks which sessions are joined to which rooms. It holds weak
// references only: a session's lifetime is owned by its transport handler,
// and Purge eagerly drops the session from every member set on disconnect.
//
// All mutations and snapshots go through a single mutex so that MembersOf
// can never observe a half-removed session. No I/O happens under the lock.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]map[*Session]struct{}
	joined map[*Session]map[string]struct{}
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]map[*Session]struct{}),
		joined: make(map[*Session]map[string]struct{}),
	}
}

// Join adds the session to the room's member set. Idempotent. The room id
// is not checked against persisted rooms; a session may join an identifier
// before the room is ever created.
func (r *Registry) Join(s *Session, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Session]struct{})
		r.rooms[roomID] = members
	}
	members[s] = struct{}{}

	rooms, ok := r.joined[s]
	if !ok {
		rooms = make(map[string]struct{})
		r.joined[s] = rooms
	}
	rooms[roomID] = struct{}{}
}

// Leave removes the session from the room's member set. No-op if the
// session is not a member. Empty member sets are kept; rooms are cheap
// and identifiers recur.
func (r *Registry) Leave(s *Session, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.rooms[roomID]; ok {
		delete(members, s)
	}
	if rooms, ok := r.joined[s]; ok {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(r.joined, s)
		}
	}
}

// Purge removes the session from every room it joined. Safe to call for a
// session that never joined anything.
func (r *Registry) Purge(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.joined[s] {
		if members, ok := r.rooms[roomID]; ok {
			delete(members, s)
		}
	}
	delete(r.joined, s)
}

// MembersOf returns a snapshot of the room's current members. The returned
// slice does not observe joins, leaves, or purges that happen after the
// call returns.
func (r *Registry) MembersOf(roomID string) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomID]
	if len(members) == 0 {
		return nil
	}
	snapshot := make([]*Session, 0, len(members))
	for s := range members {
		snapshot = append(snapshot, s)
	}
	return snapshot
}
