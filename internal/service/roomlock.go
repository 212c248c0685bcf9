package service

import "sync"

// roomLocks serializes actions per match room. Two concurrent requests
// against the same room id take turns; requests against different
// rooms run independently. Locks are kept for the process lifetime —
// rooms are reusable aggregates, not ephemeral objects.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire locks the mutex for the given room id, creating it on first
// use, and returns the unlock function.
func (r *roomLocks) acquire(matchRoomID uint) func() {
	r.mu.Lock()
	l, ok := r.locks[matchRoomID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[matchRoomID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
