package services

import "sync"

// applicationLocks serializes transitions per application. Two concurrent
// transitions on the same application otherwise both commit and the later
// history row silently wins; holding a per-application lock across the
// derive-check-append sequence closes that window within one process.
type applicationLocks struct {
	mu    sync.Mutex
	locks map[int]*appLockEntry
}

type appLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newApplicationLocks() *applicationLocks {
	return &applicationLocks{locks: make(map[int]*appLockEntry)}
}

// Lock acquires the lock for one application id, creating it on first use.
func (l *applicationLocks) Lock(applicationID int) {
	l.mu.Lock()
	entry, ok := l.locks[applicationID]
	if !ok {
		entry = &appLockEntry{}
		l.locks[applicationID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the lock and drops the entry once nobody waits on it.
func (l *applicationLocks) Unlock(applicationID int) {
	l.mu.Lock()
	entry, ok := l.locks[applicationID]
	if ok {
		entry.refs--
		if entry.refs <= 0 {
			delete(l.locks, applicationID)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
