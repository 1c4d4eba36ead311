package scheduling

import "sync"

// doctorLocks serializes validate-then-write sequences per doctor. Validation
// and the appointment write are not atomic; holding the doctor's lock across
// both, plus the repository's transactional re-check, closes the
// time-of-check/time-of-use gap.
type doctorLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

// lock acquires the mutex for doctorID and returns its unlock func.
func (dl *doctorLocks) lock(doctorID string) func() {
	dl.mu.Lock()
	if dl.m == nil {
		dl.m = make(map[string]*sync.Mutex)
	}
	l, ok := dl.m[doctorID]
	if !ok {
		l = &sync.Mutex{}
		dl.m[doctorID] = l
	}
	dl.mu.Unlock()

	l.Lock()
	return l.Unlock
}
