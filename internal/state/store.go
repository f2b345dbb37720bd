package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a copy of a Store's contents at one point in time.
type Snapshot[K comparable, V any] struct {
	Data     map[K]V
	Errors   map[K]error
	Done     int // keys that finished, with data or with an error
	Expected int
	// Started is set once the store has been Reset for a load.
	Started     bool
	LastUpdated time.Time
}

// Complete reports whether a load was started and every expected key has
// finished. A load expecting nothing is complete at once.
func (s Snapshot[K, V]) Complete() bool {
	return s.Started && s.Done >= s.Expected
}

// Fraction is Done over Expected: 0 before any load, 1 for a load expecting
// nothing.
func (s Snapshot[K, V]) Fraction() float64 {
	if s.Expected <= 0 {
		if s.Started {
			return 1
		}
		return 0
	}
	return min(float64(s.Done)/float64(s.Expected), 1)
}

// Store is filled by background workers and read by panes during their
// process phase. Readers never block on writers for longer than a map copy.
type Store[K comparable, V any] struct {
	mu       sync.RWMutex
	clone    func(V) V
	data     map[K]V
	errs     map[K]error
	expected int
	started  bool
	updated  time.Time
	version  uint64
	seen     uint64
}

// NewStore returns an empty store. clone copies values on the way in and out;
// nil copies them by assignment.
func NewStore[K comparable, V any](clone func(V) V) *Store[K, V] {
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &Store[K, V]{
		clone: clone,
		data:  make(map[K]V),
		errs:  make(map[K]error),
	}
}

// Reset empties the store and sets how many keys a complete load holds.
func (s *Store[K, V]) Reset(expected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.errs = make(map[K]error)
	s.expected = expected
	s.started = true
	s.touch()
}

// Put records a value for k, clearing any earlier error for it.
func (s *Store[K, V]) Put(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[k] = s.clone(v)
	delete(s.errs, k)
	s.touch()
}

// Fail records that k could not be loaded. Previous data for k is kept.
func (s *Store[K, V]) Fail(k K, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[k] = err
	s.touch()
}

func (s *Store[K, V]) touch() {
	s.version++
	s.updated = time.Now()
}

// HasNewData reports whether anything changed since the last Snapshot.
func (s *Store[K, V]) HasNewData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != s.seen
}

// HasAllData reports whether a load was started with Reset and every key it
// expects has finished.
func (s *Store[K, V]) HasAllData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && s.done() >= s.expected
}

func (s *Store[K, V]) done() int {
	n := len(s.data)
	for k := range s.errs {
		if _, ok := s.data[k]; !ok {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the contents and marks them seen.
func (s *Store[K, V]) Snapshot() Snapshot[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = s.version

	snap := Snapshot[K, V]{
		Data:        make(map[K]V, len(s.data)),
		Errors:      make(map[K]error, len(s.errs)),
		Done:        s.done(),
		Expected:    s.expected,
		Started:     s.started,
		LastUpdated: s.updated,
	}
	for k, v := range s.data {
		snap.Data[k] = s.clone(v)
	}
	for k, err := range s.errs {
		snap.Errors[k] = fmt.Errorf("%w", err)
	}
	return snap
}

// Get returns a copy of the value for k.
func (s *Store[K, V]) Get(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[k]
	if !ok {
		return v, false
	}
	return s.clone(v), true
}

// Keys returns the keys that hold data.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
