package cache

import "sync"

// Store is the shared cache. Values are treated as immutable once stored:
// writers build a new value and Set it, they never mutate in place. That
// contract is what makes Snapshot/Restore a safe revert path for
// optimistic updates.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]any
	subs    map[Key]map[int]chan struct{}
	nextSub int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[Key]any),
		subs:    make(map[Key]map[int]chan struct{}),
	}
}

// Get returns the cached value for k, if any.
func (s *Store) Get(k Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[k]
	return v, ok
}

// Set stores v under k and notifies subscribers.
func (s *Store) Set(k Key, v any) {
	s.mu.Lock()
	s.entries[k] = v
	s.notifyLocked(k)
	s.mu.Unlock()
}

// Delete evicts the entry for k and notifies subscribers.
func (s *Store) Delete(k Key) {
	s.mu.Lock()
	delete(s.entries, k)
	s.notifyLocked(k)
	s.mu.Unlock()
}

// Keys returns every key currently matching pred.
func (s *Store) Keys(pred Predicate) []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []Key
	for k := range s.entries {
		if pred(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// PatchMatching applies fn to every entry whose key matches pred. fn
// receives the current value and returns the replacement; returning
// ok=false leaves the entry untouched. Non-matching entries are never
// visited.
func (s *Store) PatchMatching(pred Predicate, fn func(k Key, v any) (any, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.entries {
		if !pred(k) {
			continue
		}
		if next, ok := fn(k, v); ok {
			s.entries[k] = next
			s.notifyLocked(k)
		}
	}
}

// Snapshot is a point-in-time copy of a set of entries, used to revert
// speculative edits.
type Snapshot struct {
	values map[Key]any
}

// SnapshotMatching captures the current value of every entry matching
// pred. Because stored values are immutable, holding the references is a
// faithful copy.
func (s *Store) SnapshotMatching(pred Predicate) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{values: make(map[Key]any)}
	for k, v := range s.entries {
		if pred(k) {
			snap.values[k] = v
		}
	}
	return snap
}

// Restore writes every snapshotted entry back into the store.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range snap.values {
		s.entries[k] = v
		s.notifyLocked(k)
	}
}

// Subscribe registers interest in k. The returned channel receives a
// signal (buffered, coalescing) whenever the entry changes. The cancel
// func unregisters; when the last subscriber leaves, the entry is
// evicted since nothing is watching it anymore.
func (s *Store) Subscribe(k Key) (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := s.nextSub
	s.nextSub++

	if s.subs[k] == nil {
		s.subs[k] = make(map[int]chan struct{})
	}
	s.subs[k][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set, ok := s.subs[k]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(s.subs, k)
				delete(s.entries, k)
			}
		}
	}
	return ch, cancel
}

// notifyLocked signals every subscriber of k without blocking. Callers
// hold s.mu.
func (s *Store) notifyLocked(k Key) {
	for _, ch := range s.subs[k] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
