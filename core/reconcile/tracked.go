package reconcile

import "container/list"

// trackedEntry remembers the index keys an object was filed under, so removal
// still works if the host changes them after the fact.
type trackedEntry struct {
	obj     Object
	id      uint64
	hasID   bool
	name    string
	prefab  string
	element *list.Element
}

// TrackedSet is the set of generators the engine knows about.
// Iteration order is insertion order. The set is not safe for concurrent use.
type TrackedSet struct {
	order    *list.List
	entries  map[Object]*trackedEntry
	byID     map[uint64]map[Object]struct{}
	byName   map[string]map[Object]struct{}
	byPrefab map[string]map[Object]struct{}
}

// NewTrackedSet creates an empty TrackedSet.
func NewTrackedSet() *TrackedSet {
	return &TrackedSet{
		order:    list.New(),
		entries:  make(map[Object]*trackedEntry),
		byID:     make(map[uint64]map[Object]struct{}),
		byName:   make(map[string]map[Object]struct{}),
		byPrefab: make(map[string]map[Object]struct{}),
	}
}

// Add inserts obj. It returns false if obj is nil or already tracked.
func (s *TrackedSet) Add(obj Object) bool {
	if obj == nil {
		return false
	}
	if _, exists := s.entries[obj]; exists {
		return false
	}

	entry := &trackedEntry{obj: obj}
	func() {
		// A half-destroyed object may panic on accessors; track it unindexed
		// so the sweeper can still evict it.
		defer func() { _ = recover() }()
		entry.id, entry.hasID = obj.NetworkID()
		entry.name = obj.ShortName()
		entry.prefab = obj.PrefabPath()
	}()

	entry.element = s.order.PushBack(entry)
	s.entries[obj] = entry

	if entry.hasID && entry.id != 0 {
		addToIndex(s.byID, entry.id, obj)
	}
	addToIndex(s.byName, entry.name, obj)
	addToIndex(s.byPrefab, entry.prefab, obj)
	return true
}

// Remove deletes obj. Removing an untracked object is a no-op.
// It returns true if obj was tracked.
func (s *TrackedSet) Remove(obj Object) bool {
	if obj == nil {
		return false
	}
	entry, exists := s.entries[obj]
	if !exists {
		return false
	}

	s.order.Remove(entry.element)
	delete(s.entries, obj)

	if entry.hasID {
		removeFromIndex(s.byID, entry.id, obj)
	}
	removeFromIndex(s.byName, entry.name, obj)
	removeFromIndex(s.byPrefab, entry.prefab, obj)
	return true
}

// Contains reports whether obj is tracked.
func (s *TrackedSet) Contains(obj Object) bool {
	if obj == nil {
		return false
	}
	_, exists := s.entries[obj]
	return exists
}

// Len returns the number of tracked objects.
func (s *TrackedSet) Len() int {
	return len(s.entries)
}

// Snapshot returns a copy of the tracked objects in insertion order.
// The copy stays valid while the set is mutated.
func (s *TrackedSet) Snapshot() []Object {
	out := make([]Object, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*trackedEntry).obj)
	}
	return out
}

// ByID returns the tracked object with the given network id. If the host
// reused an id, the earliest tracked object wins.
func (s *TrackedSet) ByID(id uint64) (Object, bool) {
	if id == 0 {
		return nil, false
	}
	objs := s.fromIndex(s.byID[id])
	if len(objs) == 0 {
		return nil, false
	}
	return objs[0], true
}

// ByName returns every tracked object with the given short name.
func (s *TrackedSet) ByName(name string) []Object {
	return s.fromIndex(s.byName[name])
}

// ByPrefab returns every tracked object with the given prefab path.
func (s *TrackedSet) ByPrefab(prefab string) []Object {
	return s.fromIndex(s.byPrefab[prefab])
}

// Matching returns every tracked object addressed by key.
func (s *TrackedSet) Matching(key Key) []Object {
	switch key.Kind {
	case KindID:
		if key.ID == 0 {
			return nil
		}
		return s.fromIndex(s.byID[key.ID])
	case KindName:
		return s.ByName(key.Text)
	case KindPrefab:
		return s.ByPrefab(key.Text)
	}
	return nil
}

// fromIndex returns the bucket members in insertion order.
func (s *TrackedSet) fromIndex(bucket map[Object]struct{}) []Object {
	if len(bucket) == 0 {
		return nil
	}
	out := make([]Object, 0, len(bucket))
	for e := s.order.Front(); e != nil && len(out) < len(bucket); e = e.Next() {
		obj := e.Value.(*trackedEntry).obj
		if _, ok := bucket[obj]; ok {
			out = append(out, obj)
		}
	}
	return out
}

func addToIndex[K comparable](index map[K]map[Object]struct{}, key K, obj Object) {
	bucket, ok := index[key]
	if !ok {
		bucket = make(map[Object]struct{})
		index[key] = bucket
	}
	bucket[obj] = struct{}{}
}

func removeFromIndex[K comparable](index map[K]map[Object]struct{}, key K, obj Object) {
	bucket, ok := index[key]
	if !ok {
		return
	}
	delete(bucket, obj)
	if len(bucket) == 0 {
		delete(index, key)
	}
}
