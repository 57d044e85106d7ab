package live

import "sync"

// Entity identifies a tracked collection of the entry store.
type Entity string

const (
	EntityCompetitors   Entity = "competitors"
	EntityHourlyEntries Entity = "hourly_entries"
	EntityBigCatches    Entity = "big_catches"
	EntitySettings      Entity = "settings"
)

// SnapshotFunc receives the full current collection for an entity, never a
// delta. The concrete element type depends on the entity.
type SnapshotFunc func(records interface{})

// Feed is the push side of the entry store subscription contract: the store
// publishes the entire collection after every successful write, subscribers
// recompute from scratch. Intermediate states may be skipped, but the last
// published snapshot is always consistent with the store.
type Feed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Entity]map[int]SnapshotFunc
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[Entity]map[int]SnapshotFunc)}
}

// Subscribe registers fn for an entity and returns an unsubscribe func.
// Callbacks run synchronously on the publisher's goroutine, so a subscriber
// must finish handling one snapshot before the next arrives.
func (f *Feed) Subscribe(entity Entity, fn SnapshotFunc) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subs[entity]; !ok {
		f.subs[entity] = make(map[int]SnapshotFunc)
	}
	f.nextID++
	id := f.nextID
	f.subs[entity][id] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[entity], id)
	}
}

// Publish delivers the full collection for an entity to every subscriber.
func (f *Feed) Publish(entity Entity, records interface{}) {
	f.mu.RLock()
	fns := make([]SnapshotFunc, 0, len(f.subs[entity]))
	for _, fn := range f.subs[entity] {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn(records)
	}
}
