package service

import "sync"

// dedupSet remembers already-applied record ids with a hard capacity bound.
// When full, the oldest id is evicted (ring buffer), accepting that an id
// older than the window could in principle be re-applied. Writes come from
// the poller loop only, but the debug surface reads concurrently, so all
// access goes through the mutex.
type dedupSet struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
	cap   int
}

func newDedupSet(capacity int) *dedupSet {
	return &dedupSet{
		ids:   make(map[string]struct{}, capacity),
		order: make([]string, capacity),
		cap:   capacity,
	}
}

func (d *dedupSet) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.ids[id]
	return ok
}

func (d *dedupSet) Add(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.ids[id]; ok {
		return
	}
	if old := d.order[d.next]; old != "" {
		delete(d.ids, old)
	}
	d.order[d.next] = id
	d.next = (d.next + 1) % d.cap
	d.ids[id] = struct{}{}
}

func (d *dedupSet) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.ids)
}
