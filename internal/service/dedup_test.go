package service

import (
	"fmt"
	"sync"
	"testing"
)

func TestDedupSet_SeenAfterAdd(t *testing.T) {
	d := newDedupSet(3)

	if d.Seen("a") {
		t.Fatalf("empty set reported a as seen")
	}
	d.Add("a")
	if !d.Seen("a") {
		t.Fatalf("added id not seen")
	}
	if d.Len() != 1 {
		t.Fatalf("expected len 1, got %d", d.Len())
	}
}

func TestDedupSet_AddIsIdempotent(t *testing.T) {
	d := newDedupSet(3)

	d.Add("a")
	d.Add("a")
	d.Add("a")
	if d.Len() != 1 {
		t.Fatalf("repeated Add grew the set to %d", d.Len())
	}

	// Repeated adds must not consume eviction slots.
	d.Add("b")
	d.Add("c")
	if !d.Seen("a") || !d.Seen("b") || !d.Seen("c") {
		t.Fatalf("set lost an id before reaching capacity")
	}
}

func TestDedupSet_EvictsOldestAtCapacity(t *testing.T) {
	d := newDedupSet(3)

	d.Add("a")
	d.Add("b")
	d.Add("c")
	d.Add("d") // evicts a

	if d.Seen("a") {
		t.Fatalf("oldest id survived eviction")
	}
	for _, id := range []string{"b", "c", "d"} {
		if !d.Seen(id) {
			t.Fatalf("id %q evicted out of order", id)
		}
	}
	if d.Len() != 3 {
		t.Fatalf("expected len pinned at capacity 3, got %d", d.Len())
	}

	d.Add("e") // evicts b
	if d.Seen("b") || !d.Seen("c") {
		t.Fatalf("eviction order broken after wraparound")
	}
}

// The apply loop writes the set while the debug endpoint reads its size from
// another goroutine; both must be safe under the race detector.
func TestDedupSet_ConcurrentAddAndLen(t *testing.T) {
	d := newDedupSet(64)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			d.Add(fmt.Sprintf("guess-%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if n := d.Len(); n < 0 || n > 64 {
				t.Errorf("len %d outside capacity bound", n)
				return
			}
		}
	}()
	wg.Wait()

	if d.Len() != 64 {
		t.Fatalf("expected set pinned at capacity, got %d", d.Len())
	}
}
