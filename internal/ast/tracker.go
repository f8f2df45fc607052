package ast

// Tracker accounts for node allocations and releases so tests can prove a
// run neither leaks nor double-frees. A nil Tracker is valid and records
// nothing.
type Tracker struct {
	next        uint64
	live        map[uint64]struct{}
	allocs      int
	frees       int
	doubleFrees int
}

func NewTracker() *Tracker {
	return &Tracker{live: make(map[uint64]struct{})}
}

// Alloc registers a new allocation and returns its id. Ids start at 1.
func (t *Tracker) Alloc() uint64 {
	if t == nil {
		return 0
	}
	t.next++
	t.live[t.next] = struct{}{}
	t.allocs++
	return t.next
}

// Release marks id as freed. It reports false when id is not live, which
// counts as a double free.
func (t *Tracker) Release(id uint64) bool {
	if t == nil {
		return true
	}
	if _, ok := t.live[id]; !ok {
		t.doubleFrees++
		return false
	}
	delete(t.live, id)
	t.frees++
	return true
}

func (t *Tracker) Live() int {
	if t == nil {
		return 0
	}
	return len(t.live)
}

func (t *Tracker) Allocs() int {
	if t == nil {
		return 0
	}
	return t.allocs
}

func (t *Tracker) Frees() int {
	if t == nil {
		return 0
	}
	return t.frees
}

func (t *Tracker) DoubleFrees() int {
	if t == nil {
		return 0
	}
	return t.doubleFrees
}
