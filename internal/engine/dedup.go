package engine

// firedSet is a bounded, insertion-ordered set of fired-occurrence keys. It
// exists to stop an alarm from firing twice inside the same minute; exactness
// only matters within the current day, so evicting the oldest entries in bulk
// is acceptable.
type firedSet struct {
	cap   int
	evict int
	keys  []string
	seen  map[string]bool
}

func newFiredSet(capacity, evict int) *firedSet {
	return &firedSet{
		cap:   capacity,
		evict: evict,
		seen:  make(map[string]bool, capacity),
	}
}

// add records key and reports whether it was new. Once the set grows past its
// capacity the oldest entries are dropped, oldest-insertion first.
func (f *firedSet) add(key string) bool {
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	f.keys = append(f.keys, key)

	if len(f.keys) > f.cap {
		for _, old := range f.keys[:f.evict] {
			delete(f.seen, old)
		}
		f.keys = append(f.keys[:0], f.keys[f.evict:]...)
	}
	return true
}

func (f *firedSet) len() int {
	return len(f.keys)
}
