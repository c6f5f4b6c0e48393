package catalog

// DedupSet tracks item ids already persisted or already collected during the
// current run. One set is shared by every source that writes into the same
// output file, so an id discovered by one source suppresses it for the others.
type DedupSet map[int64]struct{}

// NewDedupSet creates a dedup set seeded with the ids of the given items.
func NewDedupSet(items []Item) DedupSet {
	s := make(DedupSet, len(items))
	for _, it := range items {
		s[it.ID] = struct{}{}
	}
	return s
}

// Has reports whether the id has been seen.
func (s DedupSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add marks the id as seen.
func (s DedupSet) Add(id int64) {
	s[id] = struct{}{}
}

// Len returns the number of tracked ids.
func (s DedupSet) Len() int {
	return len(s)
}
