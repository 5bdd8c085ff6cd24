package model

// IDAllocator hands out chord IDs. The caller owns the allocator and passes it
// to whatever builds chords, so two independent compositions never share a
// counter.
type IDAllocator struct {
	last ChordID
}

// NewIDAllocator returns an allocator whose first ID is after + 1.
func NewIDAllocator(after ChordID) *IDAllocator {
	return &IDAllocator{last: after}
}

func (a *IDAllocator) Next() ChordID {
	a.last++
	return a.last
}

// Last returns the most recently allocated ID, or the starting point if none
// was allocated yet.
func (a *IDAllocator) Last() ChordID {
	return a.last
}
