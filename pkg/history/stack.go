package history

// stack is a bounded LIFO on a ring buffer. Pushing onto a full stack
// overwrites the oldest entry.
type stack struct {
	items []Snapshot
	// index of the oldest entry
	head int
	size int
}

func newStack(depth int) *stack {
	return &stack{items: make([]Snapshot, depth)}
}

// push adds s on top and reports whether the oldest entry was evicted.
func (s *stack) push(snap Snapshot) bool {
	depth := len(s.items)
	if s.size == depth {
		// the slot of the oldest entry becomes the top
		s.items[s.head] = snap
		s.head = (s.head + 1) % depth
		return true
	}

	s.items[(s.head+s.size)%depth] = snap
	s.size++
	return false
}

func (s *stack) pop() (Snapshot, bool) {
	if s.size == 0 {
		return Snapshot{}, false
	}

	i := (s.head + s.size - 1) % len(s.items)
	snap := s.items[i]
	s.items[i] = Snapshot{}
	s.size--
	return snap, true
}

func (s *stack) peek() (Snapshot, bool) {
	if s.size == 0 {
		return Snapshot{}, false
	}
	return s.items[(s.head+s.size-1)%len(s.items)], true
}

func (s *stack) clear() {
	for i := range s.items {
		s.items[i] = Snapshot{}
	}
	s.head = 0
	s.size = 0
}
