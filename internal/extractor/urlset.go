package extractor

// URLSet tracks absolute URLs already claimed during one extraction pass.
// It is handed explicitly to every rule so no state is shared between passes.
type URLSet struct {
	seen map[string]struct{}
}

// NewURLSet creates an empty set
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add claims u and reports whether it was not seen before
func (s *URLSet) Add(u string) bool {
	if _, ok := s.seen[u]; ok {
		return false
	}
	s.seen[u] = struct{}{}
	return true
}

// Contains reports whether u has been claimed
func (s *URLSet) Contains(u string) bool {
	_, ok := s.seen[u]
	return ok
}

// Len returns the number of claimed URLs
func (s *URLSet) Len() int {
	return len(s.seen)
}
