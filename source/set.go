package source

import "sync"

// Lookup finds fragments by name.
type Lookup interface {
	Fragment(name string) (*Fragment, error)
}

// Set is per unit view over document fragments. Patched fragments are
// visible only through the set, document stays unchanged.
type Set struct {
	Lookup

	mu      sync.Mutex
	patched map[string]*Fragment
	used    map[string]bool
}

func NewSet(l Lookup) *Set {
	return &Set{Lookup: l, patched: make(map[string]*Fragment), used: make(map[string]bool)}
}

func (s *Set) Fragment(name string) (*Fragment, error) {
	s.mu.Lock()
	f, ok := s.patched[fragmentName(name)]
	s.mu.Unlock()
	if ok {
		s.markUsed(f.Name)
		return f, nil
	}
	f, err := s.Lookup.Fragment(name)
	if err != nil {
		return nil, err
	}
	s.markUsed(f.Name)
	return f, nil
}

// Patch replaces fragment for subsequent lookups.
func (s *Set) Patch(f *Fragment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patched[f.Name] = f
}

// MarkUsed records fragment as consumed even when it was not looked up,
// recombined spread halves for example.
func (s *Set) MarkUsed(name string) {
	s.markUsed(fragmentName(name))
}

func (s *Set) markUsed(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[name] = true
}

// Used returns names of fragments consumed through the set.
func (s *Set) Used() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]string, 0, len(s.used))
	for name := range s.used {
		res = append(res, name)
	}
	return res
}
