package depgraph

import "github.com/straumann-tools/ldep/pkg/utils"

// LinkSet is one of the three named object sets: Application,
// Optional, or Undefined. Membership is realized as an ordered slice
// plus an index map for O(1) containment tests; removal is a linear
// slice delete.
type LinkSet struct {
	Name    string
	Members []*Object

	index map[*Object]int
}

func newLinkSet(name string) *LinkSet {
	return &LinkSet{Name: name, index: make(map[*Object]int)}
}

// Add appends obj to the set and anchors it. The caller must ensure
// obj is not already a member of any set; the three sets are
// pairwise disjoint.
func (s *LinkSet) Add(obj *Object) {
	s.index[obj] = len(s.Members)
	s.Members = append(s.Members, obj)
	obj.Anchor = s
}

// Contains reports whether obj is currently a member of this set.
func (s *LinkSet) Contains(obj *Object) bool {
	_, ok := s.index[obj]
	return ok
}

// Remove splices obj out of the set's membership and clears its
// anchor. Removing an object that is not a member is a no-op.
func (s *LinkSet) Remove(obj *Object) {
	if _, ok := s.index[obj]; !ok {
		return
	}
	// RemoveIf preserves the relative order of the surviving members:
	// the linker script is emitted in set membership order.
	s.Members = utils.RemoveIf(s.Members, func(o *Object) bool { return o == obj })
	delete(s.index, obj)
	for j, o := range s.Members {
		s.index[o] = j
	}
	obj.Anchor = nil
}
