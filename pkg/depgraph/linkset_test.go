package depgraph

import "testing"

func TestLinkSetRemovePreservesOrderOfSurvivors(t *testing.T) {
	s := newLinkSet("Test")
	a, b, c, d := newObject("a", 0), newObject("b", 1), newObject("c", 2), newObject("d", 3)

	for _, o := range []*Object{a, b, c, d} {
		s.Add(o)
	}

	s.Remove(b)

	want := []*Object{a, c, d}
	if len(s.Members) != len(want) {
		t.Fatalf("Members = %v, want %v", displayNames(s.Members), displayNames(want))
	}
	for i, o := range want {
		if s.Members[i] != o {
			t.Fatalf("Members[%d] = %s, want %s", i, s.Members[i].Name, o.Name)
		}
	}

	for i, o := range s.Members {
		if s.index[o] != i {
			t.Fatalf("index[%s] = %d, want %d", o.Name, s.index[o], i)
		}
	}

	if s.Contains(b) {
		t.Fatalf("Contains(b) = true after removal")
	}
	if b.Anchor != nil {
		t.Fatalf("removed object still has an anchor set")
	}
}

func TestLinkSetAddSetsAnchor(t *testing.T) {
	s := newLinkSet("Test")
	a := newObject("a", 0)
	s.Add(a)

	if a.Anchor != s {
		t.Fatalf("Add did not set the object's anchor")
	}
	if !s.Contains(a) {
		t.Fatalf("Contains(a) = false right after Add")
	}
}
