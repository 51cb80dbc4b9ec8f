package depgraph

import "fmt"

// CheckObjectPointers verifies that every Xref's Obj back-pointer
// still names the object that owns it, for every object the graph
// knows about. It is a debug invariant, not a recoverable error
// path: violations are programming errors, not input errors. Callers
// that don't care about the distinction can just check the returned
// error for nil. Run at startup and again before script emission.
func (g *Graph) CheckObjectPointers() error {
	errs := 0
	check := func(obj *Object, refs []*Xref, kind string) {
		for i, ref := range refs {
			if ref.Obj != obj {
				Logger().Errorw("object pointer corrupted", "object", obj.DisplayName(), "kind", kind, "index", i)
				errs++
			}
		}
	}

	check(g.undefinedPod, g.undefinedPod.Exports, "export")
	for _, f := range g.Objects {
		check(f, f.Exports, "export")
		check(f, f.Imports, "import")
	}

	if errs > 0 {
		return fmt.Errorf("object pointer sanity check failed: %d corrupted back-pointer(s)", errs)
	}
	return nil
}
