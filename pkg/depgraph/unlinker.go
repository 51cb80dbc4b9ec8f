package depgraph

// UnlinkObject removes f and every object that transitively depends
// on it via the EXPORTS direction, unless any object in that closure
// belongs to the Application set, in which case the whole operation
// is rejected and nothing is mutated. Returns true iff the removal
// was rejected.
func (g *Graph) UnlinkObject(f *Object) bool {
	ctx := WalkBuildList(f, DirExports)
	defer ctx.Release()

	rejected := false
	for _, obj := range ctx.List() {
		if obj.Anchor == g.Application {
			rejected = true
			break
		}
	}

	if rejected {
		Logger().Debugw("unlink rejected: needed by application", "object", f.DisplayName())
		return true
	}

	for _, obj := range ctx.List() {
		unlinkOne(obj)
	}

	checkUnlinkSanity(ctx.List())
	return false
}

// unlinkOne performs the per-object removal: splice every import
// edge out of its symbol's ImportedFrom chain, splice the object out
// of its link set, and clear its anchor.
func unlinkOne(g *Object) {
	for _, imp := range g.Imports {
		removeXref(&imp.Sym.ImportedFrom, imp)
	}
	if g.Anchor != nil {
		g.Anchor.Remove(g)
	}
}

// removeXref splices target out of chain by linear search; target is
// guaranteed present by invariant.
func removeXref(chain *[]*Xref, target *Xref) {
	for i, ref := range *chain {
		if ref == target {
			*chain = append((*chain)[:i], (*chain)[i+1:]...)
			return
		}
	}
}

// checkUnlinkSanity is the post-condition check: for every removed
// object, every symbol it exported must now have an ImportedFrom
// chain containing no surviving importer. Invariant violations abort
// the process; they are programming errors, not recoverable ones.
func checkUnlinkSanity(removed []*Object) {
	removedSet := make(map[*Object]bool, len(removed))
	for _, g := range removed {
		removedSet[g] = true
	}
	for _, g := range removed {
		for _, ex := range g.Exports {
			for _, imp := range ex.Sym.ImportedFrom {
				if !removedSet[imp.Obj] {
					panic("unlink sanity check failed: symbol " + ex.Sym.Name +
						" still imported by a surviving object after removing its exporter")
				}
			}
		}
	}
}
