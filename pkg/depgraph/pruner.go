package depgraph

// PruneUndefined handles every symbol defined nowhere: repeatedly
// unlink objects that import it until either the chain empties or
// only Application-reaching (rejected) importers remain.
// Application-set code is assumed resolvable by startup files or
// linker scripts the tool cannot see, so a rejection simply advances
// to the next importer rather than retrying forever.
func (g *Graph) PruneUndefined() {
	for _, ex := range g.undefinedPod.Exports {
		g.pruneSymbol(ex.Sym)
	}
}

func (g *Graph) pruneSymbol(sym *Symbol) {
	Logger().Debugw("removing objects depending on undefined symbol", "symbol", sym.Name)

	// A successful unlink splices its entry out of sym.ImportedFrom
	// in place (unlinkOne -> removeXref), so the slice shrinks under
	// us and the same index i then holds the next candidate; a
	// rejection leaves the entry in place and we advance past it.
	i := 0
	for i < len(sym.ImportedFrom) {
		obj := sym.ImportedFrom[i].Obj
		if g.UnlinkObject(obj) {
			Logger().Debugw("skipping application dependency", "object", obj.DisplayName())
			i++
			continue
		}
	}
}
