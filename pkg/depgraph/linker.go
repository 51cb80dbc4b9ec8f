package depgraph

// LinkObject assigns f's transitive import closure into f.Anchor's
// link set. The caller must have already set
// f.Anchor (via LinkSet.Add) before calling; LinkObject recurses into
// every provider that is not yet anchored, assigning it the same
// anchor so that reachability from any seed in a set pulls in every
// provider unless that provider already belongs to some set -
// Application membership therefore dominates Optional membership
// whenever an object could satisfy both, because the driver seeds
// Application objects first.
func LinkObject(f *Object) {
	Logger().Debugw("linking object", "object", f.DisplayName(), "set", f.Anchor.Name)

	for _, imp := range f.Imports {
		imp.Sym.ImportedFrom = append(imp.Sym.ImportedFrom, imp)

		dep := imp.Sym.FirstExporter()
		if dep == nil {
			Logger().Warnw("symbol undefined", "object", f.DisplayName(), "symbol", imp.Sym.Name)
			continue
		}
		if dep.Anchor == nil {
			f.Anchor.Add(dep)
			LinkObject(dep)
		}
	}
}

// SeedAndLink assigns seed the given anchor and links it, unless it
// is already anchored, in which case it is left as-is.
func SeedAndLink(seed *Object, anchor *LinkSet) {
	if seed.Anchor != nil {
		return
	}
	anchor.Add(seed)
	LinkObject(seed)
}

// SeedFromWatermark runs the driver's default seeding strategy:
// objects are walked in ingest order; everything before appBoundary
// (inclusive) seeds the Application set by default, everything after
// seeds Optional, unless a prior pull already anchored it.
func (g *Graph) SeedFromWatermark(appBoundary *Object) {
	anchor := g.Application
	for _, f := range g.Objects {
		SeedAndLink(f, anchor)
		if f == appBoundary {
			anchor = g.Optional
		}
	}
}

// SeedFromEntrySymbol implements the "-A <sym>" alternative seeding
// strategy: the object defining sym becomes the sole Application
// seed, and every other unanchored object seeds Optional in ingest
// order. It is a fatal input error for sym to have no definition.
func (g *Graph) SeedFromEntrySymbol(symName string) error {
	sym, ok := g.LookupSymbol(symName)
	if !ok || !sym.IsDefinedAnywhere() {
		return &UndefinedEntrySymbolError{Symbol: symName}
	}

	SeedAndLink(sym.FirstExporter(), g.Application)
	for _, f := range g.Objects {
		SeedAndLink(f, g.Optional)
	}
	return nil
}

// UndefinedEntrySymbolError is returned by SeedFromEntrySymbol when
// the named entry symbol has no definition anywhere in the graph.
type UndefinedEntrySymbolError struct {
	Symbol string
}

func (e *UndefinedEntrySymbolError) Error() string {
	return "entry symbol '" + e.Symbol + "' is not defined anywhere"
}
