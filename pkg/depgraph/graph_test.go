package depgraph

import "testing"

// ingestObject is a small test helper that feeds a graph the events one
// would get from scanning a listing naming obj, followed by its
// exports and imports.
func ingestObject(t *testing.T, g *Graph, display string, exports, imports []string) {
	t.Helper()
	if err := g.BeginObject(display); err != nil {
		t.Fatalf("BeginObject(%q): %v", display, err)
	}
	for _, name := range exports {
		if err := g.Symbol("test.nm", name, byte(TypeText)); err != nil {
			t.Fatalf("export Symbol(%q): %v", name, err)
		}
	}
	for _, name := range imports {
		if err := g.Symbol("test.nm", name, byte(TypeUndef)); err != nil {
			t.Fatalf("import Symbol(%q): %v", name, err)
		}
	}
}

// scenario 1: app.nm has A.o (exports main, imports foo); lib.nm has
// libx.a[b.o] (exports foo, imports bar) and libx.a[c.o] (exports bar).
func TestScenarioApplicationClosurePullsInLibraryMembers(t *testing.T) {
	g := New(false, false)

	ingestObject(t, g, "A.o", []string{"main"}, []string{"foo"})
	appBoundary := g.Objects[len(g.Objects)-1]

	ingestObject(t, g, "libx.a[b.o]", []string{"foo"}, []string{"bar"})
	ingestObject(t, g, "libx.a[c.o]", []string{"bar"}, nil)

	g.FinishIngest()
	g.SeedFromWatermark(appBoundary)
	g.PruneUndefined()

	if len(g.Application.Members) != 3 {
		t.Fatalf("Application = %v, want 3 members", displayNames(g.Application.Members))
	}
	if len(g.Optional.Members) != 0 {
		t.Fatalf("Optional = %v, want empty", displayNames(g.Optional.Members))
	}
	if len(g.UndefinedPod().Exports) != 0 {
		t.Fatalf("expected no undefined symbols")
	}
}

// scenario 2: same as scenario 1 but c.o (which defines bar) is
// missing. b.o's import of bar is now undefined; the pruner must try
// to unlink b.o and be rejected because A.o (Application) depends on
// foo, which b.o exports.
func TestScenarioUndefinedPruneRejectedByApplicationDependency(t *testing.T) {
	g := New(false, false)

	ingestObject(t, g, "A.o", []string{"main"}, []string{"foo"})
	appBoundary := g.Objects[len(g.Objects)-1]

	ingestObject(t, g, "libx.a[b.o]", []string{"foo"}, []string{"bar"})

	g.FinishIngest()
	g.SeedFromWatermark(appBoundary)

	barSym, ok := g.LookupSymbol("bar")
	if !ok || barSym.IsDefinedAnywhere() {
		t.Fatalf("expected bar to be undefined")
	}

	g.PruneUndefined()

	bObj := mustFind(t, g, "libx.a[b.o]")
	if bObj.Anchor != g.Application {
		t.Fatalf("b.o was removed, want it to survive as an Application member")
	}
	if len(g.Application.Members) != 2 {
		t.Fatalf("Application = %v, want {A.o, b.o}", displayNames(g.Application.Members))
	}
}

// scenario 3: an Optional-only object (d.o) importing a symbol no one
// defines (ghost) and exporting an unused symbol (helper) should be
// removed by the pruner, since nothing in Application depends on it.
func TestScenarioOptionalObjectPrunedForUndefinedImport(t *testing.T) {
	g := New(false, false)

	ingestObject(t, g, "A.o", []string{"main"}, []string{"foo"})
	appBoundary := g.Objects[len(g.Objects)-1]

	ingestObject(t, g, "libx.a[b.o]", []string{"foo"}, []string{"bar"})
	ingestObject(t, g, "libx.a[c.o]", []string{"bar"}, nil)
	ingestObject(t, g, "libx.a[d.o]", []string{"helper"}, []string{"ghost"})

	g.FinishIngest()
	g.SeedFromWatermark(appBoundary)
	g.PruneUndefined()

	matches, err := g.FindObjects("libx.a[d.o]")
	if err != nil {
		t.Fatalf("FindObjects: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("FindObjects(d.o) = %v, want exactly one match", displayNames(matches))
	}
	if matches[0].Anchor != nil {
		t.Fatalf("d.o should have been pruned, still anchored to %s", matches[0].Anchor.Name)
	}
}

// scenario 4: a removal list naming "b.o" where two libraries each
// have a b.o member is ambiguous; FindObjects must report both
// without the caller silently picking one.
func TestScenarioAmbiguousRemovalNameReportsAllMatches(t *testing.T) {
	g := New(false, false)

	ingestObject(t, g, "A.o", []string{"main"}, nil)
	ingestObject(t, g, "libx.a[b.o]", []string{"foo"}, nil)
	ingestObject(t, g, "liby.a[b.o]", []string{"foo2"}, nil)

	g.FinishIngest()
	g.SeedFromWatermark(g.Objects[0])

	matches, err := g.FindObjects("b.o")
	if err != nil {
		t.Fatalf("FindObjects: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("FindObjects(%q) = %v, want 2 ambiguous matches", "b.o", displayNames(matches))
	}
}

// scenario 5: two objects exporting the same non-common symbol type
// must be flagged by CheckMultipleDefs, and linking must still
// proceed (no abort).
func TestScenarioMultipleDefinitionsReported(t *testing.T) {
	g := New(false, false)

	ingestObject(t, g, "p.o", []string{"sym"}, nil)
	ingestObject(t, g, "q.o", []string{"sym"}, nil)

	g.FinishIngest()
	g.SeedFromWatermark(g.Objects[len(g.Objects)-1])

	var buf discardWriter
	clashes := CheckMultipleDefs(&buf, g.Application)
	if len(clashes) != 1 {
		t.Fatalf("CheckMultipleDefs found %d clashes, want 1", len(clashes))
	}
	if clashes[0].Symbol.Name != "sym" {
		t.Fatalf("clash symbol = %q, want sym", clashes[0].Symbol.Name)
	}
}

// scenario 6: a weak export and a strong export of the same symbol
// coexist in ExportedBy without a clash warning, and traversal from
// an importer follows the first (ingest-order) definer regardless of
// weak flags.
func TestScenarioWeakAndStrongExportsCoexistWithoutClash(t *testing.T) {
	g := New(false, false)

	if err := g.BeginObject("p.o"); err != nil {
		t.Fatal(err)
	}
	if err := g.Symbol("t.nm", "sym", byte(TypeWeakObj)); err != nil {
		t.Fatal(err)
	}
	if err := g.BeginObject("q.o"); err != nil {
		t.Fatal(err)
	}
	if err := g.Symbol("t.nm", "sym", byte(TypeText)); err != nil {
		t.Fatal(err)
	}
	g.FinishIngest()

	sym, ok := g.LookupSymbol("sym")
	if !ok {
		t.Fatalf("sym not found")
	}
	if len(sym.ExportedBy) != 2 {
		t.Fatalf("ExportedBy = %d entries, want 2", len(sym.ExportedBy))
	}

	if first := sym.FirstExporter(); first.DisplayName() != "p.o" {
		t.Fatalf("FirstExporter() = %s, want p.o (ingest order, weak flag ignored)", first.DisplayName())
	}

	g.SeedFromWatermark(g.Objects[len(g.Objects)-1])
	if clashes := CheckMultipleDefs(discardWriter{}, g.Application); len(clashes) != 0 {
		t.Fatalf("CheckMultipleDefs found %d clashes, want none for one weak and one strong definer", len(clashes))
	}
}

func displayNames(objs []*Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.DisplayName()
	}
	return out
}

func mustFind(t *testing.T, g *Graph, name string) *Object {
	t.Helper()
	matches, err := g.FindObjects(name)
	if err != nil || len(matches) != 1 {
		t.Fatalf("FindObjects(%q) = %v, %v", name, matches, err)
	}
	return matches[0]
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
