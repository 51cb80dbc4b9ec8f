package depgraph

// Direction selects which edge set the walker follows from an
// object.
type Direction int

const (
	// DirImports follows, from f, the first definer of each symbol f
	// imports. Only the first exporter of a given symbol is ever
	// followed; additional definitions are ignored during traversal.
	DirImports Direction = iota
	// DirExports follows, from f, every object importing a symbol f
	// exports.
	DirExports
)

// WalkContext is a single visitation: a visited set for cycle
// suppression plus, when built via WalkBuildList, the discovery-order
// list of every object reached. The caller owns it outright, so
// walks never interfere with each other and nothing needs releasing
// before the next one starts.
type WalkContext struct {
	dir     Direction
	visited map[*Object]bool
	list    []*Object
}

func newWalkContext(dir Direction) *WalkContext {
	return &WalkContext{dir: dir, visited: make(map[*Object]bool)}
}

// List returns the objects reached by a WalkBuildList call, in
// DFS pre-order discovery order.
func (c *WalkContext) List() []*Object {
	return c.list
}

// Iterate calls action once per object in c.List(), in discovery
// order.
func (c *WalkContext) Iterate(action func(obj *Object, depth int)) {
	for depth, obj := range c.list {
		action(obj, depth)
	}
}

// Release clears the context's state. Walking through a released (or
// fresh) context is always safe; Release exists as an explicit,
// testable "pair every build-list walk with exactly one release" step
// even though Go's garbage collector would reclaim an abandoned
// context on its own.
func (c *WalkContext) Release() {
	c.visited = make(map[*Object]bool)
	c.list = nil
}

func (c *WalkContext) next(f *Object) []*Xref {
	if c.dir == DirExports {
		return f.Exports
	}
	return f.Imports
}

func (c *WalkContext) followers(ref *Xref) []*Object {
	if c.dir == DirExports {
		out := make([]*Object, len(ref.Sym.ImportedFrom))
		for i, imp := range ref.Sym.ImportedFrom {
			out[i] = imp.Obj
		}
		return out
	}
	if exp := ref.Sym.FirstExporter(); exp != nil {
		return []*Object{exp}
	}
	return nil
}

// Walk performs a DFS pre-order traversal from start in direction
// dir, invoking visit once per visited object. start itself is
// visited. Cycles are broken by the context's visited set: an object
// already seen is never queued again.
func Walk(start *Object, dir Direction, visit func(obj *Object, depth int)) {
	ctx := newWalkContext(dir)
	ctx.visited[start] = true
	walkRec(ctx, start, 0, visit)
}

func walkRec(ctx *WalkContext, f *Object, depth int, visit func(*Object, int)) {
	if visit != nil {
		visit(f, depth)
	}
	for _, ref := range ctx.next(f) {
		for _, dep := range ctx.followers(ref) {
			if dep == f {
				continue
			}
			if ctx.visited[dep] {
				continue // break circular dependency
			}
			ctx.visited[dep] = true
			walkRec(ctx, dep, depth+1, visit)
		}
	}
}

// WalkBuildList performs the same traversal as Walk but materializes
// the result as an ordered work list on the returned context instead
// of invoking a callback. The caller should call Release on the
// context once done with it.
func WalkBuildList(start *Object, dir Direction) *WalkContext {
	ctx := newWalkContext(dir)
	ctx.visited[start] = true
	ctx.list = append(ctx.list, start)
	walkBuildRec(ctx, start, 0)
	return ctx
}

func walkBuildRec(ctx *WalkContext, f *Object, depth int) {
	for _, ref := range ctx.next(f) {
		for _, dep := range ctx.followers(ref) {
			if dep == f {
				continue
			}
			if ctx.visited[dep] {
				continue
			}
			ctx.visited[dep] = true
			ctx.list = append(ctx.list, dep)
			walkBuildRec(ctx, dep, depth+1)
		}
	}
}

// CheckAcyclic reports whether a build list contains no repeated
// object. Because WalkBuildList's list is built from a
// visited-set-guarded DFS, it can never actually contain one;
// CheckAcyclic exists so tests can assert that property explicitly
// rather than taking it on faith.
func (c *WalkContext) CheckAcyclic() bool {
	seen := make(map[*Object]bool, len(c.list))
	for _, obj := range c.list {
		if seen[obj] {
			return false
		}
		seen[obj] = true
	}
	return true
}
