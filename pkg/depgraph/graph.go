// Package depgraph implements the symbol/object dependency graph, the
// link-set construction algorithm, the transitive dependency walker,
// and the transitive un-link (pruning) algorithm: the core of the
// object-file dependency analyzer.
package depgraph

import (
	"fmt"
	"sort"

	"github.com/straumann-tools/ldep/pkg/arena"
)

// UndefinedPodName is the display name of the sentinel object whose
// exports hold one entry per symbol defined nowhere.
const UndefinedPodName = "<UNDEFINED>"

// Graph is the single handle threading every package entry point:
// the name arena, the object and symbol tables, the library index,
// and the three link sets. There is no global driver state; every
// entry point takes a *Graph explicitly.
type Graph struct {
	arena *arena.Arena

	Objects     []*Object
	symbolOrder []string // insertion order, for stable diagnostics
	symbols     map[string]*Symbol

	libraries []*Library
	libByName map[string]*Library

	Application *LinkSet
	Optional    *LinkSet
	Undefined   *LinkSet

	undefinedPod *Object

	// lenient enables the scanner's "-f" relaxed mode: unknown type
	// codes are treated as imports instead of erroring, and lowercase
	// type characters are upcased before classification.
	lenient bool
	// warnUndefined is recorded from New's argument but not read:
	// LinkObject logs a warning for every undefined import regardless
	// of it.
	warnUndefined bool

	// current is the object most recently begun via BeginObject, the
	// target of the next Symbol events, until the next BeginObject or
	// FinishIngest triggers its export fix-up.
	current *Object

	sortedIndex []*Object // not populated; FindObjects scans Objects directly
}

// New creates an empty analyzer. lenient mirrors the CLI's "-f" flag;
// warnUndefined is stored as described on the field.
func New(lenient, warnUndefined bool) *Graph {
	g := &Graph{
		arena:         arena.New(),
		symbols:       make(map[string]*Symbol),
		libByName:     make(map[string]*Library),
		lenient:       lenient,
		warnUndefined: warnUndefined,
	}
	g.Application = newLinkSet("Application")
	g.Optional = newLinkSet("Optional")
	g.Undefined = newLinkSet("UNDEFINED")

	g.undefinedPod = newObject(UndefinedPodName, -1)
	g.Undefined.Add(g.undefinedPod)

	return g
}

// UndefinedPod returns the synthetic sentinel object.
func (g *Graph) UndefinedPod() *Object { return g.undefinedPod }

// Libraries returns every library created during ingest, in creation
// order.
func (g *Graph) Libraries() []*Library { return g.libraries }

func (g *Graph) intern(s string) string { return g.arena.Intern(s) }

// internSymbol looks up name in the symbol table, creating it (with
// type Undef) if absent.
func (g *Graph) internSymbol(name string) *Symbol {
	name = g.intern(name)
	if sym, ok := g.symbols[name]; ok {
		return sym
	}
	sym := newSymbol(name)
	g.symbols[name] = sym
	g.symbolOrder = append(g.symbolOrder, name)
	return sym
}

// LookupSymbol looks up an existing symbol by name, returning (nil,
// false) if it has never been seen.
func (g *Graph) LookupSymbol(name string) (*Symbol, bool) {
	sym, ok := g.symbols[name]
	return sym, ok
}

// SortedSymbolNames returns every known symbol name in lexical order.
func (g *Graph) SortedSymbolNames() []string {
	names := make([]string, len(g.symbolOrder))
	copy(names, g.symbolOrder)
	sort.Strings(names)
	return names
}

// createLibrary returns the library named name, creating it if this
// is the first object ingested from it.
func (g *Graph) createLibrary(name string) *Library {
	name = g.intern(name)
	if lib, ok := g.libByName[name]; ok {
		return lib
	}
	lib := newLibrary(name)
	g.libByName[name] = lib
	g.libraries = append(g.libraries, lib)
	return lib
}

// createObject appends a new object to the global object list,
// optionally attaching it to a library.
func (g *Graph) createObject(name string, libName string) (*Object, error) {
	name = g.intern(name)

	if libName != "" {
		lib := g.createLibrary(libName)
		for _, m := range lib.Members {
			if m.Name == name {
				return nil, fmt.Errorf("duplicate archive member %s[%s]", libName, name)
			}
		}
		obj := newObject(name, len(g.Objects))
		lib.addMember(obj)
		g.Objects = append(g.Objects, obj)
		return obj, nil
	}

	obj := newObject(name, len(g.Objects))
	g.Objects = append(g.Objects, obj)
	return obj, nil
}
