package depgraph

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// TrackSym prints everything known about a symbol: its definer(s)
// with weak flags, the forward (IMPORTS) dependency closure of its
// first definer, and the backward (EXPORTS) closure of each importer.
func TrackSym(w io.Writer, s *Symbol) {
	fmt.Fprintf(w, "What I know about Symbol '%s':\n", s.Name)
	fmt.Fprint(w, "  Defined in object: ")

	if !s.IsDefinedAnywhere() {
		fmt.Fprint(w, " NOWHERE!!!\n")
	} else {
		for i, ex := range s.ExportedBy {
			if i > 0 {
				fmt.Fprint(w, "      AND in object: ")
			}
			fmt.Fprintf(w, "%s%s\n", ex.Obj.DisplayName(), weakSuffix(ex.Weak))
		}
	}

	if len(s.ExportedBy) > 0 {
		first := s.ExportedBy[0].Obj
		fmt.Fprint(w, "  Depending on objects (triggers linkage of):")
		if len(first.Imports) == 0 {
			fmt.Fprint(w, " NONE\n")
		} else {
			fmt.Fprint(w, "\n")
			ctx := WalkBuildList(first, DirImports)
			printDepList(w, ctx, 1, 0)
			ctx.Release()
		}
	}

	fmt.Fprint(w, "  Objects depending (maybe indirectly) on this symbol:\n")
	fmt.Fprint(w, "  Note: the host object may depend on yet more objects due to other symbols...\n")

	if len(s.ImportedFrom) == 0 {
		fmt.Fprint(w, " NONE\n")
		return
	}
	fmt.Fprint(w, "\n")
	for _, imp := range s.ImportedFrom {
		ctx := WalkBuildList(imp.Obj, DirExports)
		printDepList(w, ctx, 0, 4)
		ctx.Release()
	}
}

// TrackObj prints a summary of one object: its exports, its imports,
// everything transitively depending on it, and everything it
// transitively depends on.
func TrackObj(w io.Writer, f *Object) {
	fmt.Fprintf(w, "What I know about object '%s':\n", f.DisplayName())

	fmt.Fprint(w, "  Exported symbols:\n")
	for _, ex := range f.Exports {
		fmt.Fprintf(w, "    %s\n", ex.Sym.Name)
	}

	fmt.Fprint(w, "  Imported symbols:\n")
	for _, imp := range f.Imports {
		fmt.Fprintf(w, "    %s\n", imp.Sym.Name)
	}

	fmt.Fprint(w, "  Objects depending on me (including indirect dependencies):\n")
	dependents := WalkBuildList(f, DirExports)
	printDepList(w, dependents, 0, 4)
	dependents.Release()

	fmt.Fprint(w, "  Objects I depend on (including indirect dependencies):\n")
	dependencies := WalkBuildList(f, DirImports)
	printDepList(w, dependencies, 0, 4)
	dependencies.Release()
}

func printDepList(w io.Writer, ctx *WalkContext, minDepth, indent int) {
	ctx.Iterate(func(obj *Object, depth int) {
		if depth < minDepth {
			return
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), obj.DisplayName())
	})
}

func weakSuffix(weak bool) string {
	if weak {
		return " (WEAK)"
	}
	return ""
}

// Clash describes one name-clash finding from CheckMultipleDefs.
type Clash struct {
	Symbol   *Symbol
	Definers []*Xref
}

// CheckMultipleDefs scans every object in set for exported symbols
// defined by more than one object, excluding common (type C) symbols
// and symbols with fewer than two non-weak definers from the report.
func CheckMultipleDefs(w io.Writer, set *LinkSet) []Clash {
	fmt.Fprintf(w, "Checking for multiply defined symbols in the %s link set:\n", set.Name)

	seen := make(map[*Symbol]bool)
	var clashes []Clash

	for _, f := range set.Members {
		for _, ex := range f.Exports {
			sym := ex.Sym
			if seen[sym] || len(sym.ExportedBy) < 2 {
				continue
			}
			seen[sym] = true

			if sym.Type == TypeCommon {
				continue
			}

			strong := 0
			for _, d := range sym.ExportedBy {
				if !d.Weak {
					strong++
				}
			}
			if strong < 2 {
				continue
			}

			clashes = append(clashes, Clash{Symbol: sym, Definers: sym.ExportedBy})
			fmt.Fprintf(w, "WARNING: Name Clash Detected; symbol '%s' (type '%c') exported by multiple objects:\n",
				sym.Name, byte(sym.Type))
			for _, d := range sym.ExportedBy {
				fmt.Fprintf(w, "  in '%s'%s\n", d.Obj.DisplayName(), weakClashSuffix(d.Weak))
			}
		}
	}

	fmt.Fprint(w, "OK\n")
	return clashes
}

func weakClashSuffix(weak bool) string {
	if weak {
		return " (WEAK [not implemented yet])"
	}
	return ""
}

// FindObjects parses a "name" or "lib[member]" display name and
// returns every matching object, in ingest order. Duplicates are
// permitted and surfaced to the caller for disambiguation.
func (g *Graph) FindObjects(displayName string) ([]*Object, error) {
	objName, libName, err := splitDisplayName(displayName)
	if err != nil {
		return nil, err
	}

	var matches []*Object
	for _, o := range g.Objects {
		if o.Name != objName {
			continue
		}
		if libName != "" {
			if o.Lib == nil || o.Lib.Name != libName {
				continue
			}
		}
		matches = append(matches, o)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Seq < matches[j].Seq
	})
	return matches, nil
}
