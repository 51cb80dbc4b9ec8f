package depgraph

import (
	"fmt"
	"strings"
	"unicode"
)

// splitDisplayName recognizes the "library[member]" form of an object
// header and splits it. A bare name is returned with libName == "".
func splitDisplayName(name string) (objName, libName string, err error) {
	if !strings.HasSuffix(name, "]") {
		return name, "", nil
	}
	open := strings.LastIndexByte(name, '[')
	if open < 0 {
		return "", "", fmt.Errorf("malformed archive member name: %q (expected 'library[member]')", name)
	}
	return name[open+1 : len(name)-1], name[:open], nil
}

// BeginObject implements scanner.Sink: starts a new object, fixing up
// the previously current object's export list first.
func (g *Graph) BeginObject(displayName string) error {
	g.fixupObject(g.current)

	objName, libName, err := splitDisplayName(displayName)
	if err != nil {
		return err
	}

	obj, err := g.createObject(objName, libName)
	if err != nil {
		return err
	}
	g.current = obj
	return nil
}

// fallbackObjectName fabricates a synthetic object name from a
// listing file's base name, for use when a Symbol event arrives
// before any BeginObject.
func fallbackObjectName(listingFile string) string {
	base := listingFile
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		return base[:idx] + ".o"
	}
	return base + ".o"
}

// Symbol implements scanner.Sink: attributes one symbol occurrence to
// the most recently begun object.
func (g *Graph) Symbol(listingFile string, name string, typ byte) error {
	if g.lenient {
		typ = byte(unicode.ToUpper(rune(typ)))
	}

	if g.current == nil {
		g.current, _ = g.createObject(fallbackObjectName(listingFile), "")
	}

	code := TypeCode(typ)
	if code == TypeUnknown && !g.lenient {
		return fmt.Errorf("unknown symbol type '?' for %s (lenient mode required)", name)
	}
	if !code.IsExport() && code != TypeUndef && code != TypeUnknown {
		return fmt.Errorf("unknown symbol type %q for %s", string(typ), name)
	}

	sym := g.internSymbol(name)
	g.mergeType(sym, code, name)

	ref := &Xref{Sym: sym, Obj: g.current, Weak: code.IsWeak()}

	isImport := code == TypeUndef || (code == TypeUnknown && g.lenient)
	if isImport {
		g.current.Imports = append(g.current.Imports, ref)
	} else {
		g.current.Exports = append(g.current.Exports, ref)
	}
	return nil
}

// mergeType implements the type-merge policy: a U recorded type is
// overridden by any non-U new type; any other disagreement between
// two non-U types warns and keeps the first.
func (g *Graph) mergeType(sym *Symbol, newType TypeCode, name string) {
	switch {
	case sym.Type == TypeUndef && newType != TypeUndef:
		sym.Type = newType
	case sym.Type != newType && sym.Type != TypeUndef && newType != TypeUndef:
		Logger().Warnw("type mismatch between multiply defined symbols",
			"symbol", name, "known_as", string(sym.Type), "now", string(newType))
	}
}

// fixupObject appends every export of obj to its symbol's ExportedBy
// chain. Deferred per object so the ExportedBy chain's order matches
// ingest order of definitions across all objects, not per-object
// discovery order.
func (g *Graph) fixupObject(obj *Object) {
	if obj == nil {
		return
	}
	for _, ex := range obj.Exports {
		ex.Sym.ExportedBy = append(ex.Sym.ExportedBy, ex)
	}
}

// FinishIngest runs the final fix-up and the dangling-undefineds pass:
// every symbol with an empty ExportedBy chain gets one export Xref
// attached to the UndefinedPod, so the startup report and the pruner
// can find it via g.undefinedPod.Exports. The pod's Xref is
// deliberately not also appended to sym.ExportedBy: doing so would
// make IsDefinedAnywhere/FirstExporter see the pod as a real definer.
func (g *Graph) FinishIngest() {
	g.fixupObject(g.current)
	g.current = nil

	for _, name := range g.SortedSymbolNames() {
		sym := g.symbols[name]
		if sym.IsDefinedAnywhere() {
			continue
		}
		ref := &Xref{Sym: sym, Obj: g.undefinedPod}
		g.undefinedPod.Exports = append(g.undefinedPod.Exports, ref)
	}
}
