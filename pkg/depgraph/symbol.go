package depgraph

// TypeCode classifies a symbol occurrence.
type TypeCode byte

const (
	TypeText     TypeCode = 'T'
	TypeData     TypeCode = 'D'
	TypeBSS      TypeCode = 'B'
	TypeRodata   TypeCode = 'R'
	TypeGlobal   TypeCode = 'G'
	TypeSmall    TypeCode = 'S'
	TypeAbsolute TypeCode = 'A'
	TypeCommon   TypeCode = 'C'
	TypeWeakObj  TypeCode = 'W'
	TypeWeakVal  TypeCode = 'V'
	TypeUndef    TypeCode = 'U'
	TypeUnknown  TypeCode = '?'
)

// IsExport reports whether a symbol occurrence with this type code is
// a definition (export) rather than a reference (import).
func (t TypeCode) IsExport() bool {
	switch t {
	case TypeText, TypeData, TypeBSS, TypeRodata, TypeGlobal, TypeSmall,
		TypeAbsolute, TypeCommon, TypeWeakObj, TypeWeakVal:
		return true
	}
	return false
}

// IsWeak reports whether this type code marks a weak definition.
func (t TypeCode) IsWeak() bool {
	return t == TypeWeakObj || t == TypeWeakVal
}

// Symbol is one linker name.
type Symbol struct {
	Name string
	Type TypeCode

	// ExportedBy holds one Xref per object defining this symbol, in
	// ingest order across all objects.
	ExportedBy []*Xref
	// ImportedFrom holds one Xref per object referencing this symbol,
	// installed during the linker step, not at ingest time.
	ImportedFrom []*Xref
}

func newSymbol(name string) *Symbol {
	return &Symbol{Name: name, Type: TypeUndef}
}

// IsDefinedAnywhere reports whether any real object exports this
// symbol.
func (s *Symbol) IsDefinedAnywhere() bool {
	return len(s.ExportedBy) > 0
}

// FirstExporter returns the object whose export Xref comes first in
// ExportedBy, or nil if the symbol is undefined. Traversal through
// the IMPORTS direction follows only this object, regardless of weak
// flags.
func (s *Symbol) FirstExporter() *Object {
	if len(s.ExportedBy) == 0 {
		return nil
	}
	return s.ExportedBy[0].Obj
}
