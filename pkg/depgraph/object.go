package depgraph

// Object represents one archive member or standalone compiled unit.
type Object struct {
	Name string
	Lib  *Library

	Exports []*Xref
	Imports []*Xref

	// Anchor is the link set this object currently belongs to, or nil
	// if it has not been linked yet.
	Anchor *LinkSet

	// Seq is the ingest order index; FindObjects orders its matches
	// by it.
	Seq int
}

func newObject(name string, seq int) *Object {
	return &Object{Name: name, Seq: seq}
}

// DisplayName renders the object as "lib[member]" for archive
// members, or the bare name otherwise.
func (o *Object) DisplayName() string {
	if o.Lib == nil {
		return o.Name
	}
	return o.Lib.ShortName() + "[" + o.Name + "]"
}

