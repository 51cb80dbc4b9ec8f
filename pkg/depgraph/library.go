package depgraph

import "strings"

// Library groups objects by originating archive, used only for
// disambiguation in human-facing lookup.
type Library struct {
	Name    string
	Members []*Object
}

func newLibrary(name string) *Library {
	return &Library{Name: name}
}

func (l *Library) addMember(o *Object) {
	l.Members = append(l.Members, o)
	o.Lib = l
}

// ShortName strips any directory prefix from the library's path, for
// use when formatting "lib[member]".
func (l *Library) ShortName() string {
	if idx := strings.LastIndexByte(l.Name, '/'); idx >= 0 {
		return l.Name[idx+1:]
	}
	return l.Name
}
