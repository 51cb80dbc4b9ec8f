// Package writer emits linker scripts from resolved link sets. It
// takes plain data rather than *depgraph.Graph types, so the
// emission format can be tested independent of the graph package.
package writer

import (
	"fmt"
	"io"
)

// ObjectView is the minimal per-object data the emitter needs: its
// display name and the names of the symbols it exports.
type ObjectView struct {
	DisplayName string
	Exports     []string
}

// LinkSetView is the minimal per-set data the emitter needs: a name
// for the banner and its members in membership order.
type LinkSetView struct {
	Name    string
	Members []ObjectView
}

// WriteScript emits, for each set in sets in order, a banner comment
// followed by one comment-plus-EXTERN-block per member object, in
// set membership order. If optionalOnly is true, any set named
// "Application" is skipped.
func WriteScript(w io.Writer, sets []LinkSetView, optionalOnly bool) error {
	for _, set := range sets {
		if optionalOnly && set.Name == "Application" {
			continue
		}
		if err := writeSet(w, set); err != nil {
			return err
		}
	}
	return nil
}

func writeSet(w io.Writer, set LinkSetView) error {
	if _, err := fmt.Fprintf(w, "/* ---- %s link set ---- */\n", set.Name); err != nil {
		return err
	}
	for _, obj := range set.Members {
		if _, err := fmt.Fprintf(w, "/* %s */\n", obj.DisplayName); err != nil {
			return err
		}
		for _, sym := range obj.Exports {
			if _, err := fmt.Fprintf(w, "EXTERN( %s )\n", sym); err != nil {
				return err
			}
		}
	}
	return nil
}
