// Package scanner parses nm -fposix-style object/symbol listings into
// a sequence of Sink events.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sink receives the two event kinds a listing can produce. It is
// satisfied by *depgraph.Graph.
type Sink interface {
	// BeginObject starts a new object, named either "name" or
	// "library[member]".
	BeginObject(displayName string) error
	// Symbol attributes one symbol occurrence, typed by its raw
	// (possibly lowercase, in lenient mode) type character, to the
	// most recently begun object. listingFile is passed through so the
	// sink can fabricate a fallback object name if no header preceded
	// it.
	Symbol(listingFile string, name string, typ byte) error
}

// SyntaxError reports a malformed input line, naming the listing file
// and line number.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Scan reads one listing from r, attributed to filename for error
// messages and fallback object naming, and feeds it to sink. A line
// that parses into neither an object header nor a symbol line is an
// error, except in lenient mode, where it is skipped. Type characters
// are passed to the sink unchanged; classifying them is the sink's
// job.
func Scan(r io.Reader, filename string, lenient bool, sink Sink) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		if header, ok := parseObjectHeader(line); ok {
			if err := sink.BeginObject(header); err != nil {
				return &SyntaxError{File: filename, Line: lineNo, Msg: err.Error()}
			}
			continue
		}

		name, typ, ok := parseSymbolLine(line)
		if !ok {
			if lenient {
				continue
			}
			return &SyntaxError{File: filename, Line: lineNo, Msg: fmt.Sprintf("unrecognized line %q", line)}
		}

		if err := sink.Symbol(filename, name, typ); err != nil {
			return &SyntaxError{File: filename, Line: lineNo, Msg: err.Error()}
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return nil
}

// parseObjectHeader recognizes "<name>:" with no intervening
// whitespace-separated type field, i.e. a line consisting of exactly
// one colon-terminated token. The terminating colon is mandatory.
func parseObjectHeader(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) != 1 {
		return "", false
	}
	tok := fields[0]
	if !strings.HasSuffix(tok, ":") {
		return "", false
	}
	return strings.TrimSuffix(tok, ":"), true
}

// parseSymbolLine recognizes "<name> <type-char> [<value> <size>]",
// ignoring any fields after the type character.
func parseSymbolLine(line string) (name string, typ byte, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, false
	}
	if len(fields[1]) != 1 {
		return "", 0, false
	}
	return fields[0], fields[1][0], true
}
