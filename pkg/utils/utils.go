package utils

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Fatal prints v and a stack trace, then exits the process.
func Fatal(v any) {
	fmt.Println("ldep: "+"\033[0;1;31mfatal:\033[0m", fmt.Sprintf("%s", v))
	debug.PrintStack()
	os.Exit(1)
}

// Assert aborts if condition is false. Used for invariants that
// indicate graph corruption rather than bad input.
func Assert(condition bool) {
	if !condition {
		Fatal("assertion failed")
	}
}

// Assertf is Assert with a formatted message.
func Assertf(condition bool, format string, args ...any) {
	if !condition {
		Fatal(fmt.Sprintf(format, args...))
	}
}

// RemoveIf returns elems with every element satisfying condition
// removed, reusing the backing array.
func RemoveIf[T any](elems []T, condition func(T) bool) []T {
	i := 0
	for _, elem := range elems {
		if condition(elem) {
			continue
		}
		elems[i] = elem
		i++
	}
	return elems[:i]
}
