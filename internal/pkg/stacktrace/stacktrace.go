// Package stacktrace trims goroutine stack dumps to the frames of this module.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a raw
// stack trace such as the output of runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)
		_, rel, found := strings.Cut(line, "/internal/")
		if !found {
			continue
		}
		loc, _, _ := strings.Cut(rel, " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}
		paths = append(paths, "internal/"+loc)
	}
	return paths
}
