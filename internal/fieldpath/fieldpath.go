// Package fieldpath resolves dot-notation paths against JSON-shaped values.
//
// A path is a sequence of dot-separated segments. A segment made entirely of
// decimal digits indexes a sequence ([]any); any other segment looks up a key
// in a mapping (map[string]any). Paths like "issues.0.status.name" therefore
// address arbitrarily nested tool responses.
package fieldpath

import (
	"strconv"
	"strings"
)

// Resolve walks tree along path and returns the value it lands on.
// The second return is false when any segment fails to resolve: a missing
// key, an out-of-bounds index, or a node of the wrong shape. A present nil
// value resolves with ok=true; absence and null are distinct.
func Resolve(tree any, path string) (any, bool) {
	current := tree
	for _, segment := range strings.Split(path, ".") {
		if isDigits(segment) {
			seq, ok := current.([]any)
			if !ok {
				return nil, false
			}
			// An index too large for int is out of bounds by definition.
			idx, err := strconv.Atoi(segment)
			if err != nil || idx >= len(seq) {
				return nil, false
			}
			current = seq[idx]
			continue
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[segment]
		if !ok {
			return nil, false
		}
		current = v
	}
	return current, true
}

// isDigits reports whether a segment is composed entirely of decimal digits
// and therefore addresses a sequence index.
func isDigits(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
