package catalog

import (
	"strings"
)

// Markers are the repository roots recognised by Normalize, in the
// order they are tried.
var Markers = []string{"main", "contrib", "non-free"}

func isSep(c byte) bool {
	return c == '/' || c == '\\'
}

// Rebase finds the first run of path components that exactly matches
// the components of marker, and returns the path from the start of
// that run. Components are separated by '/' or '\'. A marker only
// matches whole components, so "contribX" never matches "contrib".
func Rebase(path, marker string) (string, bool) {
	if marker == "" {
		return "", false
	}
	want := strings.Split(marker, "/")

	// offsets of every component start in path
	starts := []int{0}
	for i := 0; i < len(path); i++ {
		if isSep(path[i]) {
			starts = append(starts, i+1)
		}
	}

	for k, start := range starts {
		if matchAt(path, starts[k:], want) {
			return path[start:], true
		}
	}
	return "", false
}

func matchAt(path string, starts []int, want []string) bool {
	if len(starts) < len(want) {
		return false
	}
	for i, component := range want {
		start := starts[i]
		end := len(path)
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		if path[start:end] != component {
			return false
		}
	}
	return true
}

// Normalize rebases a path onto one of the repository roots. The path
// is first rebased onto "pool/<component>" and then onto
// "<component>", so the result is relative to the pool directory.
func Normalize(path string) (string, bool) {
	for _, m := range Markers {
		p, ok := Rebase(path, "pool/"+m)
		if !ok {
			continue
		}
		if p, ok = Rebase(p, m); ok {
			return p, true
		}
	}
	return "", false
}

// NormalizeAll rebases every entry onto a repository root, dropping
// any entry that lives outside the repository.
func NormalizeAll(entries []Entry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		p, ok := Normalize(e.Path())
		if !ok {
			continue
		}
		// a path that rebases onto a bare component cannot be split and
		// fails the whole run
		ne, err := NewEntry(p)
		if err != nil {
			return nil, err
		}
		ne.size, ne.hasSize = e.size, e.hasSize
		out = append(out, ne)
	}
	return out, nil
}
