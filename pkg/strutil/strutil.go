package strutil

import "strings"

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders two strings byte by byte. A string that is a strict
// prefix of the other is Less.
func Compare(a, b string) Ordering {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return Less
		case a[i] > b[i]:
			return Greater
		}
	}
	switch {
	case len(a) < len(b):
		return Less
	case len(a) > len(b):
		return Greater
	}
	return Equal
}

// ComparePair orders (a1, a2) against (b1, b2), comparing the second
// element only when the first ones are equal.
func ComparePair(a1, a2, b1, b2 string) Ordering {
	if o := Compare(a1, b1); o != Equal {
		return o
	}
	return Compare(a2, b2)
}

// Count returns the number of separators in s.
func Count(s string, sep byte) int {
	return strings.Count(s, string(sep))
}

// Field returns the i'th field of s when split on sep. The second
// return value is false when s does not have that many fields, which
// is distinct from a field that is present but empty.
func Field(s string, i int, sep byte) (string, bool) {
	if i < 0 {
		return "", false
	}
	for ; i > 0; i-- {
		idx := strings.IndexByte(s, sep)
		if idx < 0 {
			return "", false
		}
		s = s[idx+1:]
	}
	if idx := strings.IndexByte(s, sep); idx >= 0 {
		return s[:idx], true
	}
	return s, true
}

// SplitN splits s on sep and reports whether it produced exactly n
// fields.
func SplitN(s string, sep byte, n int) ([]string, bool) {
	fields := strings.Split(s, string(sep))
	return fields, len(fields) == n
}
