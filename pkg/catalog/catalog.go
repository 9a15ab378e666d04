package catalog

import (
	"slices"

	"github.com/djcass44/debcat/pkg/strutil"
)

// Catalog is an ordered set of entries with unique (directory, file
// name) keys.
type Catalog []Entry

// compareKey orders two entries by directory, then by file name.
// Sizes never take part in ordering or equality.
func compareKey(a, b Entry) int {
	return int(strutil.ComparePair(a.dir, a.name, b.dir, b.name))
}

// Sort builds the canonical Catalog from entries in any order. When
// several entries share a key, the first one in input order is kept
// along with its size.
func Sort(entries []Entry) Catalog {
	out := slices.Clone(entries)
	// stable, so that the first-seen entry leads each run of equal keys
	slices.SortStableFunc(out, compareKey)
	return Catalog(slices.CompactFunc(out, func(a, b Entry) bool {
		return compareKey(a, b) == 0
	}))
}

// Insert adds an entry at its ordered position by binary search. An
// entry whose key is already present is discarded and false is
// returned.
func (c *Catalog) Insert(e Entry) bool {
	idx, found := slices.BinarySearchFunc(*c, e, compareKey)
	if found {
		return false
	}
	*c = slices.Insert(*c, idx, e)
	return true
}

// Contains reports whether an entry with the same key exists in a
// sorted Catalog.
func (c Catalog) Contains(e Entry) bool {
	_, found := slices.BinarySearchFunc(c, e, compareKey)
	return found
}

// Find returns the entry stored under the given key.
func (c Catalog) Find(dir, name string) (Entry, bool) {
	idx, found := slices.BinarySearchFunc(c, Entry{dir: dir, name: name}, compareKey)
	if !found {
		return Entry{}, false
	}
	return c[idx], true
}

// IsSorted reports whether the Catalog is in strictly increasing key
// order.
func (c Catalog) IsSorted() bool {
	for i := 1; i < len(c); i++ {
		if compareKey(c[i-1], c[i]) >= 0 {
			return false
		}
	}
	return true
}

// Diff returns the entries of candidate whose key is not present in
// reference, in candidate order. Both catalogs must be sorted. Only
// keys are compared, so an entry whose size changed is not reported.
func Diff(reference, candidate Catalog) Catalog {
	out := Catalog{}
	for _, e := range candidate {
		if !reference.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}
