package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("file name invalid")

// Entry is a single file within the repository.
type Entry struct {
	dir     string
	name    string
	size    int64
	hasSize bool
}

// NewEntry derives an Entry by splitting a full path at its last
// separator.
func NewEntry(fullPath string) (Entry, error) {
	dir, name, err := Split(fullPath)
	if err != nil {
		return Entry{}, err
	}
	return Entry{dir: dir, name: name}, nil
}

// NewEntryFrom creates an Entry from an already split directory and
// file name.
func NewEntryFrom(dir, name string) (Entry, error) {
	if dir == "" || name == "" || strings.ContainsAny(name, `/\`) {
		return Entry{}, fmt.Errorf("%w: %q %q", ErrInvalidPath, dir, name)
	}
	return Entry{dir: dir, name: name}, nil
}

// Split splits a path into its directory and base name at the last
// '/' or '\'. A path without a separator, with the separator at the
// start or with a trailing separator is invalid.
func Split(fullPath string) (string, string, error) {
	idx := strings.LastIndexAny(fullPath, `/\`)
	if idx <= 0 || idx+1 >= len(fullPath) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPath, fullPath)
	}
	return fullPath[:idx], fullPath[idx+1:], nil
}

// WithSize returns a copy of the Entry with a known size.
func (e Entry) WithSize(size int64) Entry {
	e.size = size
	e.hasSize = true
	return e
}

func (e Entry) Directory() string {
	return e.dir
}

func (e Entry) FileName() string {
	return e.name
}

// Size returns the recorded size, if one is known.
func (e Entry) Size() (int64, bool) {
	return e.size, e.hasSize
}

// Path joins the directory and file name.
func (e Entry) Path() string {
	return e.dir + "/" + e.name
}

func (e Entry) String() string {
	if e.hasSize {
		return fmt.Sprintf("%s,%s,%d", e.dir, e.name, e.size)
	}
	return e.dir + "," + e.name
}
