package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalidRecord = errors.New("record has neither a file name nor a directory")

// File is a file name and size listed under a shared directory.
type File struct {
	Name string
	Size int64
}

// Record is the subset of a package stanza needed to locate its files.
// Either FullPath or Directory is set.
type Record struct {
	Name     string
	FullPath string
	Size     *int64
	Dir      string
	Files    []File
}

// Recorder is anything that can describe itself as a Record.
type Recorder interface {
	Record() Record
}

// FromRecords turns package records into entries. A record with a full
// path yields one entry; a record with a directory yields one entry per
// listed file.
func FromRecords[T Recorder](records []T) ([]Entry, error) {
	var out []Entry
	for _, r := range records {
		rec := r.Record()
		switch {
		case rec.FullPath != "":
			e, err := NewEntry(rec.FullPath)
			if err != nil {
				return nil, fmt.Errorf("package %s: %w", rec.Name, err)
			}
			if rec.Size != nil {
				e = e.WithSize(*rec.Size)
			}
			out = append(out, e)
		case rec.Dir != "":
			for _, f := range rec.Files {
				e, err := NewEntryFrom(rec.Dir, f.Name)
				if err != nil {
					return nil, fmt.Errorf("package %s: %w", rec.Name, err)
				}
				out = append(out, e.WithSize(f.Size))
			}
		default:
			return nil, fmt.Errorf("package %s: %w", rec.Name, ErrInvalidRecord)
		}
	}
	return out, nil
}

// StatFunc returns the size of the file at path, if it can be
// determined.
type StatFunc func(path string) (int64, bool)

// FromPaths turns full paths from a filesystem walk into entries. When
// stat is nil no sizes are recorded.
func FromPaths(paths []string, stat StatFunc) ([]Entry, error) {
	out := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, err := NewEntry(p)
		if err != nil {
			return nil, err
		}
		if stat != nil {
			if size, ok := stat(p); ok {
				e = e.WithSize(size)
			}
		}
		out = append(out, e)
	}
	return out, nil
}
