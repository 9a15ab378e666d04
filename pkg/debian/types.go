package debian

import (
	"github.com/djcass44/debcat/pkg/catalog"
)

// PackageRecord is the location information from a single stanza of a
// Packages or Sources listing.
type PackageRecord struct {
	Name string

	// single file form (Packages)
	FullPath string
	Size     *int64

	// multiple file form (Sources)
	Directory string
	Files     []catalog.File
}

// Record satisfies catalog.Recorder.
func (p *PackageRecord) Record() catalog.Record {
	return catalog.Record{
		Name:     p.Name,
		FullPath: p.FullPath,
		Size:     p.Size,
		Dir:      p.Directory,
		Files:    p.Files,
	}
}
