package listfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/go-logr/logr"
)

const (
	FileName     = "list1.csv"
	ManifestName = "manifest.json"
)

// Name returns the location of the catalog file within a catalog
// directory.
func Name(dir string) string {
	return filepath.Join(dir, FileName)
}

// ReadDir reads the catalog stored in dir and returns it in canonical
// order.
func ReadDir(ctx context.Context, dir string) (catalog.Catalog, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)
	f, err := os.Open(Name(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing catalog: %w", err)
		}
		log.Error(err, "failed to open catalog")
		return nil, err
	}
	defer f.Close()

	log.V(1).Info("reading catalog from file")
	entries, err := Read(f)
	if err != nil {
		log.Error(err, "failed to read catalog")
		return nil, fmt.Errorf("reading %s: %w", Name(dir), err)
	}
	c := catalog.Sort(entries)
	log.V(1).Info("read catalog", "entries", len(entries), "unique", len(c))
	return c, nil
}

// WriteDir creates dir and writes the catalog and its manifest into
// it. The directory must not already exist.
func WriteDir(ctx context.Context, dir string, c catalog.Catalog, m Manifest) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("output dir already exists: %s", dir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeInto(ctx, log, dir, c, m)
}

// WriteExisting writes the catalog and manifest into a directory that
// already exists, such as the one a listing was downloaded into.
func WriteExisting(ctx context.Context, dir string, c catalog.Catalog, m Manifest) error {
	return writeInto(ctx, logr.FromContextOrDiscard(ctx).WithValues("dir", dir), dir, c, m)
}

func writeInto(ctx context.Context, log logr.Logger, dir string, c catalog.Catalog, m Manifest) error {
	log.V(1).Info("writing catalog", "entries", len(c))
	f, err := os.Create(Name(dir))
	if err != nil {
		return err
	}
	if err := Write(f, c); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	m.Entries = len(c)
	return WriteManifest(ctx, dir, m)
}
