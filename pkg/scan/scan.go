package scan

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/djcass44/debcat/pkg/fileutil"
	"github.com/go-logr/logr"
)

// Walker lists the files of a repository tree, such as a mounted CD.
type Walker struct {
	rootfs fileutil.FS
	// prefix is prepended to every returned path
	prefix string
}

// NewWalker walks rootfs. Returned paths are joined onto prefix, which
// is normally the directory rootfs was opened from.
func NewWalker(rootfs fileutil.FS, prefix string) *Walker {
	return &Walker{
		rootfs: rootfs,
		prefix: strings.ReplaceAll(prefix, `\`, "/"),
	}
}

// Walk returns every file in the tree. Regular files (or links to
// them) are listed; directories are followed unless they are symbolic
// links, except for single digit directories which are always
// followed. Anything else is ignored. Backslashes are replaced with
// forward slashes.
func (w *Walker) Walk(ctx context.Context) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("prefix", w.prefix)
	log.V(1).Info("scanning directory")

	var out []string
	if err := w.walk(ctx, ".", &out); err != nil {
		return nil, err
	}
	log.V(1).Info("finished scanning directory", "files", len(out))
	return out, nil
}

func (w *Walker) walk(ctx context.Context, dir string, out *[]string) error {
	log := logr.FromContextOrDiscard(ctx)

	entries, err := w.rootfs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if name == "" || name == "." || name == ".." {
			continue
		}
		p := path.Join(dir, name)

		if fileutil.IsFile(w.rootfs, p) {
			*out = append(*out, w.Path(p))
			continue
		}
		if !fileutil.IsDir(w.rootfs, p) {
			log.V(5).Info("ignoring path", "path", p)
			continue
		}
		if !isDigitDir(name) {
			link, err := fileutil.IsSymbolicLink(w.rootfs, p)
			if err != nil {
				return err
			}
			if link {
				log.V(5).Info("skipping symbolic link", "path", p)
				continue
			}
		}
		if err := w.walk(ctx, p, out); err != nil {
			return err
		}
	}
	return nil
}

// Path converts a path within the walked filesystem into the returned
// form.
func (w *Walker) Path(p string) string {
	return strings.ReplaceAll(path.Join(w.prefix, p), `\`, "/")
}

// Size returns the size of a file reported by Walk.
func (w *Walker) Size(p string) (int64, bool) {
	rel := strings.TrimPrefix(strings.TrimPrefix(p, w.prefix), "/")
	info, err := w.rootfs.Stat(rel)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func isDigitDir(name string) bool {
	return len(name) == 1 && name[0] >= '0' && name[0] <= '9'
}
