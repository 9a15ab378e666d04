package downloader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	v1 "github.com/djcass44/debcat/pkg/api/v1"
	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-getter"
)

// RepoDir is the directory under the output directory that files are
// downloaded into.
const RepoDir = "repo-new"

type Downloader struct {
	mirror v1.MirrorSpec
	dir    string
}

// Result counts what a Sync did.
type Result struct {
	Downloaded int
	Skipped    int
}

func NewDownloader(mirror v1.MirrorSpec, outputDir string) (*Downloader, error) {
	dir := filepath.Join(outputDir, RepoDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Downloader{mirror: mirror, dir: dir}, nil
}

// Target returns where an entry is stored locally.
func (d *Downloader) Target(e catalog.Entry) string {
	return filepath.Join(d.dir, filepath.FromSlash(e.Directory()), e.FileName())
}

// NeedsDownload compares the local copy of an entry against its
// recorded size. When the size is unknown, any existing file is
// considered complete.
func (d *Downloader) NeedsDownload(e catalog.Entry) bool {
	info, err := os.Stat(d.Target(e))
	if err != nil || !info.Mode().IsRegular() {
		return true
	}
	size, ok := e.Size()
	if !ok {
		return false
	}
	return info.Size() != size
}

// Sync fetches every entry that is missing or incomplete locally. The
// first failure aborts the run.
func (d *Downloader) Sync(ctx context.Context, entries []catalog.Entry) (Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	var res Result
	for i, e := range entries {
		if !d.NeedsDownload(e) {
			log.V(2).Info("dont need to download", "file", e.FileName(), "dir", e.Directory())
			res.Skipped++
			continue
		}
		if _, err := d.Download(ctx, e); err != nil {
			return res, err
		}
		res.Downloaded++
		if (i+1)%100 == 0 {
			log.V(1).Info("download progress", "done", i+1, "total", len(entries))
		}
	}
	log.Info("finished downloading", "downloaded", res.Downloaded, "skipped", res.Skipped)
	return res, nil
}

// Download fetches a single entry from the pool of the mirror.
func (d *Downloader) Download(ctx context.Context, e catalog.Entry) (string, error) {
	src := d.mirror.PoolURL(e.Directory(), e.FileName())
	log := logr.FromContextOrDiscard(ctx).WithValues("src", src)
	log.Info("downloading file")

	uri, err := url.Parse(src)
	if err != nil {
		log.Error(err, "failed to parse url")
		return "", err
	}
	// disable archive handling, source tarballs must be kept as-is
	q := uri.Query()
	q.Set("archive", "false")
	uri.RawQuery = q.Encode()

	dst := d.Target(e)
	log.V(1).Info("preparing to download file", "dst", dst)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	client := &getter.Client{
		Ctx:             ctx,
		Src:             uri.String(),
		Dst:             dst,
		Mode:            getter.ClientModeFile,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		log.Error(err, "failed to download file")
		return "", fmt.Errorf("file download failed: %s: %w", e.FileName(), err)
	}
	// we need to chmod the files so that the root group
	// can access them as if they were the owner
	if err := os.Chmod(dst, 0664); err != nil {
		log.Error(err, "failed to update file permissions", "file", dst)
		return "", err
	}
	if size, ok := e.Size(); ok {
		info, err := os.Stat(dst)
		if err != nil {
			return "", err
		}
		if info.Size() != size {
			return "", fmt.Errorf("file download incomplete: %s: expected %d bytes, got %d", e.FileName(), size, info.Size())
		}
	}
	return dst, nil
}
