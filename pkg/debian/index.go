package debian

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/carlmjohnson/requests"
	v1 "github.com/djcass44/debcat/pkg/api/v1"
	"github.com/djcass44/debcat/pkg/requestutil"
	"github.com/go-logr/logr"
)

var ErrNotFound = errors.New("package file not found")

// StatusError is returned when the mirror responds with an unexpected
// status code.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http response failed with code: %d (%s)", e.Code, e.URL)
}

// FetchListing downloads the listing of an architecture into dir and
// returns the path of the decompressed file. The gzip listing is tried
// first, followed by xz.
func FetchListing(ctx context.Context, mirror v1.MirrorSpec, arch v1.ArchTarget, dir string) (string, error) {
	// try to download the gzip listing
	path, err := downloadListing(ctx, mirror, arch, dir, requestutil.ExtGzip)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	// try to download the xz listing
	return downloadListing(ctx, mirror, arch, dir, requestutil.ExtXZ)
}

func downloadListing(ctx context.Context, mirror v1.MirrorSpec, arch v1.ArchTarget, dir, ext string) (string, error) {
	target := mirror.ListingURL(arch) + ext
	log := logr.FromContextOrDiscard(ctx).WithValues("url", target, "arch", arch.Name)
	log.V(1).Info("downloading listing")

	dst := filepath.Join(dir, arch.ListName)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = requests.URL(target).
		AddValidator(checkStatus).
		Handle(requestutil.WithDecompression(f)).
		Fetch(ctx)
	if err != nil {
		_ = os.Remove(dst)
		if errors.Is(err, ErrNotFound) {
			log.V(1).Info("failed to locate listing")
			return "", ErrNotFound
		}
		log.Error(err, "failed to download listing")
		return "", fmt.Errorf("downloading listing: %w", err)
	}
	log.V(1).Info("successfully downloaded listing", "path", dst)
	return dst, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	// return a special error on 404, so we can check for
	// other file types
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return &StatusError{URL: resp.Request.URL.String(), Code: resp.StatusCode}
}

// ReadListing parses a decompressed listing from disk.
func ReadListing(ctx context.Context, path string) ([]*PackageRecord, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.V(1).Info("loading listing")
	out, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}
