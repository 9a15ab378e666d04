package requestutil

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/carlmjohnson/requests"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

var ContentTypesGzip = []string{
	"application/gzip",
	"application/x-gzip",
}

const (
	ExtGzip = ".gz"
	ExtXZ   = ".xz"
)

// WithDecompression writes the decompressed response body to out. The
// compression is chosen from the extension of the requested path, and
// falls back to the Content-Type of the response.
func WithDecompression(out io.Writer) requests.ResponseHandler {
	return func(response *http.Response) error {
		log := logr.FromContextOrDiscard(response.Request.Context())

		ext := path.Ext(response.Request.URL.Path)
		if ext != ExtGzip && ext != ExtXZ && isGzipped(response.Header.Get("Content-Type")) {
			ext = ExtGzip
		}
		log.V(8).Info("decompressing response", "ext", ext)

		stream, err := Decompress(response.Body, ext)
		if err != nil {
			return err
		}
		defer stream.Close()

		if _, err := io.Copy(out, stream); err != nil {
			return fmt.Errorf("writing uncompressed output: %w", err)
		}
		return nil
	}
}

// Decompress wraps r in a reader for the compression indicated by ext.
// Unknown extensions are passed through untouched.
func Decompress(r io.Reader, ext string) (io.ReadCloser, error) {
	switch ext {
	case ExtGzip:
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing gzip: %w", err)
		}
		return dec, nil
	case ExtXZ:
		dec, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing xz: %w", err)
		}
		return io.NopCloser(dec), nil
	default:
		return io.NopCloser(r), nil
	}
}

func isGzipped(s string) bool {
	return mimetype.EqualsAny(s, ContentTypesGzip...)
}
