package requestutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlmjohnson/requests"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestIsGzipped(t *testing.T) {
	var cases = []struct {
		s  string
		ok bool
	}{
		{
			"application/gzip",
			true,
		},
		{
			"application/x-gzip",
			true,
		},
		{
			"application/javascript",
			false,
		},
	}

	for _, tt := range cases {
		t.Run(tt.s, func(t *testing.T) {
			ok := isGzipped(tt.s)
			assert.EqualValues(t, tt.ok, ok)
		})
	}
}

const content = "Package: foo\nFilename: pool/main/f/foo/foo_1.0.deb\n"

func gzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func xzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	var cases = []struct {
		ext  string
		data func(t *testing.T) []byte
	}{
		{ExtGzip, gzipped},
		{ExtXZ, xzipped},
		{"", func(*testing.T) []byte { return []byte(content) }},
	}
	for _, tt := range cases {
		t.Run(tt.ext, func(t *testing.T) {
			r, err := Decompress(bytes.NewReader(tt.data(t)), tt.ext)
			require.NoError(t, err)
			defer r.Close()
			out, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.EqualValues(t, content, string(out))
		})
	}

	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := Decompress(bytes.NewReader([]byte("not gzip")), ExtGzip)
		assert.Error(t, err)
	})
}

func TestWithDecompression(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Packages.gz":
			_, _ = w.Write(gzipped(t))
		case "/Packages.xz":
			_, _ = w.Write(xzipped(t))
		case "/Packages":
			w.Header().Set("Content-Type", "application/gzip")
			_, _ = w.Write(gzipped(t))
		}
	}))
	defer ts.Close()

	for _, p := range []string{"/Packages.gz", "/Packages.xz", "/Packages"} {
		t.Run(p, func(t *testing.T) {
			var buf bytes.Buffer
			err := requests.URL(ts.URL + p).Handle(WithDecompression(&buf)).Fetch(ctx)
			require.NoError(t, err)
			assert.EqualValues(t, content, buf.String())
		})
	}
}
