package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebase(t *testing.T) {
	var cases = []struct {
		path   string
		marker string
		out    string
		ok     bool
	}{
		{"a/pool/main/x/y", "pool/main", "pool/main/x/y", true},
		{"pool/main/x/y", "pool/main", "pool/main/x/y", true},
		{"/mnt/cd/pool/main/x/y", "pool/main", "pool/main/x/y", true},
		{`D:\cd\pool\main\x\y`, "pool/main", `pool\main\x\y`, true},
		{"poolmain/x/y", "pool/main", "", false},
		{"a/xpool/main/y", "pool/main", "", false},
		{"a/pool/mainx/y", "pool/main", "", false},
		{"a/pool/contribX/y", "pool/contrib", "", false},
		{"a/pool/main", "pool/main", "pool/main", true},
		{"a/pool/x/pool/main/y", "pool/main", "pool/main/y", true},
		{"pool/main/x", "main", "main/x", true},
		{"a/b", "", "", false},
		{"", "main", "", false},
	}
	for _, tt := range cases {
		t.Run(tt.path+"@"+tt.marker, func(t *testing.T) {
			out, ok := Rebase(tt.path, tt.marker)
			assert.EqualValues(t, tt.ok, ok)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestNormalize(t *testing.T) {
	var cases = []struct {
		in  string
		out string
		ok  bool
	}{
		{"/mnt/cd/pool/main/f/foo/foo.deb", "main/f/foo/foo.deb", true},
		{"pool/contrib/g/goo/goo.deb", "contrib/g/goo/goo.deb", true},
		{"/srv/pool/non-free/n/nv/nv.deb", "non-free/n/nv/nv.deb", true},
		{"/mnt/cd/dists/testing/Release", "", false},
		{"/mnt/cd/md5sum.txt", "", false},
		{"/mnt/cd/pool/universe/u/u.deb", "", false},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, ok := Normalize(tt.in)
			assert.EqualValues(t, tt.ok, ok)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	a, err := NewEntry("/mnt/cd/pool/main/f/foo/foo.deb")
	require.NoError(t, err)
	b, err := NewEntry("/mnt/cd/doc/README")
	require.NoError(t, err)

	out, err := NormalizeAll([]Entry{a.WithSize(10), b})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.EqualValues(t, "main/f/foo", out[0].Directory())
	assert.EqualValues(t, "foo.deb", out[0].FileName())
	size, ok := out[0].Size()
	assert.True(t, ok)
	assert.EqualValues(t, 10, size)
}

func TestNormalizeAll_BareComponent(t *testing.T) {
	a, err := NewEntry("/mnt/cd/pool/main/f/foo/foo.deb")
	require.NoError(t, err)
	b, err := NewEntry("/mnt/cd/pool/main")
	require.NoError(t, err)

	out, err := NormalizeAll([]Entry{a, b})
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Nil(t, out)
}
