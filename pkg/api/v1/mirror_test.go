package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupArch(t *testing.T) {
	var cases = []struct {
		in  string
		out ArchTarget
		ok  bool
	}{
		{"amd64", ArchTarget{Name: "amd64", Subpath: "binary-amd64", ListName: "Packages"}, true},
		{"i386", ArchTarget{Name: "i386", Subpath: "binary-i386", ListName: "Packages"}, true},
		{"source", ArchTarget{Name: "source", Subpath: "source", ListName: "Sources"}, true},
		{"arm64", ArchTarget{Name: "arm64", Subpath: "binary-arm64", ListName: "Packages"}, true},
		{"", ArchTarget{}, false},
		{"Not Valid", ArchTarget{}, false},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, err := LookupArch(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestMirrorSpec_URLs(t *testing.T) {
	m := MirrorSpec{
		Scheme:    "https",
		Host:      "mirrors.xmission.com",
		Root:      "/debian/",
		Dist:      "testing",
		Component: "main",
	}
	assert.EqualValues(t, "https://mirrors.xmission.com/debian", m.BaseURL())

	arch, err := LookupArch("amd64")
	require.NoError(t, err)
	assert.EqualValues(t, "https://mirrors.xmission.com/debian/dists/testing/main/binary-amd64/Packages", m.ListingURL(arch))
	assert.EqualValues(t, "https://mirrors.xmission.com/debian/pool/main/f/foo/foo.deb", m.PoolURL("main/f/foo", "foo.deb"))

	m.Root = ""
	assert.EqualValues(t, "https://mirrors.xmission.com", m.BaseURL())
}
