package v1

import (
	"fmt"
	"regexp"
	"strings"

	"pault.ag/go/debian/dependency"
)

// BaseURL returns the root of the archive, e.g.
// https://mirrors.xmission.com/debian
func (m MirrorSpec) BaseURL() string {
	base := fmt.Sprintf("%s://%s", m.Scheme, strings.TrimSuffix(m.Host, "/"))
	if root := strings.Trim(m.Root, "/"); root != "" {
		base += "/" + root
	}
	return base
}

// ListingURL returns the location of the (uncompressed) listing for
// an architecture. Callers append the compression extension.
func (m MirrorSpec) ListingURL(arch ArchTarget) string {
	return fmt.Sprintf("%s/dists/%s/%s/%s/%s", m.BaseURL(), m.Dist, m.Component, arch.Subpath, arch.ListName)
}

// PoolURL returns the location of a file whose directory is relative
// to the pool, as produced by catalog normalization.
func (m MirrorSpec) PoolURL(dir, name string) string {
	return fmt.Sprintf("%s/pool/%s/%s", m.BaseURL(), strings.Trim(dir, "/"), name)
}

const ArchSource = "source"

var builtinArch = map[string]ArchTarget{
	"amd64":    {Name: "amd64", Subpath: "binary-amd64", ListName: "Packages"},
	"i386":     {Name: "i386", Subpath: "binary-i386", ListName: "Packages"},
	ArchSource: {Name: ArchSource, Subpath: "source", ListName: "Sources"},
}

var regexpArch = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// LookupArch returns the ArchTarget for an architecture name. Names
// other than the built-in ones must be valid Debian architectures.
func LookupArch(name string) (ArchTarget, error) {
	if a, ok := builtinArch[name]; ok {
		return a, nil
	}
	if !regexpArch.MatchString(name) {
		return ArchTarget{}, fmt.Errorf("unknown arch: %q", name)
	}
	if _, err := dependency.ParseArch(name); err != nil {
		return ArchTarget{}, fmt.Errorf("unknown arch: %q: %w", name, err)
	}
	return ArchTarget{
		Name:     name,
		Subpath:  "binary-" + name,
		ListName: "Packages",
	}, nil
}
