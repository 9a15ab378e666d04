package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const KindMirror = "Mirror"

type MirrorSpec struct {
	Scheme    string `json:"scheme,omitempty"`
	Host      string `json:"host,omitempty"`
	Root      string `json:"root,omitempty"`
	Dist      string `json:"dist,omitempty"`
	Component string `json:"component,omitempty"`
}

// Mirror describes the archive that listings and files are fetched
// from.
type Mirror struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec MirrorSpec `json:"spec"`
}

// ArchTarget locates the listing of a single architecture within a
// distribution.
type ArchTarget struct {
	// Name is the architecture, e.g. amd64
	Name string
	// Subpath is the directory under the component, e.g. binary-amd64
	Subpath string
	// ListName is the base name of the listing, e.g. Packages
	ListName string
}
