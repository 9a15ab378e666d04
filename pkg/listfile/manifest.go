package listfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

type Kind string

const (
	KindScan   Kind = "scan"
	KindMirror Kind = "mirror"
	KindDiff   Kind = "diff"
)

// Manifest describes where a persisted catalog came from.
type Manifest struct {
	ID            string `json:"id"`
	Version       int    `json:"manifestVersion"`
	Kind          Kind   `json:"kind"`
	Source        string `json:"source"`
	Arch          string `json:"arch,omitempty"`
	Entries       int    `json:"entries"`
	ListingDigest string `json:"listingDigest,omitempty"`
	TreeDigest    string `json:"treeDigest,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

func NewManifest(kind Kind, source string) Manifest {
	return Manifest{
		ID:      uuid.NewString(),
		Version: 1,
		Kind:    kind,
		Source:  source,
	}
}

func WriteManifest(ctx context.Context, dir string, m Manifest) error {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Create(filepath.Join(dir, ManifestName))
	if err != nil {
		log.Error(err, "failed to create manifest")
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	return enc.Encode(m)
}

func ReadManifest(ctx context.Context, dir string) (*Manifest, error) {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Open(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("missing manifest")
		}
		log.Error(err, "failed to open manifest")
		return nil, err
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		log.Error(err, "failed to read manifest")
		return nil, err
	}
	return &m, nil
}
