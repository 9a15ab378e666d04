package cmd

import (
	"fmt"
	"os"

	v1 "github.com/djcass44/debcat/pkg/api/v1"
	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/debian"
	"github.com/djcass44/debcat/pkg/listfile"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "build a catalog from the package listing of a mirror",
	RunE:  mirrorList,
}

const flagArch = "arch"

func init() {
	mirrorCmd.Flags().String(flagArch, "", "architecture listing to fetch (amd64, i386, source, ...)")
	mirrorCmd.Flags().String(flagOutputDir, "", "directory to download the listing and write the catalog to. Must not exist")

	_ = mirrorCmd.MarkFlagRequired(flagArch)
	_ = mirrorCmd.MarkFlagRequired(flagOutputDir)
}

func mirrorList(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	archName, _ := cmd.Flags().GetString(flagArch)
	outputDir, _ := cmd.Flags().GetString(flagOutputDir)

	arch, err := v1.LookupArch(archName)
	if err != nil {
		return err
	}
	spec, err := loadMirror(cmd)
	if err != nil {
		return err
	}
	if err := checkNotExists(outputDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	log.Info("downloading arch based list", "url", spec.ListingURL(arch))
	path, err := debian.FetchListing(cmd.Context(), spec, arch, outputDir)
	if err != nil {
		return err
	}
	records, err := debian.ReadListing(cmd.Context(), path)
	if err != nil {
		return err
	}
	log.Info("loaded arch list", "packages", len(records))

	entries, err := catalog.FromRecords(records)
	if err != nil {
		return err
	}
	entries, err = catalog.NormalizeAll(entries)
	if err != nil {
		return err
	}
	c := catalog.Sort(entries)
	log.Info("built catalog", "entries", len(c))

	m := listfile.NewManifest(listfile.KindMirror, spec.ListingURL(arch))
	m.Arch = arch.Name
	if m.ListingDigest, err = listfile.Digest(path); err != nil {
		return err
	}
	return listfile.WriteExisting(cmd.Context(), outputDir, c, m)
}
