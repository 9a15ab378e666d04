package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/fileutil"
	"github.com/djcass44/debcat/pkg/listfile"
	"github.com/djcass44/debcat/pkg/scan"
	"github.com/go-logr/logr"
	"github.com/gosimple/hashdir"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "build a catalog from a mounted CD or local repository",
	RunE:  scanDir,
}

const flagDigest = "digest"

func init() {
	scanCmd.Flags().String(flagInputDir, "", "directory to scan")
	scanCmd.Flags().String(flagOutputDir, "", "directory to write the catalog to. Must not exist")
	scanCmd.Flags().Bool(flagDigest, false, "record a digest of the scanned tree in the manifest")

	_ = scanCmd.MarkFlagRequired(flagInputDir)
	_ = scanCmd.MarkFlagDirname(flagInputDir)
}

func scanDir(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	inputDir, _ := cmd.Flags().GetString(flagInputDir)
	outputDir, _ := cmd.Flags().GetString(flagOutputDir)
	digest, _ := cmd.Flags().GetBool(flagDigest)

	inputDir, err := filepath.Abs(inputDir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("--%s does not exist: %s", flagInputDir, inputDir)
	}
	if err := checkNotExists(outputDir); err != nil {
		return err
	}

	walker := scan.NewWalker(fileutil.DirFS(inputDir), inputDir)
	paths, err := walker.Walk(cmd.Context())
	if err != nil {
		return err
	}
	entries, err := catalog.FromPaths(paths, walker.Size)
	if err != nil {
		return err
	}
	log.Info("removing non repository files in list", "files", len(entries))
	entries, err = catalog.NormalizeAll(entries)
	if err != nil {
		return err
	}
	c := catalog.Sort(entries)
	log.Info("built catalog", "entries", len(c))

	if outputDir == "" {
		return nil
	}
	m := listfile.NewManifest(listfile.KindScan, inputDir)
	if digest {
		log.Info("hashing directory", "dir", inputDir)
		d, err := hashdir.Make(inputDir, "sha256")
		if err != nil {
			log.Error(err, "failed to generate directory digest", "alg", "sha256", "path", inputDir)
			return err
		}
		m.TreeDigest = "sha256:" + d
	}
	return listfile.WriteDir(cmd.Context(), outputDir, c, m)
}

// checkNotExists fails if an output directory has been given and
// already exists.
func checkNotExists(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("--%s already exists: %s", flagOutputDir, dir)
	}
	return nil
}
