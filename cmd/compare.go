package cmd

import (
	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/listfile"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare REFERENCE CANDIDATE",
	Short: "list the files in the candidate catalog that are not in the reference catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  compareLists,
}

func init() {
	compareCmd.Flags().String(flagOutputDir, "", "directory to write the difference to. Must not exist")
}

func compareLists(cmd *cobra.Command, args []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	outputDir, _ := cmd.Flags().GetString(flagOutputDir)
	if err := checkNotExists(outputDir); err != nil {
		return err
	}

	reference, err := listfile.ReadDir(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	candidate, err := listfile.ReadDir(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	diff := catalog.Diff(reference, candidate)
	log.Info("compared catalogs", "reference", len(reference), "candidate", len(candidate), "new", len(diff))

	if outputDir == "" {
		return dumpList(cmd, diff)
	}
	m := listfile.NewManifest(listfile.KindDiff, args[1])
	m.Reference = args[0]
	return listfile.WriteDir(cmd.Context(), outputDir, diff, m)
}
