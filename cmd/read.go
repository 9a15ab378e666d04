package cmd

import (
	"fmt"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/listfile"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "read a catalog back from a catalog directory",
	RunE:  readList,
}

const flagDump = "dump"

func init() {
	readCmd.Flags().String(flagInputDir, "", "catalog directory to read")
	readCmd.Flags().Bool(flagDump, false, "print every entry")

	_ = readCmd.MarkFlagRequired(flagInputDir)
	_ = readCmd.MarkFlagDirname(flagInputDir)
}

func readList(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	inputDir, _ := cmd.Flags().GetString(flagInputDir)
	dump, _ := cmd.Flags().GetBool(flagDump)

	c, err := listfile.ReadDir(cmd.Context(), inputDir)
	if err != nil {
		return err
	}
	log.Info("read catalog", "entries", len(c))
	if dump {
		return dumpList(cmd, c)
	}
	return nil
}

func dumpList(cmd *cobra.Command, c catalog.Catalog) error {
	for _, e := range c {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), e.Directory()+","+e.FileName()); err != nil {
			return err
		}
	}
	return nil
}
