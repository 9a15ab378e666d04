package cmd

import (
	"github.com/djcass44/debcat/pkg/downloader"
	"github.com/djcass44/debcat/pkg/listfile"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download the files of a catalog from the mirror",
	RunE:  download,
}

func init() {
	downloadCmd.Flags().String(flagInputDir, "", "catalog directory listing the files to download")
	downloadCmd.Flags().String(flagOutputDir, "", "directory to download files into")

	_ = downloadCmd.MarkFlagRequired(flagInputDir)
	_ = downloadCmd.MarkFlagRequired(flagOutputDir)
	_ = downloadCmd.MarkFlagDirname(flagInputDir)
}

func download(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	inputDir, _ := cmd.Flags().GetString(flagInputDir)
	outputDir, _ := cmd.Flags().GetString(flagOutputDir)

	spec, err := loadMirror(cmd)
	if err != nil {
		return err
	}
	c, err := listfile.ReadDir(cmd.Context(), inputDir)
	if err != nil {
		return err
	}

	dl, err := downloader.NewDownloader(spec, outputDir)
	if err != nil {
		return err
	}
	log.Info("downloading files", "entries", len(c), "mirror", spec.BaseURL())
	_, err = dl.Sync(cmd.Context(), c)
	return err
}
