package cmd

import (
	"os"

	"github.com/djcass44/debcat/internal/config"
	v1 "github.com/djcass44/debcat/pkg/api/v1"
	"github.com/djcass44/go-utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var command = &cobra.Command{
	Use:          "debcat",
	Short:        "build and compare catalogs of debian repository files",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetInt(flagLogLevel)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(logLevel * -1))

		_, ctx := logging.NewZap(cmd.Context(), zc)
		cmd.SetContext(ctx)
	},
}

var env = config.NewViper()

const (
	flagLogLevel  = "v"
	flagConfig    = "config"
	flagScheme    = "scheme"
	flagMirror    = "mirror"
	flagRoot      = "root"
	flagDist      = "dist"
	flagComponent = "component"

	flagInputDir  = "input-dir"
	flagOutputDir = "output-dir"
)

func init() {
	command.PersistentFlags().Int(flagLogLevel, 0, "log level. Higher is more")
	command.PersistentFlags().StringP(flagConfig, "c", "", "path to a mirror configuration file")
	command.PersistentFlags().String(flagScheme, "", "mirror url scheme (http or https)")
	command.PersistentFlags().String(flagMirror, "", "mirror host name")
	command.PersistentFlags().String(flagRoot, "", "path of the archive on the mirror")
	command.PersistentFlags().String(flagDist, "", "distribution name, e.g. testing")
	command.PersistentFlags().String(flagComponent, "", "archive component, e.g. main")

	_ = command.MarkPersistentFlagFilename(flagConfig, ".yaml", ".yml", ".json")

	_ = env.BindPFlag(config.KeyScheme, command.PersistentFlags().Lookup(flagScheme))
	_ = env.BindPFlag(config.KeyHost, command.PersistentFlags().Lookup(flagMirror))
	_ = env.BindPFlag(config.KeyRoot, command.PersistentFlags().Lookup(flagRoot))
	_ = env.BindPFlag(config.KeyDist, command.PersistentFlags().Lookup(flagDist))
	_ = env.BindPFlag(config.KeyComponent, command.PersistentFlags().Lookup(flagComponent))

	command.AddCommand(scanCmd, mirrorCmd, readCmd, compareCmd, downloadCmd)
}

func loadMirror(cmd *cobra.Command) (v1.MirrorSpec, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	return config.Load(configPath, env)
}

func Execute(version string) {
	command.Version = version
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
