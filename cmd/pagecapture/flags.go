package main

import (
	"github.com/aleister1102/pagecapture/internal/config"

	"github.com/spf13/cobra"
)

// AppFlags holds the persistent flags shared by every subcommand
type AppFlags struct {
	ConfigFile string
	OutputDir  string
	Mode       string
	SourceFile string
	LogLevel   string
}

func bindPersistentFlags(cmd *cobra.Command, flags *AppFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	pf.StringVarP(&flags.OutputDir, "output", "o", "", "Directory the capture is written to (overrides config file if set)")
	pf.StringVarP(&flags.Mode, "mode", "m", "", "Snapshot mode: headless, static or file (overrides config file if set)")
	pf.StringVar(&flags.SourceFile, "file", "", "Local HTML document used in file mode; the URL argument becomes its base URL")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn or error (overrides config file if set)")
}

// applyOverrides copies every non-empty flag onto cfg. Supplying --file
// without --mode selects file mode.
func applyOverrides(cfg *config.GlobalConfig, flags AppFlags) {
	if flags.OutputDir != "" {
		cfg.CaptureConfig.OutputDir = flags.OutputDir
	}
	if flags.SourceFile != "" {
		cfg.CaptureConfig.SourceFile = flags.SourceFile
		if flags.Mode == "" {
			cfg.CaptureConfig.SnapshotMode = config.SnapshotModeFile
		}
	}
	if flags.Mode != "" {
		cfg.CaptureConfig.SnapshotMode = flags.Mode
	}
	if flags.LogLevel != "" {
		cfg.LogConfig.LogLevel = flags.LogLevel
	}
}
