package main

import (
	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootState is filled by the root command before any subcommand runs
type rootState struct {
	flags     AppFlags
	cfg       *config.GlobalConfig
	logger    zerolog.Logger
	captureID string
}

func newRootCmd() *cobra.Command {
	state := &rootState{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "pagecapture",
		Short:         "Capture a web page with its assets for offline viewing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.initialize(cmd)
		},
	}
	bindPersistentFlags(rootCmd, &state.flags)

	rootCmd.AddCommand(
		newCaptureCmd(state),
		newExtractCmd(state),
		newSourceCmd(state),
	)
	return rootCmd
}

// initialize loads the configuration, applies flag overrides, validates the
// result and builds the run logger.
func (s *rootState) initialize(cmd *cobra.Command) error {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cfg, err := config.LoadGlobalConfig(s.flags.ConfigFile, bootstrap)
	if err != nil {
		return errorwrapper.WrapError(err, "could not load configuration")
	}
	applyOverrides(cfg, s.flags)

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	s.captureID = uuid.NewString()
	runLogger, err := logger.NewWithCaptureID(cfg.LogConfig, s.captureID, cmd.ErrOrStderr())
	if err != nil {
		return errorwrapper.WrapError(err, "could not initialize logger")
	}

	s.cfg = cfg
	s.logger = runLogger
	s.logger.Debug().
		Str("capture_id", s.captureID).
		Str("mode", cfg.CaptureConfig.SnapshotMode).
		Str("output_dir", cfg.CaptureConfig.OutputDir).
		Msg("Configuration loaded")
	return nil
}
