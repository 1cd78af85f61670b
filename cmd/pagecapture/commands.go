package main

import (
	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/progress"

	"github.com/spf13/cobra"
)

func newCaptureCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "capture <url>",
		Short: "Save the page, its assets and same-site linked pages with a download report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(state, progress.ProgressTypeCapture)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.CaptureFull(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			downloaded, skipped := result.Manifest.Counts()
			state.logger.Info().
				Str("url", result.PageURL).
				Str("title", result.Title).
				Int("downloaded", downloaded).
				Int("skipped", skipped).
				Str("index", result.IndexPath).
				Str("report", result.ManifestPath).
				Msg("Capture finished")

			if result.Cancelled {
				return errorwrapper.NewError("capture interrupted, partial report written to %s", result.ManifestPath)
			}
			return nil
		},
	}
}

func newExtractCmd(state *rootState) *cobra.Command {
	var download bool

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Write the categorized resource links of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(state, progress.ProgressTypeExtract)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.ExtractLinks(cmd.Context(), args[0], download)
			if err != nil {
				return err
			}

			event := state.logger.Info().
				Str("url", result.PageURL).
				Int("links", len(result.Extraction.Descriptors)).
				Str("output", result.LinksPath)
			if download {
				event = event.Int("downloaded", result.Downloaded).Int("skipped", result.Skipped)
			}
			event.Msg("Link extraction finished")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&download, "download", "d", false, "Also download every extracted HTTPS resource")
	return cmd
}

func newSourceCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "source <url>",
		Short: "Save the rendered page markup without modification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(state, progress.ProgressTypeCapture)
			if err != nil {
				return err
			}
			defer app.Close()

			path, err := app.service.SaveSource(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state.logger.Info().Str("path", path).Msg("Source saved")
			return nil
		},
	}
}
