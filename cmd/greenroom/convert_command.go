package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenroom/internal/attribute"
	"greenroom/internal/pyvideo"
	"greenroom/internal/schedule"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var infoDirFlag string
	var outDirFlag string
	var metadataFlag string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert downloaded video metadata into a PyVideo data tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if strings.TrimSpace(infoDirFlag) == "" {
				return errors.New("--info-dir is required")
			}
			outDir := strings.TrimSpace(outDirFlag)
			if outDir == "" {
				outDir = cfg.Paths.PyVideoDir
			}
			metadataPath := strings.TrimSpace(metadataFlag)
			if metadataPath == "" {
				metadataPath = cfg.Conference.MetadataFile
			}

			var matcher *attribute.Matcher
			if metadataPath != "" {
				talks, err := schedule.Load(metadataPath)
				if err != nil {
					return err
				}
				matcher = attribute.NewMatcher(
					attribute.NewCatalog(talks),
					cfg.Attribution.ConfidenceThreshold,
					logger,
				)
			}

			start, end := cfg.Conference.Dates()
			conf := pyvideo.Conference{
				Title:       fmt.Sprintf("%s %d", cfg.Conference.Name, cfg.Conference.Year),
				PlaylistURL: cfg.Conference.PlaylistURL,
				ScheduleURL: cfg.Conference.ScheduleURL,
				Start:       start,
				End:         end,
			}
			converter := pyvideo.NewConverter(conf, matcher, logger)

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := converter.Convert(runCtx, infoDirFlag)
			if err != nil {
				return err
			}
			if err := converter.WriteTree(outDir, result.Talks); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d talk(s) to %s\n", len(result.Talks), outDir)
			if len(result.NeedsReview) > 0 {
				fmt.Fprintf(out, "\n%d video(s) need manual speaker review:\n", len(result.NeedsReview))
				for _, title := range result.NeedsReview {
					fmt.Fprintf(out, "  %s\n", title)
				}
				fmt.Fprintln(out, "\nSearch the generated documents for \"speakers\": [] to fix them.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&infoDirFlag, "info-dir", "", "Directory of yt-dlp info.json documents")
	cmd.Flags().StringVar(&outDirFlag, "out", "", "Output directory for the data tree (default: paths.pyvideo_dir)")
	cmd.Flags().StringVarP(&metadataFlag, "metadata", "m", "", "Talk metadata JSON for speaker attribution (default: conference.metadata_file)")
	return cmd
}
