package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenroom/internal/organizer"
	"greenroom/internal/queue"
	"greenroom/internal/rename"
	"greenroom/internal/schedule"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var metadataFlag string
	var yearFlag int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Match scheduled talks to video files and rename them for publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dir := strings.TrimSpace(dirFlag)
			if dir == "" {
				dir = cfg.Paths.VideoDir
			}
			metadataPath := strings.TrimSpace(metadataFlag)
			if metadataPath == "" {
				metadataPath = cfg.Conference.MetadataFile
			}
			if metadataPath == "" {
				return errors.New("no talk metadata file; pass --metadata or set conference.metadata_file")
			}
			year := yearFlag
			if year == 0 {
				year = cfg.Conference.Year
			}

			talks, err := schedule.Load(metadataPath)
			if err != nil {
				return err
			}
			files, err := organizer.ListVideoFiles(dir)
			if err != nil {
				return err
			}

			plan, err := rename.BuildPlan(talks, files, year)
			if err != nil {
				return err
			}

			var store *queue.Store
			if !dryRun {
				store, err = ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
			}

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := organizer.New(cfg, store, logger).Apply(runCtx, dir, plan, dryRun)
			if err != nil {
				return err
			}

			printRenameReport(cmd, plan, result, dryRun)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Video directory (default: paths.video_dir)")
	cmd.Flags().StringVarP(&metadataFlag, "metadata", "m", "", "Talk metadata JSON file (default: conference.metadata_file)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "Conference year used in generated names (default: conference.year)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the rename plan without touching files")
	return cmd
}

func printRenameReport(cmd *cobra.Command, plan *rename.Plan, result *organizer.ApplyResult, dryRun bool) {
	out := cmd.OutOrStdout()

	if len(plan.Matches) > 0 {
		rows := make([][]string, 0, len(plan.Matches))
		for _, match := range plan.Matches {
			rows = append(rows, []string{match.OldName, match.NewName})
		}
		fmt.Fprintln(out, renderTable([]string{"File", "New Name"}, rows))
	}

	verb := "Renamed"
	if dryRun {
		verb = "Would rename"
	}
	fmt.Fprintf(out, "%s %d file(s), %d skipped, %d matched talk(s)\n",
		verb, len(result.Renamed), len(result.Skipped), len(plan.Matches))

	if len(plan.UnmatchedFiles) > 0 {
		fmt.Fprintf(out, "\n%d file(s) flagged for review (no matching talk):\n", len(plan.UnmatchedFiles))
		for _, name := range plan.UnmatchedFiles {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	if len(plan.TalksWithoutVideo) > 0 {
		fmt.Fprintf(out, "\n%d talk(s) have no video file:\n", len(plan.TalksWithoutVideo))
		for _, title := range plan.TalksWithoutVideo {
			fmt.Fprintf(out, "  %s\n", title)
		}
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "\n%d rename(s) skipped because the target name exists:\n", len(result.Skipped))
		for _, record := range result.Skipped {
			fmt.Fprintf(out, "  %s -> %s\n", record.OldName, record.NewName)
		}
	}
}
