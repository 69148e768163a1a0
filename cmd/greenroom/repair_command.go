package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenroom/internal/organizer"
)

func newRepairCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Rewrite legacy published names to include the conference prefix",
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

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := organizer.New(cfg, nil, logger).Repair(runCtx, dir, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Renamed) == 0 && len(result.Skipped) == 0 {
				fmt.Fprintln(out, "No legacy names found")
				return nil
			}
			for _, record := range result.Renamed {
				fmt.Fprintf(out, "  %s -> %s\n", record.OldName, record.NewName)
			}
			for _, record := range result.Skipped {
				fmt.Fprintf(out, "  SKIPPED (target exists): %s -> %s\n", record.OldName, record.NewName)
			}
			verb := "Repaired"
			if dryRun {
				verb = "Would repair"
			}
			fmt.Fprintf(out, "%s %d file(s), %d skipped\n", verb, len(result.Renamed), len(result.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Video directory (default: paths.video_dir)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show repairs without touching files")
	return cmd
}
