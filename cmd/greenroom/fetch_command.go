package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"greenroom/internal/fetch"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var manifestFlag string
	var destFlag string
	var workersFlag int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the conference videos listed in a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Fetch.BaseURL) == "" {
				return errors.New("fetch.base_url is not configured")
			}
			if strings.TrimSpace(manifestFlag) == "" {
				return errors.New("--manifest is required")
			}

			dest := strings.TrimSpace(destFlag)
			if dest == "" {
				dest = cfg.Paths.VideoDir
			}
			workers := workersFlag
			if workers == 0 {
				workers = cfg.Fetch.Workers
			}

			files, err := fetch.LoadManifest(manifestFlag)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			pool := fetch.NewPool(fetch.NewHTTPFetcher(cfg.Fetch), fetch.Options{
				Workers:      workers,
				MaxRetries:   cfg.Fetch.MaxRetries,
				Store:        store,
				ShowProgress: isatty.IsTerminal(os.Stderr.Fd()),
				Logger:       logger,
			})

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			stats, err := pool.Run(runCtx, files, dest)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloaded %d, skipped %d (already verified), failed %d of %d file(s)\n",
				stats.Downloaded, stats.Skipped, stats.Failed, len(files))
			if stats.Failed > 0 {
				fmt.Fprintln(out, "\nFailed files:")
				for _, failure := range stats.Failures {
					fmt.Fprintf(out, "  %s: %v\n", failure.Name, failure.Err)
				}
				fmt.Fprintln(out, "\nRe-run the same command to retry only the failed files.")
				return fmt.Errorf("%d download(s) failed", stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestFlag, "manifest", "", "JSON manifest listing remote files to download")
	cmd.Flags().StringVar(&destFlag, "dest", "", "Destination directory (default: paths.video_dir)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Parallel download workers (default: fetch.workers)")
	return cmd
}
