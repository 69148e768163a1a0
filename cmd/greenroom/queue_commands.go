package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"greenroom/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the job ledger",
	}
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked files",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			statuses, err := parseStatuses(statusFlag)
			if err != nil {
				return err
			}
			items, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Queue is empty")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				detail := item.NewName
				if item.ErrorMessage != "" {
					detail = item.ErrorMessage
				}
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.Filename,
					string(item.Status),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "File", "Status", "Detail"}, rows, 0))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "Comma-separated statuses to filter by")
	return cmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue counts per lifecycle state",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}

			rows := [][]string{
				{"pending", strconv.Itoa(summary.Pending)},
				{"processing", strconv.Itoa(summary.Processing)},
				{"renamed", strconv.Itoa(summary.Renamed)},
				{"review", strconv.Itoa(summary.Review)},
				{"failed", strconv.Itoa(summary.Failed)},
				{"total", strconv.Itoa(summary.Total)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"State", "Count"}, rows, 1))
			return nil
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			statuses, err := parseStatuses(statusFlag)
			if err != nil {
				return err
			}
			deleted, err := store.Clear(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d item(s)\n", deleted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "Comma-separated statuses to clear (default: all)")
	return cmd
}

func parseStatuses(value string) ([]queue.Status, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	var statuses []queue.Status
	for _, part := range strings.Split(value, ",") {
		status, ok := queue.ParseStatus(part)
		if !ok {
			return nil, fmt.Errorf("unknown status %q (known: %v)", strings.TrimSpace(part), queue.AllStatuses())
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
