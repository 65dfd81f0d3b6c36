package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mmcdole/bitreel/internal/service"
)

// history: list recent jobs, optionally fuzzy-filtered, or clear them
func historyCmd() *cobra.Command {
	var (
		filter   string
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear previously run jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewHistoryService(appCtx.history, appCtx.logger)
			out := cmd.OutOrStdout()

			if clearAll {
				if err := svc.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared.")
				return nil
			}

			if !cmd.Flags().Changed("limit") {
				limit = appCtx.cfg.History.Limit
			}
			results, err := svc.List(filter, limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "No jobs recorded.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Started", "Dir", "Source", "Dest", "Units", "Skipped", "Status"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(true)
			for _, r := range results {
				rec := r.Record
				status := "ok"
				if !rec.Succeeded() {
					status = "failed: " + rec.Error
				}
				table.Append([]string{
					rec.Started.Local().Format(time.DateTime),
					string(rec.Direction),
					rec.Source,
					rec.Dest,
					strconv.FormatInt(rec.Units, 10),
					strconv.FormatInt(rec.Skipped, 10),
					status,
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy filter on direction and paths")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of jobs to show (default from config)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded jobs")
	return cmd
}
