package cli

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit   int
	Results bool
	Keep    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs recorded with --history",
		Long: `List runs recorded in the SQLite database given by --history, newest first.

Example:
  regionsync --history .regionsync.db history
  regionsync --history .regionsync.db history --results --limit 1
  regionsync --history .regionsync.db history --keep 50`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of runs to show (0 for all)")
	cmd.Flags().BoolVarP(&opts.Results, "results", "r", false, "show the outcome of every pair")
	cmd.Flags().IntVar(&opts.Keep, "keep", -1, "delete all but the N most recent runs before listing")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.History == "" {
		_ = formatter.Error(ErrCodeArgs, "history requires --history <db>", nil)
		return NewExitError(ExitCommandError, "--history is required")
	}

	st, err := history.Open(opts.History)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open history", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Keep >= 0 {
		removed, err := st.Prune(ctx, opts.Keep)
		if err != nil {
			_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to prune history", err)
		}
		formatter.VerboseLog("Removed %d run(s) from %s", removed, opts.History)
	}

	runs, err := st.RecentRuns(ctx, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if formatter.Format == "json" {
		return formatter.Canonical("ok", map[string]any{"runs": runsJSON(runs)})
	}

	if len(runs) == 0 {
		formatter.VerboseLog("No runs recorded in %s", opts.History)
		return nil
	}
	if opts.Results {
		writeResultsTable(formatter.Writer, runs)
	} else {
		writeRunsTable(formatter.Writer, runs)
	}
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	return table
}

func writeRunsTable(w io.Writer, runs []history.Run) {
	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			commandLabel(run),
			strconv.Itoa(len(run.Results)),
			strconv.Itoa(run.Failed),
		})
	}

	table := newTable(w, []string{"RUN", "STARTED", "COMMAND", "PAIRS", "FAILED"})
	table.AppendBulk(data)
	table.Render()
}

func writeResultsTable(w io.Writer, runs []history.Run) {
	var data [][]string
	for _, run := range runs {
		for _, e := range run.Results {
			data = append(data, []string{
				run.ID,
				strconv.Itoa(e.Seq),
				e.Status,
				e.Source,
				e.Target,
				strconv.Itoa(e.Records),
			})
		}
	}

	table := newTable(w, []string{"RUN", "#", "STATUS", "SOURCE", "TARGET", "RECORDS"})
	table.AppendBulk(data)
	table.Render()
}

func commandLabel(run history.Run) string {
	if run.Check {
		return run.Command + " --check"
	}
	return run.Command
}

func runsJSON(runs []history.Run) []any {
	out := make([]any, 0, len(runs))
	for _, run := range runs {
		results := make([]any, 0, len(run.Results))
		for _, e := range run.Results {
			entry := map[string]any{
				"seq":      e.Seq,
				"strategy": e.Strategy,
				"source":   e.Source,
				"target":   e.Target,
				"status":   e.Status,
				"records":  e.Records,
			}
			if e.Detail != "" {
				entry["detail"] = e.Detail
			}
			results = append(results, entry)
		}
		out = append(out, map[string]any{
			"id":         run.ID,
			"started_at": run.StartedAt.UTC().Format(time.RFC3339),
			"command":    run.Command,
			"check":      run.Check,
			"failed":     run.Failed,
			"results":    results,
		})
	}
	return out
}
