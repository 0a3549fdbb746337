package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/history"
	"github.com/roach88/regionsync/internal/report"
	"github.com/roach88/regionsync/internal/syncer"
)

// batchSettings are the knobs for one invocation, taken from flags and, for
// `run`, merged with the config file.
type batchSettings struct {
	Command string
	Workers int
	Backup  bool
	History string
}

func settingsFromFlags(opts *RootOptions, command string) batchSettings {
	return batchSettings{
		Command: command,
		Workers: opts.Workers,
		Backup:  !opts.NoBackup,
		History: opts.History,
	}
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

func (o *RootOptions) clock() syncer.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return syncer.SystemClock{}
}

func (o *RootOptions) ids() history.IDGenerator {
	if o.IDs != nil {
		return o.IDs
	}
	return history.UUIDv7Generator{}
}

// executeBatch syncs jobs, prints one line per pair (or a JSON report),
// records the run in the history database when configured, and maps the
// outcome to an exit code.
func executeBatch(cmd *cobra.Command, opts *RootOptions, settings batchSettings, jobs []syncer.Job) error {
	formatter := newFormatter(opts, cmd)
	clock := opts.clock()
	started := clock.Now()
	runID := opts.ids().Generate()

	var writer syncer.Writer = syncer.BackupWriter{}
	if !settings.Backup {
		writer = syncer.AtomicWriter{}
	}

	runner := syncer.NewRunner(settings.Workers, formatter.VerboseLog,
		syncer.WithClock(clock),
		syncer.WithWriter(writer),
		syncer.WithCheck(opts.Check),
		syncer.WithDiff(opts.Diff),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rep, err := runner.Run(ctx, jobs)
	if err != nil {
		_ = formatter.Error(ErrCodeBatch, err.Error(), nil)
		return WrapExitError(ExitCommandError, "batch rejected", err)
	}

	if settings.History != "" {
		if err := recordRun(ctx, settings, runID, started, opts.Check, rep); err != nil {
			_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
			return WrapExitError(ExitCommandError, "recording history", err)
		}
		formatter.VerboseLog("Recorded run %s in %s", runID, settings.History)
	}

	if formatter.Format == "json" {
		status := "ok"
		if rep.Failed() > 0 {
			status = "error"
		}
		if err := formatter.Canonical(status, report.Batch(runID, opts.Check, rep)); err != nil {
			return err
		}
	} else {
		writeReportText(formatter.Writer, rep)
	}

	if failed := rep.Failed(); failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d pair(s) failed", failed, len(rep.Results)))
	}
	return nil
}

// writeReportText prints one line per pair:
//
//	written        kstate.c -> kstate.h (2 records)
//	no_delimiters  x.c -> x.h: couldn't find start delimiter ...
func writeReportText(w io.Writer, rep *syncer.Report) {
	for _, res := range rep.Results {
		line := fmt.Sprintf("%-14s %s -> %s", res.Status, res.Source, res.Target)
		switch {
		case res.Status == syncer.StatusWritten:
			line += fmt.Sprintf(" (%d %s)", res.Records, plural(res.Records, "record", "records"))
		case res.Err != nil:
			line += ": " + res.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
}

func recordRun(ctx context.Context, settings batchSettings, runID string, started time.Time, check bool, rep *syncer.Report) error {
	store, err := history.Open(settings.History)
	if err != nil {
		return err
	}
	defer store.Close()

	run := history.Run{
		ID:        runID,
		StartedAt: started,
		Command:   settings.Command,
		Check:     check,
		Failed:    rep.Failed(),
		Results:   make([]history.Entry, 0, len(rep.Results)),
	}
	for i, res := range rep.Results {
		entry := history.Entry{
			Seq:      i + 1,
			Strategy: res.Strategy,
			Source:   res.Source,
			Target:   res.Target,
			Status:   string(res.Status),
			Records:  res.Records,
		}
		if res.Err != nil {
			entry.Detail = res.Err.Error()
		}
		run.Results = append(run.Results, entry)
	}
	return store.WriteRun(ctx, run)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
