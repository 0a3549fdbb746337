package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/config"
	"github.com/roach88/regionsync/internal/extract"
	"github.com/roach88/regionsync/internal/syncer"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sync every job listed in a config file",
		Long: `Sync a batch of jobs described in a YAML or CUE config file.

Without --config, regionsync.yaml, regionsync.yml and regionsync.cue are
looked up in the current directory. Paths in the file are relative to it.

  workers: 4
  history: .regionsync.db
  jobs:
    - kind: headers
      source: kstate.c
      target: kstate.h
    - kind: tests
      source: check_kstate.c

Flags given on the command line (--workers, --no-backup, --history, --tool)
override the file.

Example:
  regionsync run
  regionsync run --config ci/regionsync.cue --check`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .cue)")

	return cmd
}

func runConfig(cmd *cobra.Command, opts *RunOptions) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	path := opts.Config
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return configError(cmd, opts.RootOptions, err)
		}
		path = found
	}

	logger.Info("loading config", "path", path)
	cfg, err := config.Load(path)
	if err != nil {
		return configError(cmd, opts.RootOptions, err)
	}
	logger.Info("config loaded", "jobs", len(cfg.Jobs), "workers", cfg.Workers, "backup", cfg.BackupEnabled())

	settings := mergeSettings(cmd, opts.RootOptions, cfg)
	tool := cfg.Tool
	if cmd.Flags().Changed("tool") || tool == "" {
		tool = opts.Tool
	}

	jobs, err := buildJobs(cfg, tool)
	if err != nil {
		return configError(cmd, opts.RootOptions, err)
	}

	return executeBatch(cmd, opts.RootOptions, settings, jobs)
}

// mergeSettings applies the config file, then any global flag set explicitly
// on the command line.
func mergeSettings(cmd *cobra.Command, opts *RootOptions, cfg *config.Config) batchSettings {
	settings := batchSettings{
		Command: "run",
		Workers: cfg.Workers,
		Backup:  cfg.BackupEnabled(),
		History: cfg.History,
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		settings.Workers = opts.Workers
	}
	if flags.Changed("no-backup") {
		settings.Backup = !opts.NoBackup
	}
	if flags.Changed("history") {
		settings.History = opts.History
	}
	return settings
}

// buildJobs turns config jobs into sync jobs. Jobs with the same shape share
// one strategy.
func buildJobs(cfg *config.Config, tool string) ([]syncer.Job, error) {
	headers := extract.NewHeaderStrategy(extract.WithTool(tool))
	tests := make(map[string]extract.Strategy)

	jobs := make([]syncer.Job, 0, len(cfg.Jobs))
	for i, j := range cfg.Jobs {
		var strategy extract.Strategy
		switch j.Kind {
		case config.KindHeaders:
			strategy = headers
		case config.KindTests:
			suite := j.Suite
			if suite == "" {
				suite = extract.DefaultSuite
			}
			indent := extract.DefaultIndent
			if j.Indent != nil {
				indent = *j.Indent
			}
			key := suite + "\x00" + indent
			if tests[key] == nil {
				tests[key] = extract.NewTestStrategy(extract.WithSuite(suite), extract.WithIndent(indent))
			}
			strategy = tests[key]
		default:
			return nil, fmt.Errorf("%w: jobs[%d]: unknown kind %q", config.ErrInvalid, i, j.Kind)
		}
		jobs = append(jobs, syncer.Job{Strategy: strategy, Pair: syncer.Pair{Source: j.Source, Target: j.Target}})
	}
	return jobs, nil
}

func configError(cmd *cobra.Command, opts *RootOptions, err error) error {
	formatter := newFormatter(opts, cmd)
	message := "invalid config"
	if errors.Is(err, config.ErrNotFound) {
		message = "config not found"
	}
	_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
	return WrapExitError(ExitCommandError, message, err)
}
