package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/config"
	"github.com/roach88/regionsync/internal/extract"
	"github.com/roach88/regionsync/internal/syncer"
)

// HeadersOptions holds flags for the headers command.
type HeadersOptions struct {
	*RootOptions
	Dir    string
	KState bool
}

// NewHeadersCommand creates the headers command.
func NewHeadersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HeadersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "headers [<c_file> <h_file> ...]",
		Short: "Extract extern function prototypes from .c files into .h files",
		Long: `Extract commented extern function definitions from C sources into the
generated region of their header files.

Arguments are pairs of source .c file and target .h file. With no arguments,
every <name>.c file in --dir is paired with <name>_fns.h. With --kstate the
single pair kstate.c -> kstate.h in --dir is used.

Each target must exist and contain the marker lines:

  // -------- TEXT AFTER THIS AUTOGENERATED - DO NOT EDIT --------
  // -------- TEXT BEFORE THIS AUTOGENERATED - DO NOT EDIT --------

Example:
  regionsync headers kstate.c kstate.h
  regionsync headers --dir ./src --check`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args)%2 != 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("unbalanced arguments: %q is not matched to a .h file", args[len(args)-1]))
			}
			if opts.KState && len(args) > 0 {
				return NewExitError(ExitCommandError, "unexpected arguments after --kstate")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "directory scanned for .c files when no pairs are given")
	cmd.Flags().BoolVar(&opts.KState, "kstate", false, "sync kstate.c into kstate.h in --dir")

	return cmd
}

func runHeaders(cmd *cobra.Command, opts *HeadersOptions, args []string) error {
	var pairs []syncer.Pair
	switch {
	case opts.KState:
		pairs = []syncer.Pair{{
			Source: filepath.Join(opts.Dir, "kstate.c"),
			Target: filepath.Join(opts.Dir, "kstate.h"),
		}}
	case len(args) > 0:
		for i := 0; i < len(args); i += 2 {
			pairs = append(pairs, syncer.Pair{Source: args[i], Target: args[i+1]})
		}
	default:
		var err error
		pairs, err = scanSources(opts.Dir)
		if err != nil {
			formatter := newFormatter(opts.RootOptions, cmd)
			_ = formatter.Error(ErrCodeNoSources, err.Error(), nil)
			return WrapExitError(ExitCommandError, "scanning for C sources", err)
		}
	}

	strategy := extract.NewHeaderStrategy(extract.WithTool(opts.Tool))
	jobs := make([]syncer.Job, 0, len(pairs))
	for _, pair := range pairs {
		jobs = append(jobs, syncer.Job{Strategy: strategy, Pair: pair})
	}

	return executeBatch(cmd, opts.RootOptions, settingsFromFlags(opts.RootOptions, "headers"), jobs)
}

// scanSources pairs every <name>.c in dir with <name>_fns.h, in name order.
func scanSources(dir string) ([]syncer.Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".c" {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .c files in %s", dir)
	}
	sort.Strings(names)

	pairs := make([]syncer.Pair, 0, len(names))
	for _, name := range names {
		source := filepath.Join(dir, name)
		pairs = append(pairs, syncer.Pair{Source: source, Target: config.DefaultHeaderTarget(source)})
	}
	return pairs, nil
}
