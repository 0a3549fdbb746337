package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/extract"
	"github.com/roach88/regionsync/internal/history"
	"github.com/roach88/regionsync/internal/syncer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	History  string // SQLite run history path; empty disables recording
	Check    bool   // report stale regions without writing
	Diff     bool   // log a unified diff of each changed region
	NoBackup bool   // replace targets atomically instead of keeping .bak
	Workers  int
	Tool     string // name written into header preamble lines

	// Clock and IDs are replaced in tests for deterministic output.
	Clock syncer.Clock
	IDs   history.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the regionsync CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regionsync",
		Short: "Keep generated regions of C files in sync with their sources",
		Long: `regionsync rewrites the machine-managed region of a file, delimited by a pair
of marker lines, from records extracted from a C source file.

  headers  extern function prototypes from .c files into .h files
  tests    START_TEST declarations into a check suite registration block

Text outside the markers is never changed. The target is only rewritten when
the generated text differs, and the previous version is kept as <target>.bak.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Workers < 1 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid --workers %d: must be at least 1", opts.Workers))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.History, "history", "", "record runs in this SQLite database")
	cmd.PersistentFlags().BoolVar(&opts.Check, "check", false, "report out-of-date regions without writing (exit 1 if any)")
	cmd.PersistentFlags().BoolVar(&opts.Diff, "diff", false, "show a diff of each changed region (with --verbose)")
	cmd.PersistentFlags().BoolVar(&opts.NoBackup, "no-backup", false, "replace targets atomically without keeping <target>.bak")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 1, "number of pairs processed at once")
	cmd.PersistentFlags().StringVar(&opts.Tool, "tool", extract.DefaultTool, "program name written into header timestamps")

	cmd.AddCommand(NewHeadersCommand(opts))
	cmd.AddCommand(NewTestsCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
