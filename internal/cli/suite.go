package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/regionsync/internal/extract"
	"github.com/roach88/regionsync/internal/syncer"
)

// TestsOptions holds flags for the tests command.
type TestsOptions struct {
	*RootOptions
	Suite  string
	Indent string
}

// NewTestsCommand creates the tests command.
func NewTestsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tests <c_file>...",
		Short: "Regenerate check suite registrations from START_TEST declarations",
		Long: `Find tests declared as START_TEST(<name>) and rewrite the lines between

  // START TESTS
  // END TESTS

in the same file with one registration per test:

  tcase_add_test(tc_core, <name>);

A test annotated on its START_TEST line with "// expect signal SIGSEGV" is
registered with tcase_add_test_raise_signal instead.

Example:
  regionsync tests check_kstate.c
  regionsync tests --suite tc_extra --indent "    " check_extra.c`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Suite, "suite", extract.DefaultSuite, "test case variable passed to tcase_add_test")
	cmd.Flags().StringVar(&opts.Indent, "indent", extract.DefaultIndent, "indentation of each registration line")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestsOptions, files []string) error {
	strategy := extract.NewTestStrategy(extract.WithSuite(opts.Suite), extract.WithIndent(opts.Indent))
	jobs := make([]syncer.Job, 0, len(files))
	for _, file := range files {
		jobs = append(jobs, syncer.Job{Strategy: strategy, Pair: syncer.Pair{Source: file, Target: file}})
	}
	return executeBatch(cmd, opts.RootOptions, settingsFromFlags(opts.RootOptions, "tests"), jobs)
}
