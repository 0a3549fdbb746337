package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/regionsync/internal/region"
)

// Test suite block markers.
const (
	TestsStartMarker = "// START TESTS"
	TestsEndMarker   = "// END TESTS"
)

// Defaults for the generated registration lines.
const (
	DefaultSuite  = "tc_core"
	DefaultIndent = "  "
)

// testPattern matches START_TEST(name), optionally followed on the same line
// by an annotation naming the signal the test is expected to raise:
//
//	START_TEST(free_NULL_state_fails) // expect signal SIGSEGV
var testPattern = regexp.MustCompile(
	`START_TEST\(\s*(\w+)\s*\)(?:[ \t]*//[ \t]*expects?[ \t]+signal[ \t]+(\w+))?`)

// TestCase is a test declaration found in a check source file. It is either a
// PlainTest or a SignalTest.
type TestCase interface {
	TestName() string

	// Registration returns the statement that adds the test to suite.
	Registration(suite string) string

	isTestCase()
}

// PlainTest is a test that is expected to return normally.
type PlainTest struct {
	Name string
}

func (t PlainTest) TestName() string { return t.Name }

func (t PlainTest) Registration(suite string) string {
	return fmt.Sprintf("tcase_add_test(%s, %s);", suite, t.Name)
}

func (PlainTest) isTestCase() {}

// SignalTest is a test that is expected to terminate with Signal.
type SignalTest struct {
	Name   string
	Signal string
}

func (t SignalTest) TestName() string { return t.Name }

func (t SignalTest) Registration(suite string) string {
	return fmt.Sprintf("tcase_add_test_raise_signal(%s, %s, %s);", suite, t.Name, t.Signal)
}

func (SignalTest) isTestCase() {}

// FindTests returns the test declarations in src, in file order.
func FindTests(src string) []TestCase {
	matches := testPattern.FindAllStringSubmatch(src, -1)
	cases := make([]TestCase, 0, len(matches))
	for _, m := range matches {
		if m[2] != "" {
			cases = append(cases, SignalTest{Name: m[1], Signal: m[2]})
			continue
		}
		cases = append(cases, PlainTest{Name: m[1]})
	}
	return cases
}

// TestOption configures a TestStrategy.
type TestOption func(*TestStrategy)

// WithSuite sets the TCase variable that tests are registered with.
func WithSuite(suite string) TestOption {
	return func(s *TestStrategy) {
		if suite != "" {
			s.suite = suite
		}
	}
}

// WithIndent sets the indentation of each registration line.
func WithIndent(indent string) TestOption {
	return func(s *TestStrategy) {
		s.indent = indent
	}
}

// TestStrategy rewrites the suite registration block of a check test file
// from the START_TEST declarations in the same file.
type TestStrategy struct {
	suite  string
	indent string
}

// NewTestStrategy creates a TestStrategy registering tests with tc_core.
func NewTestStrategy(opts ...TestOption) *TestStrategy {
	s := &TestStrategy{suite: DefaultSuite, indent: DefaultIndent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Strategy = (*TestStrategy)(nil)

func (s *TestStrategy) Name() string      { return "tests" }
func (s *TestStrategy) SourceExt() string { return ".c" }
func (s *TestStrategy) TargetExt() string { return ".c" }

func (s *TestStrategy) Delimiters() region.DelimiterPair {
	return region.DelimiterPair{Start: TestsStartMarker, End: TestsEndMarker}
}

func (s *TestStrategy) Extract(src string) []Record {
	cases := FindTests(src)
	records := make([]Record, len(cases))
	for i, tc := range cases {
		records[i] = Record{
			Name: tc.TestName(),
			Text: s.indent + tc.Registration(s.suite),
		}
	}
	return records
}

// Render writes one registration per line.
func (s *TestStrategy) Render(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *TestStrategy) Preamble() Preamble { return nil }
