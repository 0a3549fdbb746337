package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/roach88/regionsync/internal/region"
)

// Header region markers, as found in the library's .h files.
const (
	HeaderStartMarker = "// -------- TEXT AFTER THIS AUTOGENERATED - DO NOT EDIT --------"
	HeaderEndMarker   = "// -------- TEXT BEFORE THIS AUTOGENERATED - DO NOT EDIT --------"
)

// DefaultTool is the program name written into the header preamble.
const DefaultTool = "regionsync"

const (
	preamblePrefix = "// Autogenerated by "
	timestampFmt   = "2006-01-02 (Mon 02 Jan 2006) at 15:04"
)

// headerPattern matches a comment block, then an extern function signature,
// then the line holding the opening brace of the body:
//
//	/*
//	 * Header comment text
//	 */
//	extern datatype other words function_name( any arguments )
//	{
//
// Group 1 is the header (comment + signature), group 2 the function name.
// The return type allows "int ", "char *" and "struct fred *" shapes.
var headerPattern = regexp.MustCompile(
	`(` +
		`\s*/\*.*\n` + // comment start
		`(?:\s*\*.*\n)*` + // comment lines
		`\s*\*/\n` + // comment end
		`\s*extern\s+` +
		`(?:\w+\s+\**\s*|\w+\s+\w+\s+\**\s*)` + // return type
		`(\w+)` + // function name
		`\((?:[^)]|\n)*\)` + // arguments
		`)` +
		`\s*\n\s*\{`)

// HeaderOption configures a HeaderStrategy.
type HeaderOption func(*HeaderStrategy)

// WithTool sets the program name written into the preamble line.
func WithTool(tool string) HeaderOption {
	return func(s *HeaderStrategy) {
		if tool != "" {
			s.tool = tool
		}
	}
}

// HeaderStrategy extracts extern function headers from a .c file into the
// managed region of a .h file, as prototypes.
type HeaderStrategy struct {
	tool string
}

// NewHeaderStrategy creates a HeaderStrategy.
func NewHeaderStrategy(opts ...HeaderOption) *HeaderStrategy {
	s := &HeaderStrategy{tool: DefaultTool}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Strategy = (*HeaderStrategy)(nil)

func (s *HeaderStrategy) Name() string      { return "headers" }
func (s *HeaderStrategy) SourceExt() string { return ".c" }
func (s *HeaderStrategy) TargetExt() string { return ".h" }

func (s *HeaderStrategy) Delimiters() region.DelimiterPair {
	return region.DelimiterPair{Start: HeaderStartMarker, End: HeaderEndMarker}
}

// Extract returns one record per function header, with ";" appended to turn
// the signature into a prototype. Blank lines before the comment are dropped.
func (s *HeaderStrategy) Extract(src string) []Record {
	matches := headerPattern.FindAllStringSubmatch(src, -1)
	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, Record{
			Name: m[2],
			Text: trimLeadingBlankLines(m[1]) + ";",
		})
	}
	return records
}

// Render writes each prototype followed by a blank line.
func (s *HeaderStrategy) Render(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func (s *HeaderStrategy) Preamble() Preamble {
	return timestampPreamble{tool: s.tool}
}

// timestampPreamble is the "// Autogenerated by <tool> on <time>" line.
// Any line with the "// Autogenerated by " prefix is accepted, so regions
// written by other tools are still recognised.
type timestampPreamble struct {
	tool string
}

func (p timestampPreamble) Line(now time.Time) string {
	return preamblePrefix + p.tool + " on " + now.Format(timestampFmt) + "\n"
}

func (p timestampPreamble) Match(line string) bool {
	return strings.HasPrefix(line, preamblePrefix)
}

// trimLeadingBlankLines drops whole blank lines at the start of s, keeping
// the indentation of the first non-blank line.
func trimLeadingBlankLines(s string) string {
	trimmed := strings.TrimLeft(s, " \t\r\n\f\v")
	lead := s[:len(s)-len(trimmed)]
	return s[strings.LastIndexByte(lead, '\n')+1:]
}
