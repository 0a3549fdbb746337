package extract

import (
	"time"

	"github.com/roach88/regionsync/internal/region"
)

// Record is one unit of generated text. Identity is Text; Name is the
// extracted identifier, used for progress messages.
type Record struct {
	Name string
	Text string
}

// Strategy is the source-specific half of a sync: everything the engine
// needs to know about one kind of managed region.
type Strategy interface {
	// Name identifies the strategy ("headers", "tests").
	Name() string

	// SourceExt and TargetExt are the required file extensions.
	SourceExt() string
	TargetExt() string

	// Delimiters returns the marker lines bounding the managed region.
	Delimiters() region.DelimiterPair

	// Extract returns the records found in src, in file order.
	Extract(src string) []Record

	// Render produces the managed region text for records.
	Render(records []Record) string

	// Preamble returns the generated first line of the managed region, or
	// nil if the strategy does not write one.
	Preamble() Preamble
}

// Preamble is a single generated line at the head of a managed region. It is
// rewritten on every write and ignored when deciding whether the region
// changed.
type Preamble interface {
	// Line returns the preamble for now, newline-terminated.
	Line(now time.Time) string

	// Match reports whether line (without newline) is a preamble.
	Match(line string) bool
}

// Names returns the record names in order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
