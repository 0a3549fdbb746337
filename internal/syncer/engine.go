package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/regionsync/internal/extract"
	"github.com/roach88/regionsync/internal/region"
)

// Logf receives progress messages. Messages are single lines without a
// trailing newline.
type Logf func(format string, args ...any)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for preamble timestamps.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithWriter sets how targets are rewritten. Defaults to BackupWriter.
func WithWriter(w Writer) Option {
	return func(e *Engine) { e.writer = w }
}

// WithLogf sets the progress logger. By default messages are discarded.
func WithLogf(logf Logf) Option {
	return func(e *Engine) { e.logf = logf }
}

// WithCheck makes the engine report StatusStale instead of writing.
func WithCheck(check bool) Option {
	return func(e *Engine) { e.check = check }
}

// WithDiff logs a unified diff of the managed region whenever it changes.
func WithDiff(diff bool) Option {
	return func(e *Engine) { e.diff = diff }
}

// Engine syncs pairs for one extraction strategy. An Engine holds no state
// between calls to Sync.
type Engine struct {
	strategy extract.Strategy
	clock    Clock
	writer   Writer
	logf     Logf
	check    bool
	diff     bool
}

// New creates an Engine for strategy.
func New(strategy extract.Strategy, opts ...Option) *Engine {
	e := &Engine{
		strategy: strategy,
		clock:    SystemClock{},
		writer:   BackupWriter{},
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sync brings pair.Target's managed region in line with the records found in
// pair.Source. The source is never modified. The returned Result always has
// Status set; Err is set when the status is a failure.
func (e *Engine) Sync(ctx context.Context, pair Pair) Result {
	res := Result{
		Strategy: e.strategy.Name(),
		Source:   pair.Source,
		Target:   pair.Target,
	}

	if err := e.checkPreconditions(pair); err != nil {
		var pe *PreconditionError
		if errors.As(err, &pe) {
			res.Status = pe.Status
		} else {
			res.Status = StatusFailed
		}
		res.Err = err
		e.logf("%v", err)
		return res
	}

	e.logf("Extracting %s from %s to %s", e.strategy.Name(), pair.Source, pair.Target)

	if err := ctx.Err(); err != nil {
		return fail(res, err)
	}
	src, err := os.ReadFile(pair.Source)
	if err != nil {
		return fail(res, &IOFailure{Op: "read", Path: pair.Source, Err: err})
	}

	records := e.strategy.Extract(string(src))
	res.Records = len(records)
	for _, name := range extract.Names(records) {
		e.logf("  Found %s", name)
	}
	if len(records) == 0 {
		e.logf("No %s found in %s", e.strategy.Name(), pair.Source)
		res.Status = StatusNoRecords
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(res, err)
	}
	data, err := os.ReadFile(pair.Target)
	if err != nil {
		return fail(res, &IOFailure{Op: "read", Path: pair.Target, Err: err})
	}

	reg, err := region.Split(string(data), e.strategy.Delimiters())
	if err != nil {
		e.logf("%s: %v", pair.Target, err)
		res.Status = StatusNoDelimiters
		res.Err = fmt.Errorf("%s: %w", pair.Target, err)
		return res
	}

	eol := lineEnding(reg.Prefix)
	current := e.stripPreamble(reg.Managed)
	generated := withLineEnding(e.strategy.Render(records), eol)
	if current == generated {
		e.logf("Nothing changed")
		res.Status = StatusUnchanged
		return res
	}

	if e.diff {
		for _, line := range strings.Split(strings.TrimSuffix(unifiedDiff(pair.Target, current, generated), "\n"), "\n") {
			e.logf("%s", line)
		}
	}

	if e.check {
		e.logf("%s is out of date", pair.Target)
		res.Status = StatusStale
		res.Err = fmt.Errorf("%s is out of date with %s", pair.Target, pair.Source)
		return res
	}

	e.logf("Writing new %s", pair.Target)
	content := reg.Replace(withLineEnding(e.preambleLine(), eol) + generated)
	if err := e.writer.Write(ctx, pair.Target, []byte(content)); err != nil {
		return fail(res, err)
	}

	res.Status = StatusWritten
	return res
}

// checkPreconditions verifies both files exist and carry the strategy's
// extensions.
func (e *Engine) checkPreconditions(pair Pair) error {
	if !isFile(pair.Source) {
		return &PreconditionError{Status: StatusNoSource, Path: pair.Source}
	}
	if !isFile(pair.Target) {
		return &PreconditionError{Status: StatusNoTarget, Path: pair.Target}
	}
	if ext := e.strategy.SourceExt(); filepath.Ext(pair.Source) != ext {
		return &PreconditionError{Status: StatusBadExtension, Path: pair.Source, Want: ext}
	}
	if ext := e.strategy.TargetExt(); filepath.Ext(pair.Target) != ext {
		return &PreconditionError{Status: StatusBadExtension, Path: pair.Target, Want: ext}
	}
	return nil
}

// stripPreamble removes the strategy's preamble line from the head of
// managed, if it is there.
func (e *Engine) stripPreamble(managed string) string {
	p := e.strategy.Preamble()
	if p == nil {
		return managed
	}
	line, rest, found := strings.Cut(managed, "\n")
	if !p.Match(strings.TrimSuffix(line, "\r")) {
		return managed
	}
	if !found {
		return ""
	}
	return rest
}

func (e *Engine) preambleLine() string {
	p := e.strategy.Preamble()
	if p == nil {
		return ""
	}
	return p.Line(e.clock.Now())
}

// lineEnding returns "\r\n" when the start marker line of the target ends
// with CRLF, and "\n" otherwise. The generated region follows it.
func lineEnding(prefix string) string {
	if strings.HasSuffix(prefix, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func withLineEnding(s, eol string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if eol == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", eol)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fail(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	return res
}
