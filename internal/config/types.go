package config

import (
	"path/filepath"
	"strings"
)

// Job kinds.
const (
	KindHeaders = "headers"
	KindTests   = "tests"
)

// DefaultFileNames are looked up, in order, when no config path is given.
var DefaultFileNames = []string{"regionsync.yaml", "regionsync.yml", "regionsync.cue"}

// Config describes a batch of sync jobs.
type Config struct {
	// Workers is the number of jobs run at once. Defaults to 1.
	Workers int `yaml:"workers" json:"workers,omitempty"`

	// Backup keeps <target>.bak on every write. Defaults to true; false
	// switches to a single atomic rename with no backup.
	Backup *bool `yaml:"backup" json:"backup,omitempty"`

	// History is the path of the SQLite run history. Empty disables it.
	History string `yaml:"history" json:"history,omitempty"`

	// Tool is the program name written into header preamble lines.
	Tool string `yaml:"tool" json:"tool,omitempty"`

	Jobs []Job `yaml:"jobs" json:"jobs"`
}

// Job is one source/target pair.
type Job struct {
	// Kind selects the strategy: "headers" or "tests".
	Kind string `yaml:"kind" json:"kind"`

	Source string `yaml:"source" json:"source"`

	// Target defaults to <source>_fns.h for headers and to the source itself
	// for tests.
	Target string `yaml:"target" json:"target,omitempty"`

	// Suite and Indent shape tests registrations. Ignored for headers.
	Suite  string  `yaml:"suite" json:"suite,omitempty"`
	Indent *string `yaml:"indent" json:"indent,omitempty"`
}

// BackupEnabled reports whether writes keep a .bak file.
func (c *Config) BackupEnabled() bool {
	return c.Backup == nil || *c.Backup
}

// DefaultHeaderTarget returns the header paired with a C source by default:
// foo.c -> foo_fns.h.
func DefaultHeaderTarget(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + "_fns.h"
}
