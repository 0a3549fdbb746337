package syncer

// Status is the outcome of syncing one pair.
type Status string

const (
	StatusNoSource     Status = "no_source"
	StatusNoTarget     Status = "no_target"
	StatusBadExtension Status = "bad_extension"
	StatusNoDelimiters Status = "no_delimiters"
	StatusNoRecords    Status = "no_records"
	StatusUnchanged    Status = "unchanged"
	StatusWritten      Status = "written"
	StatusStale        Status = "stale" // check mode: would have been written
	StatusFailed       Status = "failed"
)

// Failed reports whether the status should make the batch fail.
// no_records and unchanged are successful no-ops.
func (s Status) Failed() bool {
	switch s {
	case StatusNoSource, StatusNoTarget, StatusBadExtension, StatusNoDelimiters, StatusFailed, StatusStale:
		return true
	}
	return false
}

// Pair is a source file and the target file whose managed region is derived
// from it. Source and Target may be the same path.
type Pair struct {
	Source string
	Target string
}

// Result describes what happened to one pair.
type Result struct {
	Strategy string
	Source   string
	Target   string
	Status   Status

	// Records is the number of records extracted from the source.
	Records int

	// Err explains a failing status.
	Err error
}

// Report collects the results of a batch, in job order.
type Report struct {
	Results []Result
}

// Failed returns the number of results with a failing status.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status.Failed() {
			n++
		}
	}
	return n
}

// Count returns the number of results with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}
