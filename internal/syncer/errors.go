package syncer

import (
	"errors"
	"fmt"
)

// ErrDuplicateTarget is returned by Runner.Run when two jobs in one batch
// would write the same file.
var ErrDuplicateTarget = errors.New("duplicate target")

// PreconditionError reports a pair rejected before any file was read.
type PreconditionError struct {
	Status Status
	Path   string
	Want   string // expected extension, for StatusBadExtension
}

func (e *PreconditionError) Error() string {
	switch e.Status {
	case StatusNoSource:
		return fmt.Sprintf("source file %s does not exist", e.Path)
	case StatusNoTarget:
		return fmt.Sprintf("target file %s does not exist", e.Path)
	case StatusBadExtension:
		return fmt.Sprintf("file %s does not have extension %s", e.Path, e.Want)
	default:
		return fmt.Sprintf("%s: %s", e.Status, e.Path)
	}
}

// IOFailure wraps a filesystem error raised while reading or rewriting a
// file. A failure between the backup rename and the final rename can leave
// the target missing; nothing is rolled back.
type IOFailure struct {
	Op   string // "read", "write", "backup", "replace"
	Path string
	Err  error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error {
	return e.Err
}
