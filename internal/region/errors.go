package region

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrMissingDelimiter = errors.New("missing delimiter")
	ErrDelimiterOrder   = errors.New("delimiters out of order")
)

// Which identifies one marker of a DelimiterPair.
type Which string

const (
	WhichStart Which = "start"
	WhichEnd   Which = "end"
)

// MissingDelimiterError is returned when a marker line is not present.
type MissingDelimiterError struct {
	Which  Which
	Marker string
}

func (e *MissingDelimiterError) Error() string {
	return fmt.Sprintf("couldn't find %s delimiter %q", e.Which, e.Marker)
}

func (e *MissingDelimiterError) Is(target error) bool {
	return target == ErrMissingDelimiter
}

// DelimiterOrderError is returned when the end marker does not come after
// the start marker.
type DelimiterOrderError struct {
	StartOffset int
	EndOffset   int
}

func (e *DelimiterOrderError) Error() string {
	return fmt.Sprintf("end delimiter (offset %d) does not follow start delimiter (offset %d)",
		e.EndOffset, e.StartOffset)
}

func (e *DelimiterOrderError) Is(target error) bool {
	return target == ErrDelimiterOrder
}
