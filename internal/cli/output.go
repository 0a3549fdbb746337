package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/regionsync/internal/report"
)

// Exit codes.
const (
	ExitSuccess      = 0 // every pair written, unchanged or without records
	ExitFailure      = 1 // at least one pair failed, or is stale under --check
	ExitCommandError = 2 // bad arguments, bad config, duplicate targets, history unavailable
)

// Error codes carried by JSON error responses.
const (
	ErrCodeArgs      = "E002"
	ErrCodeConfig    = "E003" // config file missing or invalid
	ErrCodeBatch     = "E004" // batch rejected before any pair ran
	ErrCodeHistory   = "E005"
	ErrCodeNoSources = "E006" // directory scan found no .c files
)

// ExitError is returned by commands to select the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional cause
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an error returned by a command to an exit code. Errors
// that are not ExitErrors exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or JSON.
//
// Results and errors go to Writer. Progress messages go to ErrWriter so
// that stdout stays a single JSON document in json format.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // falls back to Writer when nil
	Verbose   bool
}

// CLIResponse is the JSON envelope for errors.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError describes a failed command.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Canonical writes {"status": status, "data": data} as canonical JSON, so
// reports are byte-identical for identical runs.
func (f *OutputFormatter) Canonical(status string, data map[string]any) error {
	b, err := report.MarshalCanonical(map[string]any{
		"status": status,
		"data":   data,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.Writer, "%s\n", b)
	return err
}

// Error reports a command error. Details are printed in text format only
// with --verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a progress line when --verbose is set. It has the
// syncer.Logf signature.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the writer for progress output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
