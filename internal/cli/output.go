package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfst/core"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Lookup miss or failed verification
	ExitCommandError = 2 // Bad arguments, unreadable or invalid input
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError if the error is not an ExitError, since those
// come from cobra's own argument checks.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics and text-mode errors
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    int    `json:"code"`    // process exit code
	Message string `json:"message"` // human-readable message
}

// Row is one key in a listing.
type Row struct {
	Key      string       `json:"key"`
	Output   *core.Output `json:"output,omitempty"`
	Distance *int         `json:"distance,omitempty"`
}

// Success outputs a result in the configured format. In text mode data is
// printed with its String method or %v.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Rows outputs a listing: one tab-separated line per row in text mode, an
// array in JSON mode.
func (f *OutputFormatter) Rows(rows []Row) error {
	if f.Format == "json" {
		if rows == nil {
			rows = []Row{}
		}
		return f.Success(rows)
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r.Key)
		if r.Output != nil {
			sb.WriteByte('\t')
			sb.WriteString(strconv.FormatUint(uint64(*r.Output), 10))
		}
		if r.Distance != nil {
			sb.WriteByte('\t')
			sb.WriteString(strconv.Itoa(*r.Distance))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(f.Writer, sb.String())

	return err
}

// Error outputs err: a JSON error response on Writer, or one line on
// ErrWriter in text mode.
func (f *OutputFormatter) Error(err error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: GetExitCode(err), Message: err.Error()},
		})
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	_, werr := fmt.Fprintf(w, "lvfst: %v\n", err)

	return werr
}
