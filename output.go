package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitRuntimeError  = 1
	ExitNotConfigured = 2
	ExitInvalidInput  = 3
)

// CLIError carries the exit code and the machine-readable code reported in
// --json mode.
type CLIError struct {
	ExitCode int
	Code     string
	Message  string
}

func (e *CLIError) Error() string { return e.Message }

func newCLIError(exitCode int, code, message string) *CLIError {
	return &CLIError{ExitCode: exitCode, Code: code, Message: message}
}

// toCLIError returns err as a *CLIError, treating anything unclassified
// as a runtime error.
func toCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return newCLIError(ExitRuntimeError, "runtime_error", err.Error())
}

// statusResponse is the envelope for commands that only report an outcome.
type statusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

// printJSON writes one JSON document per line to stdout.
func printJSON(v any) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}

// printStatus reports a finished action such as "History cleared.".
func printStatus(jsonMode bool, message string) error {
	if jsonMode {
		return printJSON(statusResponse{Status: "ok", Message: message})
	}
	fmt.Fprintln(os.Stdout, message)
	return nil
}

// printError reports a failed command on stderr.
func printError(w io.Writer, jsonMode bool, e *CLIError) {
	if jsonMode {
		_ = json.NewEncoder(w).Encode(statusResponse{
			Status:   "error",
			Error:    e.Code,
			Message:  e.Message,
			ExitCode: e.ExitCode,
		})
		return
	}
	fmt.Fprintln(w, "Error: "+e.Message)
}
