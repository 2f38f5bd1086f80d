package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bibkit/bibkit/internal/bib"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// DiagnosticReport is the JSON shape of one diagnostic.
type DiagnosticReport struct {
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Col      int    `json:"col,omitempty"`
	Message  string `json:"message"`
}

// reportDiagnostics converts diagnostics to their JSON shape.
func reportDiagnostics(diags []bib.Diagnostic) []DiagnosticReport {
	reports := make([]DiagnosticReport, len(diags))
	for i, d := range diags {
		reports[i] = DiagnosticReport{
			Severity: d.Severity.String(),
			Line:     d.Line,
			Col:      d.Col,
			Message:  d.Message,
		}
	}
	return reports
}

// printDiagnosticsHuman prints diagnostics one per line to stderr.
func printDiagnosticsHuman(path string, diags []bib.Diagnostic) {
	for _, d := range diags {
		if d.Line > 0 {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", path, d.Line, d.Col, d.Severity, d.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", path, d.Severity, d.Message)
		}
	}
}
