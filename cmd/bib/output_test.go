package main

import (
	"testing"

	"github.com/bibkit/bibkit/internal/bib"
)

func TestReportDiagnostics(t *testing.T) {
	diags := []bib.Diagnostic{
		{Severity: bib.SeverityError, Line: 3, Col: 7, Message: "unterminated string"},
		{Severity: bib.SeverityWarning, Message: "duplicate key \"Doe2020\""},
	}

	reports := reportDiagnostics(diags)
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if reports[0].Severity != "error" || reports[0].Line != 3 || reports[0].Col != 7 {
		t.Errorf("reports[0] = %+v", reports[0])
	}
	if reports[1].Severity != "warning" || reports[1].Line != 0 {
		t.Errorf("reports[1] = %+v", reports[1])
	}
}
