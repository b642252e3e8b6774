package terminology

import (
	"fmt"
	"io"

	"github.com/meur/umaviewer/internal/models"
)

// WriteIssue prints one finding in the validator's report format
func WriteIssue(w io.Writer, is models.Issue) {
	switch {
	case is.Line > 0:
		fmt.Fprintf(w, "  %s:%d\n", is.File, is.Line)
		fmt.Fprintf(w, "    Found: '%s' -> Should be: '%s'\n", is.Found, is.Expected)
		fmt.Fprintf(w, "    Context: %s\n", is.Context)
	case is.Field != "":
		fmt.Fprintf(w, "  %s [%s]\n", is.File, is.Field)
		fmt.Fprintf(w, "    Found: '%s' -> Should be: '%s'\n", is.Found, is.Expected)
		fmt.Fprintf(w, "    Sample: %s\n", is.Sample)
	default:
		problem := is.Problem
		if problem == "" {
			problem = "Unknown issue"
		}
		fmt.Fprintf(w, "  %s: %s\n", is.File, problem)
	}
}

// WriteSummary prints at most limit findings in the short form used after enrichment
func WriteSummary(w io.Writer, issues []models.Issue, limit int) {
	for i, is := range issues {
		if i == limit {
			fmt.Fprintf(w, "\n  ... and %d more. Run 'umaview validate' for the full report.\n", len(issues)-limit)
			return
		}
		if is.Field == "" {
			fmt.Fprintf(w, "  %s: %s\n", is.File, is.Problem)
			continue
		}
		fmt.Fprintf(w, "  %s\n", is.Field)
		fmt.Fprintf(w, "    '%s' -> should be '%s'\n", is.Found, is.Expected)
	}
}
