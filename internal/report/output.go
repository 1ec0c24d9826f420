package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/twconfig"
)

// OutputFormat selects how results are written.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat maps the --output-format flag to a format.
// Quiet mode always uses text; the caller suppresses it.
func DetermineOutputFormat(formatFlag string, quiet bool) (OutputFormat, error) {
	if quiet {
		return OutputText, nil
	}
	switch formatFlag {
	case "", "text", "issues":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", formatFlag)
	}
}

// WriteValidation writes the validation result for the config at path.
func WriteValidation(w io.Writer, path string, issues []twconfig.Issue, format OutputFormat, forceColors bool) error {
	if format == OutputJSON {
		return WriteValidationJSON(w, path, issues)
	}
	r := NewReporter(w, forceColors)
	r.PrintIssues(issues)
	r.PrintSummary(issues)
	return nil
}

// WriteMatches writes content coverage results.
func WriteMatches(w io.Writer, results []twconfig.MatchResult, format OutputFormat, forceColors bool) error {
	if format == OutputJSON {
		return WriteMatchesJSON(w, results)
	}
	NewReporter(w, forceColors).PrintMatches(results)
	return nil
}
