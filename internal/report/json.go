package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/twconfig"
)

// SchemaVersion is bumped when the JSON shapes below change incompatibly.
const SchemaVersion = "1"

// ValidationJSON is the JSON shape of `twconfig validate --output-format json`.
type ValidationJSON struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Config    string      `json:"config"`
	Valid     bool        `json:"valid"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary holds issue counts.
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// JSONIssue is a single issue.
type JSONIssue struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Field    string `json:"field,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// MatchJSON is the JSON shape of `twconfig match --output-format json`.
type MatchJSON struct {
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Summary   JSONMatchSummary       `json:"summary"`
	Results   []twconfig.MatchResult `json:"results"`
}

// JSONMatchSummary holds coverage counts.
type JSONMatchSummary struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// WriteValidationJSON writes issues as a ValidationJSON document.
func WriteValidationJSON(w io.Writer, path string, issues []twconfig.Issue) error {
	return writeJSON(w, buildValidationJSON(path, issues))
}

// WriteMatchesJSON writes results as a MatchJSON document.
func WriteMatchesJSON(w io.Writer, results []twconfig.MatchResult) error {
	return writeJSON(w, buildMatchJSON(results))
}

func buildValidationJSON(path string, issues []twconfig.Issue) ValidationJSON {
	errs, warnings := CountSeverities(issues)

	out := ValidationJSON{
		Version:   SchemaVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Config:    path,
		Valid:     errs == 0,
		Summary: JSONSummary{
			TotalIssues: len(issues),
			Errors:      errs,
			Warnings:    warnings,
		},
		Issues: make([]JSONIssue, 0, len(issues)),
	}
	for _, issue := range SortIssues(issues) {
		out.Issues = append(out.Issues, JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Field:    issue.Field,
			Severity: issue.Severity,
			Message:  issue.Text,
		})
	}
	return out
}

func buildMatchJSON(results []twconfig.MatchResult) MatchJSON {
	matched := 0
	for _, res := range results {
		if res.Matched {
			matched++
		}
	}
	if results == nil {
		results = []twconfig.MatchResult{}
	}
	return MatchJSON{
		Version:   SchemaVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: JSONMatchSummary{
			Total:     len(results),
			Matched:   matched,
			Unmatched: len(results) - matched,
		},
		Results: results,
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
