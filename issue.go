package twconfig

import (
	"fmt"
	"strings"
)

// Issue is a single schema finding for a configuration record.
type Issue struct {
	Field    string   `json:"Field"`    // "theme.extend.colors.brand"
	Text     string   `json:"Text"`     // "invalid value: ';' would end the declaration"
	Severity string   `json:"Severity"` // "error" or "warning"
	Pos      IssuePos `json:"Pos"`
}

// IssuePos locates the file an issue came from. Line is 0 when unknown.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
}

// Issue severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue texts
const (
	IssueUnknownStrategy   = "unknown dark mode strategy %q"
	IssueSelectorRequired  = "strategy %q requires a selector"
	IssueSelectorForbidden = "strategy %q does not take a selector"
	IssueEmptyPattern      = "content pattern is empty"
	IssueInvalidPattern    = "invalid glob pattern %q"
	IssueDuplicatePattern  = "duplicate content pattern %q"
	IssueEscapingPattern   = "content pattern %q reaches outside the project"
	IssueNoContent         = "no content sources configured, no classes will be generated"
	IssueEmptyCategory     = "theme category name is empty"
	IssueUnknownCategory   = "unknown theme category %q"
	IssueRuleCategory      = "category %q holds CSS rules, not tokens"
	IssueEmptyToken        = "token name is empty"
	IssueInvalidValue      = "invalid value %q: %v"
	IssueEmptyPlugin       = "plugin module is empty"
	IssueDuplicatePlugin   = "plugin %q is listed more than once"
	IssueInvalidUTF8       = "%q is not valid UTF-8"
)

func (i Issue) String() string {
	var b strings.Builder
	if i.Pos.Filename != "" {
		b.WriteString(i.Pos.Filename)
		if i.Pos.Line > 0 {
			fmt.Fprintf(&b, ":%d", i.Pos.Line)
		}
		b.WriteString(": ")
	}
	if i.Field != "" {
		b.WriteString(i.Field)
		b.WriteString(": ")
	}
	b.WriteString(i.Text)
	return b.String()
}

// ValidationError carries the issues that made a record invalid.
// Warnings found alongside the errors are included.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	errs := e.Errors()
	switch len(errs) {
	case 0:
		return "invalid configuration"
	case 1:
		return "invalid configuration: " + errs[0].String()
	default:
		return fmt.Sprintf("invalid configuration: %s (and %d more)", errs[0].String(), len(errs)-1)
	}
}

// Errors returns only the error-severity issues.
func (e *ValidationError) Errors() []Issue {
	return filterSeverity(e.Issues, SeverityError)
}

// withFilename stamps filename on issues that do not have one yet.
func (e *ValidationError) withFilename(filename string) *ValidationError {
	out := &ValidationError{Issues: make([]Issue, len(e.Issues))}
	for i, issue := range e.Issues {
		if issue.Pos.Filename == "" {
			issue.Pos.Filename = filename
		}
		out.Issues[i] = issue
	}
	return out
}

func filterSeverity(issues []Issue, severity string) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return len(filterSeverity(issues, SeverityError)) > 0
}
