// Package report prints validation issues and content coverage for the CLI.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yacobolo/twconfig"
)

// Reporter writes human-readable results in golangci-lint style.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. Colors are used when forced or when stdout
// looks like a terminal.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColors)}
}

// ShouldUseColors decides whether output gets ANSI styling.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// SortIssues orders issues by file, line, then field. The input is not modified.
func SortIssues(issues []twconfig.Issue) []twconfig.Issue {
	sorted := make([]twconfig.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		return a.Field < b.Field
	})
	return sorted
}

// PrintIssues writes one line per issue:
//
//	tailwind.config.ts: theme.extend.colors.brand: invalid value ";" ... (error)
func (r *Reporter) PrintIssues(issues []twconfig.Issue) {
	for _, issue := range SortIssues(issues) {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue twconfig.Issue) {
	location := ""
	if issue.Pos.Filename != "" {
		location = issue.Pos.Filename
		if issue.Pos.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, issue.Pos.Line)
		}
		location += ":"
	}

	field := ""
	if issue.Field != "" {
		field = issue.Field + ": "
	}

	style := StyleYellow
	if issue.Severity == twconfig.SeverityError {
		style = StyleRed
	}

	if location != "" {
		fmt.Fprintf(r.w, "%s ", RenderStyle(StyleCyan, location, r.useColors))
	}
	fmt.Fprintf(r.w, "%s%s %s\n",
		field,
		issue.Text,
		RenderStyle(style, "("+issue.Severity+")", r.useColors))
}

// PrintSummary writes the issue counts after the issue list.
func (r *Reporter) PrintSummary(issues []twconfig.Issue) {
	errs, warnings := CountSeverities(issues)
	total := len(issues)

	if total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "0 issues.", r.useColors))
		return
	}

	fmt.Fprintln(r.w, "")
	if errs > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s)\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(errs, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s\n", pluralizeCount(total, "issue", "issues"))
	}
}

// PrintMatches writes one line per path and a coverage summary.
func (r *Reporter) PrintMatches(results []twconfig.MatchResult) {
	matched := 0
	for _, res := range results {
		if res.Matched {
			matched++
			fmt.Fprintf(r.w, "%s %s %s\n",
				RenderStyle(StyleGreen, "✓", r.useColors),
				res.Path,
				RenderStyle(StyleGray, "("+res.Pattern+")", r.useColors))
			continue
		}

		reason := "no pattern"
		if res.ExcludedBy != "" {
			reason = "excluded by " + res.ExcludedBy
		}
		fmt.Fprintf(r.w, "%s %s %s\n",
			RenderStyle(StyleRed, "✗", r.useColors),
			res.Path,
			RenderStyle(StyleGray, "("+reason+")", r.useColors))
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%d of %s covered\n", matched, pluralizeCount(len(results), "path", "paths"))
}

// CountSeverities returns the number of errors and warnings.
func CountSeverities(issues []twconfig.Issue) (errs, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case twconfig.SeverityError:
			errs++
		case twconfig.SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
