package twconfig

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks a record against the build tool's schema rules.
// Issues are ordered by field: darkMode, content, theme, plugins.
func Validate(c *Config) []Issue {
	var issues []Issue
	issues = append(issues, validateDarkMode(c.darkMode)...)
	issues = append(issues, validateContent(c.content)...)
	issues = append(issues, validateTheme(c.extend)...)
	issues = append(issues, validatePlugins(c.plugins)...)
	return issues
}

func issueError(field, format string, args ...any) Issue {
	return Issue{Field: field, Text: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func issueWarning(field, format string, args ...any) Issue {
	return Issue{Field: field, Text: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

func validateDarkMode(d DarkMode) []Issue {
	const field = "darkMode"
	if _, err := ParseStrategy(string(d.Strategy)); err != nil {
		return []Issue{issueError(field, IssueUnknownStrategy, d.Strategy)}
	}
	switch {
	case d.Strategy == StrategyVariant && strings.TrimSpace(d.Selector) == "":
		return []Issue{issueError(field, IssueSelectorRequired, d.Strategy)}
	case d.Strategy == StrategyMedia && d.Selector != "":
		return []Issue{issueError(field, IssueSelectorForbidden, d.Strategy)}
	case !utf8.ValidString(d.Selector):
		return []Issue{issueError(field, IssueInvalidUTF8, d.Selector)}
	}
	return nil
}

func validateContent(content []string) []Issue {
	if len(content) == 0 {
		return []Issue{issueWarning("content", IssueNoContent)}
	}

	var issues []Issue
	seen := make(map[string]bool)
	for i, raw := range content {
		field := fmt.Sprintf("content[%d]", i)
		if !utf8.ValidString(raw) {
			issues = append(issues, issueError(field, IssueInvalidUTF8, raw))
			continue
		}
		p := parseContentPattern(raw)
		if p.glob == "" {
			issues = append(issues, issueError(field, IssueEmptyPattern))
			continue
		}
		if !doublestar.ValidatePattern(p.glob) {
			issues = append(issues, issueError(field, IssueInvalidPattern, raw))
			continue
		}
		key := p.glob
		if p.negated {
			key = "!" + key
		}
		if seen[key] {
			issues = append(issues, issueWarning(field, IssueDuplicatePattern, raw))
		}
		seen[key] = true
		if p.glob == ".." || strings.HasPrefix(p.glob, "../") {
			issues = append(issues, issueWarning(field, IssueEscapingPattern, raw))
		}
	}
	return issues
}

func validateTheme(extend ThemeExtensions) []Issue {
	var issues []Issue
	for _, category := range extend.Categories() {
		field := "theme.extend." + category
		if strings.TrimSpace(category) == "" {
			issues = append(issues, issueError("theme.extend", IssueEmptyCategory))
			continue
		}
		if !utf8.ValidString(category) {
			issues = append(issues, issueError("theme.extend", IssueInvalidUTF8, category))
			continue
		}
		if ruleCategories[category] {
			issues = append(issues, issueError(field, IssueRuleCategory, category))
			continue
		}
		if !IsKnownCategory(category) {
			issues = append(issues, issueWarning(field, IssueUnknownCategory, category))
		}

		tokens := extend[category]
		for _, name := range sortedKeys(tokens) {
			if strings.TrimSpace(name) == "" {
				issues = append(issues, issueError(field, IssueEmptyToken))
				continue
			}
			if !utf8.ValidString(name) {
				issues = append(issues, issueError(field, IssueInvalidUTF8, name))
				continue
			}
			value := tokens[name]
			if !utf8.ValidString(value) {
				issues = append(issues, issueError(field+"."+name, IssueInvalidUTF8, value))
				continue
			}
			if err := checkCSSValue(value); err != nil {
				issues = append(issues, issueError(field+"."+name, IssueInvalidValue, value, err))
			}
		}
	}
	return issues
}

func validatePlugins(plugins []Plugin) []Issue {
	var issues []Issue
	seen := make(map[string]bool)
	for i, p := range plugins {
		field := fmt.Sprintf("plugins[%d]", i)
		module := strings.TrimSpace(p.Module)
		if module == "" {
			issues = append(issues, issueError(field, IssueEmptyPlugin))
			continue
		}
		if !utf8.ValidString(p.Module) {
			issues = append(issues, issueError(field, IssueInvalidUTF8, p.Module))
			continue
		}
		for _, k := range sortedKeys(p.Options) {
			if !utf8.ValidString(k) {
				issues = append(issues, issueError(field+".options", IssueInvalidUTF8, k))
			} else if !utf8.ValidString(p.Options[k]) {
				issues = append(issues, issueError(field+".options."+k, IssueInvalidUTF8, p.Options[k]))
			}
		}
		if seen[module] {
			issues = append(issues, issueWarning(field, IssueDuplicatePlugin, module))
		}
		seen[module] = true
	}
	return issues
}
