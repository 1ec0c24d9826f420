package twconfig

import (
	"slices"
)

// Config is the configuration record consumed by the build tool.
// It is immutable: accessors return copies.
type Config struct {
	darkMode DarkMode
	content  []string
	extend   ThemeExtensions
	plugins  []Plugin
	warnings []Issue
}

// New builds a record and validates it. Nil collections become empty ones,
// so every field is present. Error-severity issues yield a *ValidationError.
func New(darkMode DarkMode, content []string, extend ThemeExtensions, plugins []Plugin) (*Config, error) {
	c := &Config{
		darkMode: darkMode,
		content:  slices.Clone(content),
		extend:   extend.Clone(),
		plugins:  make([]Plugin, len(plugins)),
	}
	if c.content == nil {
		c.content = []string{}
	}
	for i, p := range plugins {
		c.plugins[i] = p.clone()
	}

	issues := Validate(c)
	if HasErrors(issues) {
		return nil, &ValidationError{Issues: issues}
	}
	c.warnings = issues
	return c, nil
}

// DefaultContent is the content list written by Default.
var DefaultContent = []string{
	"./pages/**/*.{js,ts,jsx,tsx,mdx}",
	"./components/**/*.{js,ts,jsx,tsx,mdx}",
	"./app/**/*.{js,ts,jsx,tsx,mdx}",
}

// Default returns the starter configuration: class-based dark mode, the
// pages/components/app source trees, an empty colors extension and no plugins.
func Default() *Config {
	c, err := New(
		DarkMode{Strategy: StrategyClass},
		DefaultContent,
		ThemeExtensions{"colors": {}},
		nil,
	)
	if err != nil {
		panic(err)
	}
	return c
}

// DarkMode returns the dark-mode setting.
func (c *Config) DarkMode() DarkMode { return c.darkMode }

// Content returns the content source globs in configured order.
func (c *Config) Content() []string { return slices.Clone(c.content) }

// Extend returns a copy of the theme extensions.
func (c *Config) Extend() ThemeExtensions { return c.extend.Clone() }

// Plugins returns a copy of the plugin list.
func (c *Config) Plugins() []Plugin {
	out := make([]Plugin, len(c.plugins))
	for i, p := range c.plugins {
		out[i] = p.clone()
	}
	return out
}

// Warnings returns the warning-severity issues found at construction.
func (c *Config) Warnings() []Issue { return slices.Clone(c.warnings) }

// Equal reports whether both records hold the same values.
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.darkMode == o.darkMode &&
		slices.Equal(c.content, o.content) &&
		c.extend.equal(o.extend) &&
		slices.EqualFunc(c.plugins, o.plugins, Plugin.equal)
}
