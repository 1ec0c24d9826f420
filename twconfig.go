// Package twconfig models the configuration record of a utility-class CSS
// build tool (tailwind.config.*): the dark-mode strategy, the content globs
// that say which files get scanned for class names, theme extensions and
// plugins.
//
// The package builds, validates and serializes the record. It does not scan
// files or generate CSS; that is the build tool's job.
//
// # Building
//
//	c, err := twconfig.New(
//		twconfig.DarkMode{Strategy: twconfig.StrategyClass},
//		[]string{"./pages/**/*.{js,ts,jsx,tsx,mdx}"},
//		twconfig.ThemeExtensions{"colors": {"brand": "#0ea5e9"}},
//		nil,
//	)
//
// # Loading and saving
//
// YAML, JSON, TypeScript and JavaScript (ESM or CommonJS) are supported.
// JS/TS files are read statically, without running them:
//
//	path, err := twconfig.Discover(".")
//	c, err := twconfig.Load(path)
//	err = twconfig.Save("tailwind.config.json", c, "")
//
// # Content matching
//
//	m, err := c.Matcher(twconfig.WithBaseDir("."))
//	m.Match("./pages/index.tsx") // true
//
// See cmd/twconfig for the CLI.
package twconfig
