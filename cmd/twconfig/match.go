package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig"
	"github.com/yacobolo/twconfig/internal/log"
	"github.com/yacobolo/twconfig/internal/report"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [paths...]",
		Short: "Tell which paths the content globs cover",
		Long: `Check file paths against the content globs of a tailwind.config file.
Paths come from the arguments, or one per line on stdin with --stdin.
Relative paths are taken from the working directory; the globs are relative
to --base, which defaults to the directory of the config file.
Nothing is read from the file system apart from the config and .gitignore.`,
		Example: `  twconfig match pages/index.tsx lib/util.ts
  git ls-files | twconfig match --stdin --gitignore --fail-unmatched`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(nil)
			if err != nil {
				return err
			}
			settings := buildMatchSettings(configPath)
			quiet := getBoolWithFallback("quiet", "quiet", false)

			format, err := report.DetermineOutputFormat(settings.OutputFormat, quiet)
			if err != nil {
				return err
			}

			paths := args
			if getBoolWithFallback("stdin", "match.stdin", false) {
				read, err := readPaths(cmd)
				if err != nil {
					return err
				}
				paths = append(paths, read...)
			}
			if len(paths) == 0 {
				return errors.New("no paths given (pass paths as arguments or use --stdin)")
			}

			c, err := twconfig.Load(configPath)
			if err != nil {
				return err
			}

			opts := []twconfig.MatcherOption{twconfig.WithBaseDir(settings.Base)}
			if settings.GitIgnore {
				gi, err := compileGitIgnore(settings.Base)
				if err != nil {
					return err
				}
				if gi != nil {
					opts = append(opts, twconfig.WithGitIgnore(gi))
				}
			}

			m, err := c.Matcher(opts...)
			if err != nil {
				return err
			}

			results := make([]twconfig.MatchResult, 0, len(paths))
			unmatched := 0
			for _, p := range paths {
				res := m.MatchDetail(p)
				if !res.Matched {
					unmatched++
				}
				results = append(results, res)
			}

			logger := log.WithComponent("match")
			logger.Debug().
				Str("config", configPath).
				Int("paths", len(paths)).
				Int("unmatched", unmatched).
				Msg("paths matched")

			if !quiet {
				forceColors := getBoolWithFallback("color", "color", false)
				if err := report.WriteMatches(cmd.OutOrStdout(), results, format, forceColors); err != nil {
					return err
				}
			}

			if settings.FailUnmatched && unmatched > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("file", "f", "", "Config file (default: discovered in the working directory)")
	f.Bool("stdin", false, "Read paths from stdin, one per line")
	f.Bool("gitignore", false, "Treat paths ignored by <base>/.gitignore as not covered")
	f.Bool("fail-unmatched", false, "Exit 1 when any path is not covered")
	f.String("base", "", "Directory the globs are relative to (default: the config file's directory)")
	f.String("output-format", "", "Output format: text|json (default: text)")
	return cmd
}

func readPaths(cmd *cobra.Command) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return paths, nil
}

// compileGitIgnore returns nil when base has no .gitignore.
func compileGitIgnore(base string) (*ignore.GitIgnore, error) {
	path := filepath.Join(base, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return gi, nil
}
