package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig"
	"github.com/yacobolo/twconfig/internal/log"
	"github.com/yacobolo/twconfig/internal/report"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [path]",
		Aliases: []string{"check"},
		Short:   "Check a tailwind.config file for schema problems",
		Long: `Load a tailwind.config file and report every schema problem the build tool
would reject at load time, plus warnings for suspicious but legal settings.

Exits 1 when there are errors, or any issue at all with --strict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(args)
			if err != nil {
				return err
			}
			settings := buildValidateSettings()
			quiet := getBoolWithFallback("quiet", "quiet", false)

			format, err := report.DetermineOutputFormat(settings.OutputFormat, quiet)
			if err != nil {
				return err
			}

			issues, err := loadIssues(path)
			if err != nil {
				return err
			}

			logger := log.WithComponent("validate")
			logger.Debug().
				Str("path", path).
				Int("issues", len(issues)).
				Msg("config checked")

			if !quiet {
				forceColors := getBoolWithFallback("color", "color", false)
				if err := report.WriteValidation(cmd.OutOrStdout(), path, issues, format, forceColors); err != nil {
					return err
				}
			}

			// Soft gate: only errors fail unless strict
			if twconfig.HasErrors(issues) || (settings.Strict && len(issues) > 0) {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue, warnings included")
	f.String("output-format", "", "Output format: text|json (default: text)")
	return cmd
}

// loadIssues loads path and returns its issues stamped with the file name.
// Errors other than schema problems are returned as err.
func loadIssues(path string) ([]twconfig.Issue, error) {
	c, err := twconfig.Load(path)
	if err != nil {
		var verr *twconfig.ValidationError
		if errors.As(err, &verr) {
			return verr.Issues, nil
		}
		return nil, err
	}

	issues := c.Warnings()
	for i := range issues {
		if issues[i].Pos.Filename == "" {
			issues[i].Pos.Filename = path
		}
	}
	return issues, nil
}
