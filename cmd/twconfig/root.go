package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig/internal/log"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "twconfig",
		Short: "Create, check and convert tailwind.config files",
		Long: `twconfig reads and writes the tailwind.config record (darkMode, content,
theme.extend, plugins) as YAML, JSON, TypeScript or JavaScript, checks it the
way the build tool would at load time, and tells which files the content
globs cover.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			setupLogging(cmd)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags (inherited by all subcommands)
	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".twconfig.yaml", "Settings file path")

	root.AddCommand(newInitCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newMatchCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newCompletionCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setupLogging sends diagnostics to stderr; results go to stdout.
func setupLogging(cmd *cobra.Command) {
	level := getStringWithFallback("log-level", "log.level", "")
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	if level == "" {
		level = "warn"
	}
	log.Configure(log.Config{
		Level:   level,
		Output:  cmd.ErrOrStderr(),
		Console: true,
	})
}
