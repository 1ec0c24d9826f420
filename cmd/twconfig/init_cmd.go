package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default tailwind.config file",
		Long: `Create a tailwind.config file holding the default record: class-based dark
mode, content globs for pages/, components/ and app/, an empty colors
extension and no plugins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := twconfig.ParseFormat(getStringWithFallback("format", "init.format", string(twconfig.FormatTS)))
			if err != nil {
				return err
			}

			output := getStringWithFallback("output", "init.output", "")
			if output == "" {
				output = twconfig.FileName(format)
			}

			force := getBoolWithFallback("force", "init.force", false)
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			if err := twconfig.Save(output, twconfig.Default(), format); err != nil {
				return err
			}

			if !getBoolWithFallback("quiet", "quiet", false) {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("format", "", "Output format: ts|js|cjs|yaml|json (default: ts)")
	f.StringP("output", "o", "", "Output file (default: tailwind.config.<format>)")
	f.Bool("force", false, "Overwrite an existing file")
	return cmd
}
