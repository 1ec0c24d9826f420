package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [path]",
		Short: "Rewrite a tailwind.config file in another format",
		Long: `Load a tailwind.config file and write the same record as YAML, JSON,
TypeScript, ES module or CommonJS. Without --output the result goes to stdout.`,
		Example: `  twconfig convert tailwind.config.ts --to yaml
  twconfig convert tailwind.config.json -o tailwind.config.ts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(args)
			if err != nil {
				return err
			}

			output := getStringWithFallback("output", "convert.output", "")
			format, err := convertFormat(getStringWithFallback("to", "convert.to", ""), output)
			if err != nil {
				return err
			}

			c, err := twconfig.Load(path)
			if err != nil {
				return err
			}

			if output != "" {
				if err := twconfig.Save(output, c, format); err != nil {
					return err
				}
				if !getBoolWithFallback("quiet", "quiet", false) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
				}
				return nil
			}

			data, err := twconfig.Marshal(c, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	f := cmd.Flags()
	f.String("to", "", "Target format: ts|js|cjs|yaml|json (default: from --output)")
	f.StringP("output", "o", "", "Output file (default: stdout)")
	return cmd
}

// convertFormat resolves the target format from --to, falling back to the
// output file extension.
func convertFormat(to, output string) (twconfig.Format, error) {
	if to != "" {
		return twconfig.ParseFormat(to)
	}
	if output != "" {
		return twconfig.FormatFromPath(output)
	}
	return "", errors.New("target format required (use --to or --output)")
}
