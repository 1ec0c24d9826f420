package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twconfig"
	"github.com/yacobolo/twconfig/internal/log"
	"github.com/yacobolo/twconfig/internal/report"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-validate a tailwind.config file whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			r := report.NewReporter(w, getBoolWithFallback("color", "color", false))
			debounce := getDurationWithFallback("debounce", "watch.debounce", twconfig.DefaultDebounce)

			return twconfig.Watch(ctx, path, func(c *twconfig.Config, err error) {
				if err != nil {
					var verr *twconfig.ValidationError
					if !errors.As(err, &verr) {
						fmt.Fprintf(w, "%s\n", report.RenderStyle(report.StyleRed, err.Error(), r.UseColors()))
						return
					}
					r.PrintIssues(verr.Issues)
					r.PrintSummary(verr.Issues)
					return
				}

				issues := c.Warnings()
				for i := range issues {
					issues[i].Pos.Filename = path
				}
				r.PrintIssues(issues)
				r.PrintSummary(issues)
			},
				twconfig.WithDebounce(debounce),
				twconfig.WithLogger(log.WithComponent("watch")),
			)
		},
	}

	cmd.Flags().Duration("debounce", twconfig.DefaultDebounce, "Quiet period after a change before reloading")
	return cmd
}
