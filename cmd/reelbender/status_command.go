package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eerla/pybenders-sub000/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check environment readiness for rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			if strings.TrimSpace(cfg.Paths.AudioDir) == "" {
				fmt.Fprintln(out, renderStatusLine("Audio pool", statusInfo, "not configured; reels render with silence", colorize))
			}

			failures := 0
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failures++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			if failures > 0 {
				return fmt.Errorf("%d readiness checks failed", failures)
			}
			fmt.Fprintln(out, "Ready to render")
			return nil
		},
	}
}
