package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dupes/internal/app"
	"go.trai.ch/dupes/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Analyze a lock file for duplicate dependency versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lockfilePath, _ := cmd.Flags().GetString("lockfile")
			offline, _ := cmd.Flags().GetBool("offline")
			outputFormat, _ := cmd.Flags().GetString("output")
			color, _ := cmd.Flags().GetString("color")
			verbose, _ := cmd.Flags().GetBool("verbose")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			return c.app.Check(cmd.Context(), app.CheckOptions{
				LockfilePath: lockfilePath,
				Offline:      offline,
				Output:       outputFormat,
				Color:        color,
				Verbose:      verbose,
				Timeout:      timeout,
				Concurrency:  concurrency,
			})
		},
	}
	cmd.Flags().StringP("lockfile", "f", domain.LockfileName, "Path to the lock file")
	cmd.Flags().Bool("offline", false, "Skip registry lookups; compare against the highest local version")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	cmd.Flags().String("color", "auto", "Colorize output: auto, always, or never")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().Duration("timeout", 0, "Per-lookup registry timeout (0 uses the configured default)")
	cmd.Flags().Int("concurrency", 0, "Maximum registry lookups in flight (0 uses the configured default)")
	return cmd
}
