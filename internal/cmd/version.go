package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/cmdutil"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	outFlags := cmdutil.NewOutputFlags("", output.ValidExportFormats())

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show legacyui version information.

Displays:
  - legacyui version, commit, and build date
  - CUE SDK version used for metadata validation`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			if outFlags.Format != "" {
				if err := outFlags.Validate(); err != nil {
					return err
				}
				return output.Encode(c.OutOrStdout(), info, outFlags.OutputFormat())
			}
			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}

	outFlags.AddTo(c)

	return c
}
