// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/config"
	"github.com/opmodel/legacyui/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	Config     *config.Config
	ConfigPath string
	Verbose    bool

	flags      config.Flags
	timestamps bool
}

// NewRootCmd creates the root command for the legacyui CLI.
func NewRootCmd() *cobra.Command {
	g := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "legacyui",
		Short: "Legacy subpanel metadata translator",
		Long: `legacyui translates legacy subpanel metadata into the normalized subpanel
schema consumed by the UI, and runs field logic for a view mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.flags.Config, "config", "", "Path to config file (env: LEGACYUI_CONFIG)")
	flags.StringVar(&g.flags.MetadataDir, "metadata-dir", "", "Legacy metadata directory (env: LEGACYUI_METADATA_DIR)")
	flags.StringVar(&g.flags.FieldDefinitions, "field-definitions", "", "Field definition source: files or sqlite (env: LEGACYUI_FIELD_DEFINITIONS_SOURCE)")
	flags.StringVar(&g.flags.StorePath, "store-path", "", "SQLite field definition store (env: LEGACYUI_STORE_PATH)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&g.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewSubpanelsCmd(g),
		NewExportCmd(g),
		NewDiffCmd(g),
		NewLogicCmd(g),
		NewVardefsCmd(g),
		NewServeCmd(g),
		NewConfigCmd(g),
		NewVersionCmd(g),
	)

	return rootCmd
}

// initialize resolves configuration and sets up logging.
func (g *GlobalConfig) initialize(cmd *cobra.Command) error {
	if cmd.Flags().Lookup("addr") != nil {
		g.flags.ServerAddr = cmd.Flags().Lookup("addr").Value.String()
	}

	resolved, err := config.ResolveAll(g.flags)
	if err != nil {
		return err
	}
	g.Config = resolved.Config
	g.ConfigPath = resolved.ConfigPath

	// timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: g.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(g.timestamps)
	} else if g.Config.Log.Timestamps != nil {
		logCfg.Timestamps = g.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if g.Verbose {
		config.LogResolvedValues(resolved.Values)
	}
	return nil
}
