package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/cmdutil"
)

// NewVardefsCmd creates the vardefs command group.
func NewVardefsCmd(g *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "vardefs",
		Short: "Manage the SQLite field definition store",
		Long: `Manage the SQLite field definition store used when
fieldDefinitions.source is sqlite.`,
	}

	c.AddCommand(newVardefsImportCmd(g))
	c.AddCommand(newVardefsListCmd(g))

	return c
}

func newVardefsImportCmd(g *GlobalConfig) *cobra.Command {
	var selection cmdutil.ModuleFlags

	c := &cobra.Command{
		Use:   "import [module...]",
		Short: "Copy vardefs from the metadata directory into the store",
		Long: `Copy the field definitions of legacy modules from the metadata directory
into the SQLite store. Existing definitions are replaced.`,
		Example: `  legacyui vardefs import Contacts Meetings
  legacyui vardefs import --all`,
		RunE: func(c *cobra.Command, args []string) error {
			return runVardefsImport(c, g, args, &selection)
		},
	}

	selection.AddTo(c, "Import every module with vardefs")

	return c
}

func runVardefsImport(c *cobra.Command, g *GlobalConfig, args []string, selection *cmdutil.ModuleFlags) error {
	md, err := openMetadata(g)
	if err != nil {
		return err
	}

	modules, err := selection.Resolve(args, md.VardefsModules)
	if err != nil {
		return err
	}

	fields, err := openFieldStore(g, md.Modules())
	if err != nil {
		return err
	}
	defer fields.Close()

	out := c.OutOrStdout()
	for _, module := range modules {
		legacyName := md.Modules().ToLegacy(module)
		defs, err := md.LoadVardefs(legacyName)
		if err != nil {
			return err
		}
		n, err := fields.Import(c.Context(), legacyName, defs)
		if err != nil {
			return fmt.Errorf("importing %s: %w", legacyName, err)
		}
		fmt.Fprintf(out, "imported %d field definition(s) for %s\n", n, legacyName)
	}
	return nil
}

func newVardefsListCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List modules held in the store",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fields, err := openFieldStore(g, nil)
			if err != nil {
				return err
			}
			defer fields.Close()

			modules, err := fields.Modules(c.Context())
			if err != nil {
				return err
			}
			for _, m := range modules {
				fmt.Fprintln(c.OutOrStdout(), m)
			}
			return nil
		},
	}
}
