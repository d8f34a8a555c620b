package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/cmdutil"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/subpanel"
)

// NewSubpanelsCmd creates the subpanels command.
func NewSubpanelsCmd(g *GlobalConfig) *cobra.Command {
	outFlags := cmdutil.NewOutputFlags("yaml", output.ValidFormats())

	c := &cobra.Command{
		Use:   "subpanels <module>",
		Short: "Translate the subpanels of a module",
		Long: `Translate the legacy subpanel metadata of a module and print the schema.

The module may be given by its frontend or legacy name. An unknown module
prints an empty schema.`,
		Example: `  legacyui subpanels accounts
  legacyui subpanels Accounts -o table`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSubpanels(c, g, args[0], outFlags)
		},
	}

	outFlags.AddTo(c)

	return c
}

func runSubpanels(c *cobra.Command, g *GlobalConfig, module string, outFlags *cmdutil.OutputFlags) error {
	if err := outFlags.Validate(); err != nil {
		return err
	}

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	schema := a.translator.Translate(a.legacyModule(module))
	return writeSchema(c.OutOrStdout(), schema, outFlags.OutputFormat())
}

// writeSchema writes schema in format. The table format prints one summary
// row per tab.
func writeSchema(w io.Writer, schema *subpanel.Schema, format output.OutputFormat) error {
	if format == output.FormatTable {
		if schema.Len() == 0 {
			_, err := fmt.Fprintf(w, "No subpanels for %s\n", schema.Module)
			return err
		}
		_, err := fmt.Fprintln(w, output.RenderTabTable(summarize(schema)))
		return err
	}
	return output.Encode(w, schema, format)
}

func summarize(schema *subpanel.Schema) []output.TabSummary {
	tabs := schema.Tabs()
	rows := make([]output.TabSummary, len(tabs))
	for i, t := range tabs {
		rows[i] = output.TabSummary{
			Name:         t.Name,
			Module:       t.Module,
			HeaderModule: t.HeaderModule,
			Columns:      len(t.Columns),
			Buttons:      len(t.TopButtons),
			LineActions:  len(t.LineActions),
			Insight:      t.InsightWidget.Type,
		}
	}
	return rows
}

