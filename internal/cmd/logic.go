package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/legacyui/internal/cmdutil"
	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/fieldlogic"
	"github.com/opmodel/legacyui/internal/output"
)

// logicDocument is the input of the logic command.
type logicDocument struct {
	Field  *fieldlogic.Field  `yaml:"field"`
	Record *fieldlogic.Record `yaml:"record"`
}

// NewLogicCmd creates the logic command.
func NewLogicCmd(_ *GlobalConfig) *cobra.Command {
	outFlags := cmdutil.NewOutputFlags("yaml", output.ValidExportFormats())

	c := &cobra.Command{
		Use:   "logic <mode> <file>",
		Short: "Run the logic of a field for a view mode",
		Long: `Load a {field, record} YAML document, run the field's logic for the given
view mode and print the resulting field.

Known view modes: ` + strings.Join(modeNames(), ", ") + `.`,
		Example: `  legacyui logic detail field.yaml
  legacyui logic edit field.yaml -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runLogic(c, fieldlogic.ViewMode(strings.ToLower(args[0])), args[1], outFlags)
		},
	}

	outFlags.AddTo(c)

	return c
}

func runLogic(c *cobra.Command, mode fieldlogic.ViewMode, path string, outFlags *cmdutil.OutputFlags) error {
	if err := outFlags.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return oerrors.ReadFailure(err, "logic document", path, "")
	}

	var doc logicDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oerrors.Validation(err.Error()).InFile(path).WithHint("check the YAML syntax")
	}
	if doc.Field == nil || doc.Field.Name == "" {
		return oerrors.Validation("field.name is required").InFile(path).AtField("field.name")
	}
	if !mode.Known() {
		output.Warn("unknown view mode, only async actions apply", "mode", mode)
	}

	dispatcher, drain := newDispatcher()
	invoked := dispatcher.RunLogic(c.Context(), doc.Field, mode, doc.Record)
	drain()

	output.Info("logic ran", "field", doc.Field.Name, "mode", mode, "invoked", strings.Join(invoked, ","))
	return output.Encode(c.OutOrStdout(), doc.Field, outFlags.OutputFormat())
}

func modeNames() []string {
	modes := fieldlogic.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}
