package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/diff"
	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/output"
)

type diffOptions struct {
	exitCode bool
	noColor  bool
}

// NewDiffCmd creates the diff command.
func NewDiffCmd(g *GlobalConfig) *cobra.Command {
	opts := &diffOptions{}

	c := &cobra.Command{
		Use:   "diff <module> <snapshot>",
		Short: "Compare a stored schema snapshot with a fresh translation",
		Long: `Translate a module and compare the result, tab by tab, with a snapshot
written earlier by export. Field differences are shown per tab.

With --exit-code the command exits with status 1 when differences exist.`,
		Example: `  legacyui diff accounts snapshots/accounts.yaml
  legacyui diff accounts snapshots/accounts.json --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, g, args[0], args[1], opts)
		},
	}

	c.Flags().BoolVar(&opts.exitCode, "exit-code", false, "Exit with status 1 when differences exist")
	c.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return c
}

func runDiff(c *cobra.Command, g *GlobalConfig, module, snapshotPath string, opts *diffOptions) error {
	snapshot, err := os.ReadFile(snapshotPath)
	if err != nil {
		return oerrors.ReadFailure(err, "snapshot", snapshotPath, "write one with: legacyui export "+module)
	}

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	schema := a.translator.Translate(a.legacyModule(module))

	useColor := !opts.noColor && output.IsTTY()
	result, err := diff.Compare(snapshot, schema, diff.Options{UseColor: useColor})
	if err != nil {
		return oerrors.Validation(err.Error()).InFile(snapshotPath).InModule(a.legacyModule(module))
	}

	styles := output.NoColorStyles()
	if useColor {
		styles = output.GetStyles()
	}
	fmt.Fprintln(c.OutOrStdout(), result.Render(styles))

	if opts.exitCode && result.HasChanges() {
		return &oerrors.ExitError{
			Code:    oerrors.ExitGeneralError,
			Err:     fmt.Errorf("%s differs from %s", module, snapshotPath),
			Printed: true,
		}
	}
	return nil
}
