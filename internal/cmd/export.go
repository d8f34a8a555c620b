package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opmodel/legacyui/internal/cmdutil"
	"github.com/opmodel/legacyui/internal/output"
)

// exportConcurrency bounds concurrent module translations.
const exportConcurrency = 8

type exportOptions struct {
	dir     string
	output  *cmdutil.OutputFlags
	modules cmdutil.ModuleFlags
}

// NewExportCmd creates the export command.
func NewExportCmd(g *GlobalConfig) *cobra.Command {
	opts := &exportOptions{output: cmdutil.NewOutputFlags("yaml", output.ValidExportFormats())}

	c := &cobra.Command{
		Use:   "export [module...]",
		Short: "Write translated subpanel schemas to files",
		Long: `Translate several modules concurrently and write one file per module,
named <module>.yaml or <module>.json, into --dir.

With --all every module that declares a layout is exported.`,
		Example: `  legacyui export accounts contacts --dir snapshots
  legacyui export --all -o json`,
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c, g, args, opts)
		},
	}

	c.Flags().StringVar(&opts.dir, "dir", ".", "Output directory")
	opts.output.AddTo(c)
	opts.modules.AddTo(c, "Export every module with a layout")

	return c
}

func runExport(c *cobra.Command, g *GlobalConfig, args []string, opts *exportOptions) error {
	if err := opts.output.Validate(); err != nil {
		return err
	}
	format := opts.output.OutputFormat()

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	modules, err := opts.modules.Resolve(args, a.metadata.LayoutModules)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, len(modules))
	export := func(ctx context.Context) error {
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(exportConcurrency)

		for i, module := range modules {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				schema := a.translator.Translate(a.legacyModule(module))

				var buf bytes.Buffer
				if err := output.Encode(&buf, schema, format); err != nil {
					return fmt.Errorf("encoding %s: %w", module, err)
				}

				path := filepath.Join(opts.dir, module+format.Ext())
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				output.Debug("exported", "module", module, "tabs", schema.Len(), "path", path)
				written[i] = path
				return nil
			})
		}
		return eg.Wait()
	}

	title := fmt.Sprintf("Exporting %d module(s)...", len(modules))
	if err := output.RunWithSpinner(c.Context(), export, output.WithTitle(title)); err != nil {
		return err
	}

	out := c.OutOrStdout()
	for _, path := range written {
		fmt.Fprintf(out, "%s %s\n", output.FormatCheckmark("exported"), output.StyleNoun.Render(path))
	}
	return nil
}
