// Package cmdutil provides shared command utilities: flag groups that several
// commands register the same way.
package cmdutil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/output"
)

// OutputFlags holds the --output flag of commands that print or write
// schemas (subpanels, export, logic, version).
type OutputFlags struct {
	Format string

	valid []string
}

// NewOutputFlags returns output flags accepting valid, defaulting to def.
func NewOutputFlags(def string, valid []string) *OutputFlags {
	return &OutputFlags{Format: def, valid: valid}
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", f.Format,
		"Output format: "+strings.Join(f.valid, ", "))
}

// Validate rejects formats outside the accepted set.
func (f *OutputFlags) Validate() error {
	if slices.Contains(f.valid, strings.ToLower(f.Format)) {
		return nil
	}
	return oerrors.Wrap(oerrors.ErrValidation,
		fmt.Sprintf("invalid output format %q (valid: %s)", f.Format, strings.Join(f.valid, ", ")))
}

// OutputFormat returns the parsed format.
func (f *OutputFlags) OutputFormat() output.OutputFormat {
	return output.ParseOutputFormat(f.Format)
}

// ModuleFlags holds the --all flag of commands that take a list of modules
// (export, vardefs import).
type ModuleFlags struct {
	All bool
}

// AddTo registers the module selection flag on the given cobra command.
func (f *ModuleFlags) AddTo(cmd *cobra.Command, usage string) {
	cmd.Flags().BoolVar(&f.All, "all", false, usage)
}

// Resolve returns the selected modules: every module listed by list when
// --all is set, else args. An empty selection, or a name that is not a plain
// file name, is a validation error.
func (f *ModuleFlags) Resolve(args []string, list func() ([]string, error)) ([]string, error) {
	modules := args
	if f.All {
		var err error
		if modules, err = list(); err != nil {
			return nil, err
		}
	}
	if len(modules) == 0 {
		return nil, oerrors.Wrap(oerrors.ErrValidation, "no modules selected (pass module names or --all)")
	}
	for _, m := range modules {
		if m == "" || m == "." || m == ".." || strings.ContainsAny(m, `/\`) {
			return nil, oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("invalid module name %q", m))
		}
	}
	return modules, nil
}
