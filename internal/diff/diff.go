// Package diff compares a stored subpanel schema snapshot with a fresh
// translation, tab by tab, using dyff for YAML-aware field diffs.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/subpanel"
)

// Result is the outcome of a schema comparison.
type Result struct {
	// Added tabs exist in the translation but not in the snapshot.
	Added []string

	// Removed tabs exist in the snapshot but not in the translation.
	Removed []string

	// Modified tabs differ between snapshot and translation.
	Modified []output.ModifiedItem
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{
		Added:    make([]string, 0),
		Removed:  make([]string, 0),
		Modified: make([]output.ModifiedItem, 0),
	}
}

// HasChanges reports whether any tab differs.
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Modified) > 0
}

// Render renders the result with styles.
func (r *Result) Render(styles *output.Styles) string {
	return output.RenderDiff(r.Added, r.Removed, r.Modified, styles)
}

// Options configures a comparison.
type Options struct {
	// UseColor enables colorized field diffs.
	UseColor bool
}

// Compare compares a snapshot (YAML or JSON, keyed by tab) with schema.
// Tabs are reported in snapshot order, then translation order.
func Compare(snapshot []byte, schema *subpanel.Schema, opts Options) (*Result, error) {
	stored, order, err := parseSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	current := make(map[string]bool, schema.Len())
	for _, key := range schema.Keys() {
		current[key] = true
	}

	for _, key := range order {
		if !current[key] {
			result.Removed = append(result.Removed, key)
			continue
		}

		tab, _ := schema.Get(key)
		fresh, err := yaml.Marshal(tab)
		if err != nil {
			return nil, fmt.Errorf("serializing tab %s: %w", key, err)
		}

		rendered, err := diffYAML(stored[key], fresh, opts.UseColor)
		if err != nil {
			return nil, fmt.Errorf("comparing tab %s: %w", key, err)
		}
		if rendered != "" {
			result.Modified = append(result.Modified, output.ModifiedItem{Name: key, Diff: rendered})
		}
	}

	for _, key := range schema.Keys() {
		if _, ok := stored[key]; !ok {
			result.Added = append(result.Added, key)
		}
	}

	return result, nil
}

// parseSnapshot splits a snapshot into canonical per-tab YAML documents.
// Both sides are serialized through sigs.k8s.io/yaml so key order and
// scalar formatting cannot produce spurious diffs.
func parseSnapshot(data []byte) (map[string][]byte, []string, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	tabs := make(map[string][]byte)
	var order []string
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return tabs, order, nil
	}

	root := doc.Content[0]
	if root.Tag == "!!null" {
		return tabs, order, nil
	}
	if root.Kind != yamlv3.MappingNode {
		return nil, nil, fmt.Errorf("parsing snapshot: line %d: expected a mapping of tabs", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value

		var value any
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("parsing snapshot tab %s: %w", key, err)
		}
		canonical, err := yaml.Marshal(value)
		if err != nil {
			return nil, nil, fmt.Errorf("serializing snapshot tab %s: %w", key, err)
		}

		if _, seen := tabs[key]; !seen {
			order = append(order, key)
		}
		tabs[key] = canonical
	}
	return tabs, order, nil
}

// diffYAML computes a YAML diff using dyff. It returns "" when both sides
// are equal.
func diffYAML(from, to []byte, useColor bool) (string, error) {
	if bytes.Equal(from, to) {
		return "", nil
	}

	fromInput, err := parseYAMLInput("snapshot", from)
	if err != nil {
		return "", fmt.Errorf("parsing snapshot YAML: %w", err)
	}
	toInput, err := parseYAMLInput("translation", to)
	if err != nil {
		return "", fmt.Errorf("parsing translated YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
