package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	oerrors "github.com/opmodel/legacyui/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Kind names the schema definition a metadata file is checked against.
type Kind string

// Metadata file kinds.
const (
	KindModules Kind = "#Modules"
	KindLayout  Kind = "#Layout"
	KindPanel   Kind = "#Panel"
	KindVardefs Kind = "#Vardefs"
)

// Validator checks metadata files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling metadata schema: %w", schema.Err())
	}
	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks the YAML document data, read from path, against kind.
// Failures are validation DetailErrors.
func (v *Validator) Validate(kind Kind, path string, data []byte) error {
	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return oerrors.Validation(err.Error()).InFile(path).WithHint("check the YAML syntax")
	}
	if parsed == nil {
		parsed = map[string]any{}
	}

	jsonData, err := json.Marshal(normalizeYAML(parsed))
	if err != nil {
		return fmt.Errorf("converting %s to JSON: %w", path, err)
	}

	value := v.ctx.CompileBytes(jsonData, cue.Filename(path))
	if value.Err() != nil {
		return oerrors.Validation(value.Err().Error()).InFile(path)
	}

	def := v.schema.LookupPath(cue.ParsePath(string(kind)))
	if def.Err() != nil {
		return fmt.Errorf("schema definition %s: %w", kind, def.Err())
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		field, msg := describe(err)
		derr := oerrors.Validation(msg).InFile(path).AtField(strings.Join(field, ".")).
			WithHint(fmt.Sprintf("the file must match %s in the metadata schema", strings.TrimPrefix(string(kind), "#")))
		if kind == KindLayout && len(field) > 1 && field[0] == "subpanel_setup" {
			derr.InTab(field[1])
		}
		return derr
	}
	return nil
}

// describe returns the path and message of the first CUE error.
func describe(err error) ([]string, string) {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return nil, err.Error()
	}
	first := errs[0]
	format, args := first.Msg()
	return first.Path(), fmt.Sprintf(format, args...)
}

// normalizeYAML converts YAML-specific types to JSON-compatible types.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = normalizeYAML(v)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[fmt.Sprintf("%v", k)] = normalizeYAML(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = normalizeYAML(v)
		}
		return result
	default:
		return v
	}
}
