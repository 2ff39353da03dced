package project

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads a project description from a YAML file, validates it
// against the embedded CUE schema, and decodes it. Schema violations
// are returned one per line so a designer can fix them in one pass.
func Load(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates and decodes project YAML.
func Parse(raw []byte) (*Project, error) {
	// Decode generically first: the CUE schema reports missing and
	// mistyped fields far better than Go struct decoding would.
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if generic == nil {
		return nil, fmt.Errorf("parse project: file is empty")
	}

	if errs := validateSchema(generic); len(errs) > 0 {
		return nil, &SchemaError{Errors: errs}
	}

	var p Project
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return &p, nil
}

// SchemaError carries all schema violations of one file.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return "schema: " + e.Errors[0]
	}
	return fmt.Sprintf("schema: %d violations, first: %s", len(e.Errors), e.Errors[0])
}

// validateSchema unifies the decoded document with the #Project
// definition and returns every violation.
func validateSchema(doc map[string]any) []string {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a bug.
		return []string{fmt.Sprintf("internal: schema does not compile: %v", err)}
	}

	def := schema.LookupPath(cue.ParsePath("#Project"))
	if !def.Exists() {
		return []string{"internal: schema has no #Project definition"}
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return []string{fmt.Sprintf("encode: %v", err)}
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var out []string
		for _, e := range cueerrors.Errors(err) {
			out = append(out, e.Error())
		}
		return out
	}
	return nil
}
