package source

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// numericField allows a non-negative number or an explicit null.
var numericField = map[string]any{
	"type":    []string{"number", "null"},
	"minimum": 0,
}

// documentSchema describes a well-formed benchmarking results document.
// Every record property is optional so that the lenient loader and the
// validator agree on what parses; the validator only flags quality issues.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []string{ResultsKey},
	"properties": map[string]any{
		ResultsKey: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"request_id":            map[string]any{"type": "string"},
					"prompt_text":           map[string]any{"type": "string"},
					"generated_text":        map[string]any{"type": "string"},
					"token_count":           numericField,
					"time_to_first_token":   numericField,
					"time_per_output_token": numericField,
					"total_generation_time": numericField,
					"timestamp":             map[string]any{"type": "string", "minLength": 10},
				},
			},
		},
	},
}

// Issue is one schema violation.
type Issue struct {
	Field       string
	Description string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// ValidationReport is the outcome of Validate.
type ValidationReport struct {
	Valid  bool
	Issues []Issue
}

// Validate checks a raw document against the results schema. The returned
// error is reserved for failures of the validation process itself, such as
// input that is not JSON at all.
func Validate(data []byte) (ValidationReport, error) {
	schemaLoader := gojsonschema.NewGoLoader(documentSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return ValidationReport{}, fmt.Errorf("schema validation error: %w", err)
	}

	report := ValidationReport{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		report.Issues = append(report.Issues, Issue{
			Field:       strings.TrimPrefix(desc.Field(), "(root)."),
			Description: desc.Description(),
		})
	}
	return report, nil
}
