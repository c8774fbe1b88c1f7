// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"lease-advisor/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// quizSchema validates the raw quiz payload before it reaches the pipeline.
// Numeric fields accept both numbers and numeric strings because the frontend
// sends either depending on the form control.
const quizSchema = `{
	"type": "object",
	"properties": {
		"zipcode":                       {"type": "string", "pattern": "^[0-9]{5}$"},
		"car_make":                      {"type": "string"},
		"car_make_other":                {"type": "string"},
		"body_type":                     {"type": ["string", "array"], "items": {"type": "string"}},
		"powertrain":                    {"type": ["string", "array"], "items": {"type": "string"}},
		"lower_bound_lease_payment":     {"type": ["number", "string", "null"]},
		"upper_bound_lease_payment":     {"type": ["number", "string", "null"]},
		"custom_min_budget":             {"type": ["number", "string", "null"]},
		"custom_max_budget":             {"type": ["number", "string", "null"]},
		"decision_monthly_budget_range": {"type": "string"},
		"dp_budget":                     {"type": ["number", "string", "null"]},
		"lease_miles":                   {"type": ["number", "string", "null"]}
	},
	"required": ["zipcode"]
}`

var quizSchemaLoader = gojsonschema.NewStringLoader(quizSchema)

// ValidateQuizPayload checks the raw JSON body against the quiz schema and
// then applies the cross-field rules the schema cannot express.
func ValidateQuizPayload(raw []byte, quiz models.QuizData) error {
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(quizSchemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("quiz validation failed: %v", errs)
	}

	if quiz.CustomMinBudget.Valid && quiz.CustomMaxBudget.Valid &&
		quiz.CustomMinBudget.Value > quiz.CustomMaxBudget.Value {
		return fmt.Errorf("quiz validation failed: custom_min_budget %.2f exceeds custom_max_budget %.2f",
			quiz.CustomMinBudget.Value, quiz.CustomMaxBudget.Value)
	}

	return nil
}
