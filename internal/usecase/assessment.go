package usecase

import (
	"encoding/json"
	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"

	"github.com/xeipuuv/gojsonschema"
)

const assessmentSchemaJSON = `{
  "type": "object",
  "required": ["price", "complexity", "materials", "laborHours", "explanation"],
  "properties": {
    "price":       {"type": "number", "minimum": 0},
    "complexity":  {"type": "string", "enum": ["simple", "medium", "complex"]},
    "materials":   {"type": "array", "items": {"type": "string"}},
    "laborHours":  {"type": "number", "minimum": 0},
    "explanation": {"type": "string"}
  }
}`

var assessmentSchema = mustLoadSchema(assessmentSchemaJSON)

func mustLoadSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// PriceAssessment is the five-field answer of the vision model.
type PriceAssessment struct {
	Price       float64                     `json:"price"`
	Complexity  entities.EstimateComplexity `json:"complexity"`
	Materials   []string                    `json:"materials"`
	LaborHours  float64                     `json:"laborHours"`
	Explanation string                      `json:"explanation"`
}

// ParseAssessment validates raw model content against the assessment schema.
// It never fills in defaults: any violation is a *interfaces.ResponseShapeError.
func ParseAssessment(raw string) (PriceAssessment, error) {
	if !json.Valid([]byte(raw)) {
		return PriceAssessment{}, &interfaces.ResponseShapeError{Reason: "content is not valid JSON", Raw: raw}
	}

	result, err := assessmentSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return PriceAssessment{}, &interfaces.ResponseShapeError{Reason: err.Error(), Raw: raw}
	}
	if !result.Valid() {
		shapeErr := &interfaces.ResponseShapeError{Raw: raw}
		for _, e := range result.Errors() {
			shapeErr.Fields = append(shapeErr.Fields, interfaces.FieldError{Field: e.Field(), Message: e.Description()})
		}
		return PriceAssessment{}, shapeErr
	}

	var a PriceAssessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return PriceAssessment{}, &interfaces.ResponseShapeError{Reason: err.Error(), Raw: raw}
	}
	return a, nil
}
