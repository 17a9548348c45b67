package usecase

import (
	"errors"
	"strings"
	"testing"

	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"
)

func TestParseAssessment(t *testing.T) {
	t.Run("valid content is kept verbatim", func(t *testing.T) {
		a, err := ParseAssessment(`{"price":500,"complexity":"medium","materials":["oak"],"laborHours":20,"explanation":"solid oak"}`)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if a.Price != 500 || a.Complexity != entities.EstimateComplexityMedium || a.LaborHours != 20 {
			t.Fatalf("unexpected assessment: %+v", a)
		}
		if len(a.Materials) != 1 || a.Materials[0] != "oak" || a.Explanation != "solid oak" {
			t.Fatalf("unexpected assessment: %+v", a)
		}
	})

	cases := map[string]string{
		"malformed json":  `{"price":`,
		"missing field":   `{"price":500,"complexity":"medium","materials":["oak"],"laborHours":20}`,
		"bad enum":        `{"price":500,"complexity":"hard","materials":["oak"],"laborHours":20,"explanation":"x"}`,
		"negative price":  `{"price":-1,"complexity":"simple","materials":[],"laborHours":2,"explanation":"x"}`,
		"wrong type":      `{"price":"500","complexity":"simple","materials":[],"laborHours":2,"explanation":"x"}`,
		"non string item": `{"price":5,"complexity":"simple","materials":[1],"laborHours":2,"explanation":"x"}`,
		"array instead":   `[1,2,3]`,
		"empty":           ``,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAssessment(raw)
			var shapeErr *interfaces.ResponseShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected ResponseShapeError, got %v", err)
			}
			if !errors.Is(err, ErrInvalidModelResponse) {
				t.Fatalf("expected ErrInvalidModelResponse in chain")
			}
		})
	}

	t.Run("missing field is named", func(t *testing.T) {
		_, err := ParseAssessment(`{"price":1,"complexity":"simple","materials":[],"laborHours":1}`)
		if err == nil || !strings.Contains(err.Error(), "explanation") {
			t.Fatalf("expected explanation to be reported, got %v", err)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("  walnut finish, no arms ")
	if !strings.HasSuffix(p, "Customer Requirements: walnut finish, no arms") {
		t.Fatalf("requirements not appended: %q", p[len(p)-60:])
	}
	for _, want := range []string{"Premium Hardwoods: $15-30", "Custom Design: $150/hour", "Large (wardrobe): 40-60 hours", "20% markup", `"laborHours": number`} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if BuildPrompt("x") != BuildPrompt("x") {
		t.Fatalf("prompt must be deterministic")
	}
}
