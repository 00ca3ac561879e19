package models

import (
	"encoding/json"
	"fmt"
	"strings"

	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/validation"
)

// DefaultRequiredCompletion is the completion threshold when none is configured.
const DefaultRequiredCompletion = 0.9

// GradeCriteria configures the weighted-grade strategy. Values are fractions in [0,1];
// the reserved "total" key bounds the weighted sum across categories.
type GradeCriteria struct {
	RequiredGrades map[string]float64 `json:"required_grades" validate:"required,dive,gte=0,lte=1"`
}

// Percentages returns the lower-cased requirements on the 0-100 scale used by grades.
func (g GradeCriteria) Percentages() map[string]float64 {
	out := make(map[string]float64, len(g.RequiredGrades))
	for k, v := range g.RequiredGrades {
		out[strings.ToLower(k)] = v * 100
	}
	return out
}

// CompletionCriteria configures the completion strategy.
type CompletionCriteria struct {
	RequiredCompletion float64 `json:"required_completion" validate:"gte=0,lte=1"`
}

// RenderOptions configures the PDF generation strategy.
type RenderOptions struct {
	Template          string  `json:"template" validate:"required,notblank"`
	TemplateTwoLines  string  `json:"template_two_lines"`
	Font              string  `json:"font"`
	NameY             float64 `json:"name_y"`
	NameColor         string  `json:"name_color" validate:"omitempty,hexcolor"`
	ResourceName      string  `json:"resource_name"`
	ResourceNameY     float64 `json:"resource_name_y"`
	ResourceNameColor string  `json:"resource_name_color" validate:"omitempty,hexcolor"`
	IssueDateY        float64 `json:"issue_date_y"`
	IssueDateColor    string  `json:"issue_date_color" validate:"omitempty,hexcolor"`
}

// DefaultRenderOptions holds the layout used when options leave a field out.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		NameY:             290,
		NameColor:         "#000",
		ResourceNameY:     220,
		ResourceNameColor: "#000",
		IssueDateY:        120,
		IssueDateColor:    "#000",
	}
}

// DecodeGradeCriteria reads and validates grade strategy options.
func DecodeGradeCriteria(opts Options) (GradeCriteria, error) {
	var c GradeCriteria
	if err := decodeOptions(opts, &c); err != nil {
		return GradeCriteria{}, err
	}
	return c, nil
}

// DecodeCompletionCriteria reads and validates completion strategy options.
func DecodeCompletionCriteria(opts Options) (CompletionCriteria, error) {
	c := CompletionCriteria{RequiredCompletion: DefaultRequiredCompletion}
	if err := decodeOptions(opts, &c); err != nil {
		return CompletionCriteria{}, err
	}
	return c, nil
}

// DecodeRenderOptions reads and validates render options over the defaults.
func DecodeRenderOptions(opts Options) (RenderOptions, error) {
	o := DefaultRenderOptions()
	if err := decodeOptions(opts, &o); err != nil {
		return RenderOptions{}, err
	}
	return o, nil
}

// decodeOptions round-trips opts through JSON into target, which already
// carries defaults, then validates it. Unknown keys are ignored since both
// strategies of a type read from the same merged mapping.
func decodeOptions(opts Options, target any) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, "options are not serializable")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("invalid options: %v", err))
	}
	return validation.ValidateAs(target, dErrors.CodeConfiguration)
}
