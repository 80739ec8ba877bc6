package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"listinggen/internal/model"
	"listinggen/internal/utils"
)

// Generation parameters sent with every request
const (
	Temperature = 1.0
	MaxTokens   = 250
)

// ErrMissingFields is returned when a required form field is empty
var ErrMissingFields = errors.New("missing required field")

// MissingFieldsError lists the empty required fields
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

// amenityPhrases are appended in model.AllAmenities order
var amenityPhrases = map[model.Amenity]string{
	model.AmenityPool:        "It also has a pool",
	model.AmenityGasCooking:  "It has gas cooking",
	model.AmenityPatio:       "It has a patio",
	model.AmenityShed:        "It has a shed",
	model.AmenitySprinklers:  "It has sprinklers",
	model.AmenitySolarPanels: "It has solar panels",
}

// AmenityPhrase returns the fixed clause for an amenity
func AmenityPhrase(a model.Amenity) string {
	return amenityPhrases[a]
}

// PromptComposer turns a form snapshot into a prompt
type PromptComposer struct {
	collapseWhitespace bool
}

// NewPromptComposer creates a new prompt composer
func NewPromptComposer(collapseWhitespace bool) *PromptComposer {
	return &PromptComposer{collapseWhitespace: collapseWhitespace}
}

// Validate checks that every required field is present
func (p *PromptComposer) Validate(form model.FormInput) error {
	if missing := form.MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Compose validates the form and builds the prompt
func (p *PromptComposer) Compose(form model.FormInput) (string, error) {
	if err := p.Validate(form); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Write a listing about a ")
	b.WriteString(storyClause(form))
	b.WriteString(" that is ")
	b.WriteString(form.SquareFootage)
	b.WriteString(" square feet")
	b.WriteString(garageClause(form))
	b.WriteString(" and has ")
	b.WriteString(form.Bedrooms)
	b.WriteString(" bedrooms and ")
	b.WriteString(form.Bathrooms)
	b.WriteString(" bathrooms")
	for _, a := range model.AllAmenities() {
		b.WriteString(amenityClause(form.Amenities, a))
	}
	b.WriteString(" .")

	prompt := b.String()
	if p.collapseWhitespace {
		prompt = utils.CollapseWhitespace(prompt)
	}
	return prompt, nil
}

func storyClause(form model.FormInput) string {
	if numeric(form.Stories) > 1 {
		return fmt.Sprintf("%s %s", form.Stories, form.PropertyType)
	}
	return fmt.Sprintf("1 story %s", form.PropertyType)
}

func garageClause(form model.FormInput) string {
	if numeric(form.GarageCount) >= 1 {
		return fmt.Sprintf(" %s car garage", form.GarageCount)
	}
	return ""
}

func amenityClause(amenities model.Amenities, a model.Amenity) string {
	if !amenities.Has(a) {
		return ""
	}
	return " " + amenityPhrases[a]
}

// numeric parses a user typed count; anything unparsable counts as zero
func numeric(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
