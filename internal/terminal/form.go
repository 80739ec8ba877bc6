package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"listinggen/internal/model"

	"github.com/charmbracelet/huh"
)

// FormValues holds the string-typed values bound to the terminal form
type FormValues struct {
	PropertyType  string
	Stories       string
	SquareFootage string
	GarageCount   string
	Bedrooms      string
	Bathrooms     string
	Amenities     []string
}

// ValuesFromForm copies a form snapshot into bindable values
func ValuesFromForm(f model.FormInput) *FormValues {
	return &FormValues{
		PropertyType:  string(f.PropertyType),
		Stories:       f.Stories,
		SquareFootage: f.SquareFootage,
		GarageCount:   f.GarageCount,
		Bedrooms:      f.Bedrooms,
		Bathrooms:     f.Bathrooms,
		Amenities:     f.Amenities.Keys(),
	}
}

// FormInput converts the bound values back into a snapshot
func (v *FormValues) FormInput() model.FormInput {
	return model.FormInput{
		PropertyType:  model.PropertyType(strings.ToLower(strings.TrimSpace(v.PropertyType))),
		Stories:       strings.TrimSpace(v.Stories),
		SquareFootage: strings.TrimSpace(v.SquareFootage),
		GarageCount:   strings.TrimSpace(v.GarageCount),
		Bedrooms:      strings.TrimSpace(v.Bedrooms),
		Bathrooms:     strings.TrimSpace(v.Bathrooms),
		Amenities:     model.AmenitiesFromKeys(v.Amenities),
	}
}

// BuildListingForm builds the interactive property form
func BuildListingForm(v *FormValues) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(model.PropertyTypes))
	for _, pt := range model.PropertyTypes {
		typeOptions = append(typeOptions, huh.NewOption(capitalize(string(pt)), string(pt)))
	}

	amenityOptions := make([]huh.Option[string], 0)
	for _, a := range model.AllAmenities() {
		amenityOptions = append(amenityOptions, huh.NewOption(a.Label(), a.Key()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Property type").
				Options(typeOptions...).
				Value(&v.PropertyType),
			huh.NewInput().
				Title("Stories").
				Value(&v.Stories).
				Validate(requiredNumber("Stories")),
			huh.NewInput().
				Title("Square footage").
				Value(&v.SquareFootage).
				Validate(requiredNumber("Square footage")),
			huh.NewInput().
				Title("Garage (cars)").
				Value(&v.GarageCount).
				Validate(requiredNumber("Garage")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Bedrooms").
				Value(&v.Bedrooms).
				Validate(requiredNumber("Bedrooms")),
			huh.NewInput().
				Title("Bathrooms").
				Value(&v.Bathrooms).
				Validate(requiredNumber("Bathrooms")),
			huh.NewMultiSelect[string]().
				Title("Amenities").
				Options(amenityOptions...).
				Value(&v.Amenities),
		),
	)
}

// requiredNumber rejects empty input; the number check only guards against typos
func requiredNumber(label string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("%s must be a number", label)
		}
		return nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
