package model

import (
	"fmt"
	"strings"
)

// PropertyType is the kind of property being listed
type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyCondo     PropertyType = "condo"
)

// PropertyTypes lists the selectable property types in display order
var PropertyTypes = []PropertyType{PropertyHouse, PropertyApartment, PropertyCondo}

// ParsePropertyType converts user input into a PropertyType
func ParsePropertyType(s string) (PropertyType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, pt := range PropertyTypes {
		if string(pt) == s {
			return pt, nil
		}
	}
	return "", fmt.Errorf("invalid property type %q, must be one of: house, apartment, condo", s)
}

// Form field names, shared by the JSON API and the terminal form
const (
	FieldPropertyType  = "property_type"
	FieldStories       = "stories"
	FieldSquareFootage = "square_footage"
	FieldGarageCount   = "garage_count"
	FieldBedrooms      = "bedrooms"
	FieldBathrooms     = "bathrooms"
)

// DefaultGarageCount is the garage value a fresh form starts with
const DefaultGarageCount = "0"

// FormInput is a snapshot of everything the user has entered.
// It is a value type: setters return a modified copy.
type FormInput struct {
	PropertyType  PropertyType `json:"property_type" binding:"omitempty,oneof=house apartment condo"`
	Stories       string       `json:"stories"`
	SquareFootage string       `json:"square_footage"`
	GarageCount   string       `json:"garage_count"`
	Bedrooms      string       `json:"bedrooms"`
	Bathrooms     string       `json:"bathrooms"`
	Amenities     Amenities    `json:"amenities"`
}

// NewFormInput returns the form as it looks when the page first loads
func NewFormInput() FormInput {
	return FormInput{
		PropertyType: PropertyHouse,
		GarageCount:  DefaultGarageCount,
	}
}

func (f FormInput) WithPropertyType(pt PropertyType) FormInput {
	f.PropertyType = pt
	return f
}

func (f FormInput) WithStories(v string) FormInput {
	f.Stories = v
	return f
}

func (f FormInput) WithSquareFootage(v string) FormInput {
	f.SquareFootage = v
	return f
}

func (f FormInput) WithGarageCount(v string) FormInput {
	f.GarageCount = v
	return f
}

func (f FormInput) WithBedrooms(v string) FormInput {
	f.Bedrooms = v
	return f
}

func (f FormInput) WithBathrooms(v string) FormInput {
	f.Bathrooms = v
	return f
}

// WithAmenity sets a single amenity flag
func (f FormInput) WithAmenity(a Amenity, on bool) FormInput {
	f.Amenities = f.Amenities.With(a, on)
	return f
}

// ToggleAmenity flips a single amenity flag
func (f FormInput) ToggleAmenity(a Amenity) FormInput {
	return f.WithAmenity(a, !f.Amenities.Has(a))
}

// WithField applies an edit addressed by field name.
// Amenity fields accept "true"/"false" (or "on"/"off").
func (f FormInput) WithField(name, value string) (FormInput, error) {
	switch name {
	case FieldPropertyType:
		pt, err := ParsePropertyType(value)
		if err != nil {
			return f, err
		}
		return f.WithPropertyType(pt), nil
	case FieldStories:
		return f.WithStories(value), nil
	case FieldSquareFootage:
		return f.WithSquareFootage(value), nil
	case FieldGarageCount:
		return f.WithGarageCount(value), nil
	case FieldBedrooms:
		return f.WithBedrooms(value), nil
	case FieldBathrooms:
		return f.WithBathrooms(value), nil
	}

	if a, ok := ParseAmenity(name); ok {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "1", "yes":
			return f.WithAmenity(a, true), nil
		case "false", "off", "0", "no", "":
			return f.WithAmenity(a, false), nil
		default:
			return f, fmt.Errorf("invalid value %q for amenity %s", value, name)
		}
	}

	return f, fmt.Errorf("unknown form field %q", name)
}

// MissingFields returns the names of required fields that are empty
func (f FormInput) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{FieldPropertyType, string(f.PropertyType)},
		{FieldStories, f.Stories},
		{FieldSquareFootage, f.SquareFootage},
		{FieldBedrooms, f.Bedrooms},
		{FieldBathrooms, f.Bathrooms},
		{FieldGarageCount, f.GarageCount},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}
