package model

// Amenity identifies one of the optional property features
type Amenity int

// Declaration order is the order amenity clauses appear in the prompt.
const (
	AmenityPool Amenity = iota
	AmenityGasCooking
	AmenityPatio
	AmenityShed
	AmenitySprinklers
	AmenitySolarPanels
	amenityCount
)

var amenityKeys = [amenityCount]string{
	AmenityPool:        "pool",
	AmenityGasCooking:  "gas_cooking",
	AmenityPatio:       "patio",
	AmenityShed:        "shed",
	AmenitySprinklers:  "sprinklers",
	AmenitySolarPanels: "solar_panels",
}

var amenityLabels = [amenityCount]string{
	AmenityPool:        "Pool",
	AmenityGasCooking:  "Gas cooking",
	AmenityPatio:       "Patio",
	AmenityShed:        "Shed",
	AmenitySprinklers:  "Sprinklers",
	AmenitySolarPanels: "Solar panels",
}

// AllAmenities returns every amenity in declared order
func AllAmenities() []Amenity {
	out := make([]Amenity, 0, amenityCount)
	for a := Amenity(0); a < amenityCount; a++ {
		out = append(out, a)
	}
	return out
}

// Key is the snake_case identifier used in JSON and form field names
func (a Amenity) Key() string {
	if a < 0 || a >= amenityCount {
		return ""
	}
	return amenityKeys[a]
}

// Label is the human readable name
func (a Amenity) Label() string {
	if a < 0 || a >= amenityCount {
		return ""
	}
	return amenityLabels[a]
}

func (a Amenity) String() string {
	return a.Key()
}

// ParseAmenity looks up an amenity by its key
func ParseAmenity(key string) (Amenity, bool) {
	for a := Amenity(0); a < amenityCount; a++ {
		if amenityKeys[a] == key {
			return a, true
		}
	}
	return 0, false
}

// Amenities is the set of amenity flags on a form
type Amenities struct {
	Pool        bool `json:"pool"`
	GasCooking  bool `json:"gas_cooking"`
	Patio       bool `json:"patio"`
	Shed        bool `json:"shed"`
	Sprinklers  bool `json:"sprinklers"`
	SolarPanels bool `json:"solar_panels"`
}

func (s *Amenities) flag(a Amenity) *bool {
	switch a {
	case AmenityPool:
		return &s.Pool
	case AmenityGasCooking:
		return &s.GasCooking
	case AmenityPatio:
		return &s.Patio
	case AmenityShed:
		return &s.Shed
	case AmenitySprinklers:
		return &s.Sprinklers
	case AmenitySolarPanels:
		return &s.SolarPanels
	}
	return nil
}

// Has reports whether the amenity flag is set
func (s Amenities) Has(a Amenity) bool {
	if p := s.flag(a); p != nil {
		return *p
	}
	return false
}

// With returns a copy with one flag changed
func (s Amenities) With(a Amenity, on bool) Amenities {
	if p := s.flag(a); p != nil {
		*p = on
	}
	return s
}

// Selected returns the set amenities in declared order
func (s Amenities) Selected() []Amenity {
	var out []Amenity
	for _, a := range AllAmenities() {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Keys returns the keys of the set amenities in declared order
func (s Amenities) Keys() []string {
	selected := s.Selected()
	keys := make([]string, 0, len(selected))
	for _, a := range selected {
		keys = append(keys, a.Key())
	}
	return keys
}

// AmenitiesFromKeys builds a set from amenity keys, ignoring unknown ones
func AmenitiesFromKeys(keys []string) Amenities {
	var s Amenities
	for _, k := range keys {
		if a, ok := ParseAmenity(k); ok {
			s = s.With(a, true)
		}
	}
	return s
}

