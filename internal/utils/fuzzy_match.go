package utils

import (
	"strings"
)

// amenityAliases maps canonical amenity keys to the words people type for them
var amenityAliases = map[string][]string{
	"pool":         {"pool", "swimming pool", "swimming", "plunge pool"},
	"gas_cooking":  {"gas cooking", "gas_cooking", "gas stove", "gas range", "gas", "gas cooktop"},
	"patio":        {"patio", "deck", "terrace", "veranda"},
	"shed":         {"shed", "storage shed", "garden shed", "outbuilding"},
	"sprinklers":   {"sprinklers", "sprinkler", "irrigation", "sprinkler system"},
	"solar_panels": {"solar panels", "solar_panels", "solar", "solar panel", "pv", "photovoltaic"},
}

// amenityKeyOrder keeps matching deterministic when several aliases could apply
var amenityKeyOrder = []string{"pool", "gas_cooking", "patio", "shed", "sprinklers", "solar_panels"}

// FuzzyMatchAmenity reports whether a user typed term refers to the amenity key
func FuzzyMatchAmenity(searchTerm, amenityKey string) bool {
	searchLower := normalizeTerm(searchTerm)
	if searchLower == "" {
		return false
	}

	// Exact match
	if searchLower == amenityKey {
		return true
	}

	for _, alias := range amenityAliases[amenityKey] {
		if searchLower == alias {
			return true
		}
	}

	// Contains match, e.g. "heated swimming pool"
	for _, alias := range amenityAliases[amenityKey] {
		if len(alias) > 3 && strings.Contains(searchLower, alias) {
			return true
		}
	}

	return false
}

// NormalizeAmenity resolves a user typed term to a canonical amenity key
func NormalizeAmenity(term string) (string, bool) {
	for _, key := range amenityKeyOrder {
		if FuzzyMatchAmenity(term, key) {
			return key, true
		}
	}
	return "", false
}

// NormalizeAmenityList splits a comma separated list and resolves each entry.
// Unknown entries are returned separately so callers can report them.
func NormalizeAmenityList(list string) (keys []string, unknown []string) {
	seen := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, ok := NormalizeAmenity(part)
		if !ok {
			unknown = append(unknown, part)
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, unknown
}

func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
