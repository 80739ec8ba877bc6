package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeAmenity(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "pool", want: "pool", wantOK: true},
		{input: "Swimming Pool", want: "pool", wantOK: true},
		{input: "heated swimming pool", want: "pool", wantOK: true},
		{input: "gas stove", want: "gas_cooking", wantOK: true},
		{input: "solar", want: "solar_panels", wantOK: true},
		{input: "Solar-Panels", want: "solar_panels", wantOK: true},
		{input: "irrigation", want: "sprinklers", wantOK: true},
		{input: "deck", want: "patio", wantOK: true},
		{input: "garden shed", want: "shed", wantOK: true},
		{input: "helipad", want: "", wantOK: false},
		{input: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeAmenity(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NormalizeAmenity(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeAmenityList(t *testing.T) {
	keys, unknown := NormalizeAmenityList("pool, solar , swimming pool,moat,,shed")

	wantKeys := []string{"pool", "solar_panels", "shed"}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("keys = %v, want %v", keys, wantKeys)
	}
	if !reflect.DeepEqual(unknown, []string{"moat"}) {
		t.Errorf("unknown = %v, want [moat]", unknown)
	}
}
