package service

import (
	"errors"
	"strings"
	"testing"

	"listinggen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm() model.FormInput {
	return model.NewFormInput().
		WithStories("2").
		WithSquareFootage("1800").
		WithGarageCount("2").
		WithBedrooms("3").
		WithBathrooms("2")
}

func TestCompose_EndToEndExample(t *testing.T) {
	form := completeForm().WithAmenity(model.AmenityPool, true)

	prompt, err := NewPromptComposer(false).Compose(form)
	require.NoError(t, err)
	assert.Equal(t,
		"Write a listing about a 2 house that is 1800 square feet 2 car garage and has 3 bedrooms and 2 bathrooms It also has a pool .",
		prompt)
}

func TestCompose_StoryClause(t *testing.T) {
	composer := NewPromptComposer(false)

	tests := []struct {
		stories string
		want    string
	}{
		{stories: "1", want: "a 1 story condo that"},
		{stories: "2", want: "a 2 condo that"},
		{stories: "3", want: "a 3 condo that"},
		{stories: "0", want: "a 1 story condo that"},
		{stories: "two", want: "a 1 story condo that"},
	}

	for _, tt := range tests {
		t.Run(tt.stories, func(t *testing.T) {
			form := completeForm().WithPropertyType(model.PropertyCondo).WithStories(tt.stories)
			prompt, err := composer.Compose(form)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.want)
		})
	}
}

func TestCompose_GarageClause(t *testing.T) {
	composer := NewPromptComposer(false)

	prompt, err := composer.Compose(completeForm().WithGarageCount("0"))
	require.NoError(t, err)
	assert.NotContains(t, prompt, "garage")
	assert.Contains(t, prompt, "1800 square feet and has")

	prompt, err = composer.Compose(completeForm().WithGarageCount("1"))
	require.NoError(t, err)
	assert.Contains(t, prompt, "1800 square feet 1 car garage and has")

	prompt, err = composer.Compose(completeForm().WithGarageCount("3"))
	require.NoError(t, err)
	assert.Contains(t, prompt, " 3 car garage ")
}

func TestCompose_AmenityPhrasesIffSelected(t *testing.T) {
	composer := NewPromptComposer(false)
	all := model.AllAmenities()

	// every subset of the six amenities
	for mask := 0; mask < 1<<len(all); mask++ {
		form := completeForm()
		for i, a := range all {
			form = form.WithAmenity(a, mask&(1<<i) != 0)
		}

		prompt, err := composer.Compose(form)
		require.NoError(t, err)

		last := -1
		for i, a := range all {
			idx := strings.Index(prompt, AmenityPhrase(a))
			if mask&(1<<i) == 0 {
				assert.Equal(t, -1, idx, "mask %06b: unexpected %q", mask, AmenityPhrase(a))
				continue
			}
			require.NotEqual(t, -1, idx, "mask %06b: missing %q", mask, AmenityPhrase(a))
			assert.Greater(t, idx, last, "mask %06b: %q out of order", mask, AmenityPhrase(a))
			last = idx
		}
	}
}

func TestCompose_AllAmenitiesOrder(t *testing.T) {
	form := completeForm()
	for _, a := range model.AllAmenities() {
		form = form.WithAmenity(a, true)
	}

	prompt, err := NewPromptComposer(false).Compose(form)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(prompt,
		"bathrooms It also has a pool It has gas cooking It has a patio It has a shed It has sprinklers It has solar panels ."))
}

func TestCompose_MissingFields(t *testing.T) {
	composer := NewPromptComposer(false)

	_, err := composer.Compose(completeForm().WithBathrooms("").WithSquareFootage(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFields))

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{model.FieldSquareFootage, model.FieldBathrooms}, missing.Fields)

	_, err = composer.Compose(completeForm().WithPropertyType(""))
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCompose_CollapseWhitespace(t *testing.T) {
	form := completeForm().WithAmenity(model.AmenityPool, true)

	prompt, err := NewPromptComposer(true).Compose(form)
	require.NoError(t, err)
	assert.Equal(t,
		"Write a listing about a 2 house that is 1800 square feet 2 car garage and has 3 bedrooms and 2 bathrooms It also has a pool.",
		prompt)
}
