package terminal

import (
	"fmt"
	"strings"

	"listinggen/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFA500")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

const boxWidth = 72

// RenderListing draws the generated listing in a bordered box
func RenderListing(listing *model.GeneratedListing) string {
	body := titleStyle.Render("Your listing") + "\n\n" + listing.Text
	return boxStyle.Width(boxWidth).Render(body)
}

// RenderSummary describes the form that is about to be submitted
func RenderSummary(f model.FormInput, provider, modelName string) string {
	amenities := "none"
	if labels := amenityLabels(f.Amenities); len(labels) > 0 {
		amenities = strings.Join(labels, ", ")
	}
	info := fmt.Sprintf(
		" Property: %s, %s stories, %s sq ft\n Rooms: %s bed / %s bath, garage %s\n Amenities: %s\n Provider: %s (%s) ",
		f.PropertyType, f.Stories, f.SquareFootage,
		f.Bedrooms, f.Bathrooms, f.GarageCount,
		amenities, provider, modelName,
	)
	return boxStyle.Render(info)
}

// RenderError formats an inline error line
func RenderError(status model.Status) string {
	if status.Error == nil {
		return ""
	}
	msg := status.Error.Message
	if len(status.Error.Fields) > 0 {
		msg += " Missing: " + strings.Join(status.Error.Fields, ", ")
	}
	return errorStyle.Render(msg)
}

func amenityLabels(a model.Amenities) []string {
	var labels []string
	for _, amenity := range a.Selected() {
		labels = append(labels, amenity.Label())
	}
	return labels
}
