package restaurant

import (
	"strings"

	"restaurantmap/models"
)

// AllCuisines is the selection that disables filtering. It is matched
// case-sensitively.
const AllCuisines = "All cuisines"

// Apply keeps the records whose raw cuisine field contains selection,
// ignoring case. Matching is a substring test on the raw field, so "pizza"
// also selects "Pizzeria;regional".
func Apply(records []models.Restaurant, selection string) []models.Restaurant {
	if selection == AllCuisines {
		return records
	}
	needle := strings.ToLower(selection)
	out := make([]models.Restaurant, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Cuisine), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Resolve returns selection if it is one of labels, AllCuisines otherwise.
func Resolve(selection string, labels []string) string {
	for _, l := range labels {
		if l == selection {
			return selection
		}
	}
	return AllCuisines
}
