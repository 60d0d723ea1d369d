package keys

import (
	"testing"

	"restaurantmap/models"
)

func TestMapPage(t *testing.T) {
	cases := []struct {
		name      string
		loc       models.Location
		selection string
		expected  string
	}{
		{
			name:      "default location all cuisines",
			loc:       models.Location{Name: "Seattle, Washington, USA", Coordinates: models.Coordinates{Lat: 47.6062, Lon: -122.3321}},
			selection: "All cuisines",
			expected:  "maps/seattle-washington-usa/47.6062_-122.3321/all-cuisines.html",
		},
		{
			name:      "label selection",
			loc:       models.Location{Name: " Paris ", Coordinates: models.Coordinates{Lat: 48.85661, Lon: 2.35222}},
			selection: "Vietnamese",
			expected:  "maps/paris/48.8566_2.3522/vietnamese.html",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapPage(tc.loc, tc.selection); got != tc.expected {
				t.Fatalf("MapPage() = %q; want %q", got, tc.expected)
			}
		})
	}
}
