package keys

import (
	"fmt"
	"strings"

	"restaurantmap/models"
)

// sanitizeKey replaces spaces with hyphens, drops commas and lowercases the string.
func sanitizeKey(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// MapPage returns the canonical object key for an exported map page.
func MapPage(loc models.Location, selection string) string {
	return fmt.Sprintf("maps/%s/%.4f_%.4f/%s.html",
		sanitizeKey(loc.Name),
		loc.Coordinates.Lat,
		loc.Coordinates.Lon,
		sanitizeKey(selection),
	)
}
