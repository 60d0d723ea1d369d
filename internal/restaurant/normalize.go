// Package restaurant turns raw POI tag bundles into restaurant records and
// derives the cuisine taxonomy used for filtering them.
package restaurant

import (
	"strings"

	"restaurantmap/models"
	"restaurantmap/pkg/overpass"
)

// address parts in display order
var addressTags = []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode"}

// Normalize maps raw elements to records, one per element, in input order.
// Missing tags fall back to defaults; it never fails.
func Normalize(elements []overpass.RawPOI) []models.Restaurant {
	records := make([]models.Restaurant, 0, len(elements))
	for _, el := range elements {
		records = append(records, models.Restaurant{
			Name:    tagOr(el.Tags, "name", models.DefaultName),
			Lat:     el.Lat,
			Lon:     el.Lon,
			Address: FormatAddress(el.Tags),
			Cuisine: tagOr(el.Tags, "cuisine", models.UnknownCuisine),
		})
	}
	return records
}

// FormatAddress joins house number, street, city and postcode with ", ",
// skipping empty parts. The result is empty when no address tags exist.
func FormatAddress(tags map[string]string) string {
	parts := make([]string, 0, len(addressTags))
	for _, key := range addressTags {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

// tagOr treats a present-but-empty tag as present, matching a plain map lookup
// with default.
func tagOr(tags map[string]string, key, fallback string) string {
	if v, ok := tags[key]; ok {
		return v
	}
	return fallback
}
