package restaurant

import (
	"sort"
	"strings"

	"restaurantmap/models"
)

// ExtractLabels splits every record's raw cuisine field on ',' and ';' and
// collects the distinct trimmed parts. Empty parts and the unknown-cuisine
// sentinel are dropped.
func ExtractLabels(records []models.Restaurant) map[string]struct{} {
	labels := make(map[string]struct{})
	for _, r := range records {
		for _, part := range splitCuisine(r.Cuisine) {
			labels[part] = struct{}{}
		}
	}
	return labels
}

// SortedLabels returns the labels of records in lexicographic order.
func SortedLabels(records []models.Restaurant) []string {
	set := ExtractLabels(records)
	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func splitCuisine(raw string) []string {
	var parts []string
	for _, p := range strings.Split(strings.ReplaceAll(raw, ";", ","), ",") {
		p = strings.TrimSpace(p)
		if p == "" || strings.EqualFold(p, models.UnknownCuisine) {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}
