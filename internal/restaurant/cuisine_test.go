package restaurant

import (
	"reflect"
	"strings"
	"testing"

	"restaurantmap/models"
)

func records(cuisines ...string) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(cuisines))
	for _, c := range cuisines {
		out = append(out, models.Restaurant{Name: "r", Cuisine: c})
	}
	return out
}

func TestExtractLabels(t *testing.T) {
	tests := []struct {
		name     string
		cuisines []string
		want     []string
	}{
		{"mixed separators", []string{"Italian; Pizza, Vegan"}, []string{"Italian", "Pizza", "Vegan"}},
		{"deduplicated across records", []string{"thai", "thai;vietnamese"}, []string{"thai", "vietnamese"}},
		{"sentinel dropped in any case", []string{"Unknown cuisine", "UNKNOWN CUISINE;sushi"}, []string{"sushi"}},
		{"empty parts dropped", []string{";, ;", "", " burger ,"}, []string{"burger"}},
		{"case variants kept distinct", []string{"Pizza", "pizza"}, []string{"Pizza", "pizza"}},
		{"no records", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedLabels(records(tt.cuisines...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortedLabels() = %q, want %q", got, tt.want)
			}
			if set := ExtractLabels(records(tt.cuisines...)); len(set) != len(tt.want) {
				t.Errorf("ExtractLabels() size = %d, want %d", len(set), len(tt.want))
			}
		})
	}
}

func TestExtractLabels_NeverYieldsEmptyOrSentinel(t *testing.T) {
	inputs := []string{
		"", ";", ",,", "unknown cuisine", " Unknown Cuisine ;", "a;;b", "  ,x,  ", "uNkNoWn CuIsInE,kebab",
	}
	for label := range ExtractLabels(records(inputs...)) {
		if label == "" {
			t.Errorf("empty label extracted")
		}
		if strings.EqualFold(label, "unknown cuisine") {
			t.Errorf("sentinel extracted: %q", label)
		}
		if strings.TrimSpace(label) != label {
			t.Errorf("label not trimmed: %q", label)
		}
	}
}
