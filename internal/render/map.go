// Package render turns a finder.View into map markers and an HTML page.
package render

import (
	"fmt"
	"html"

	"restaurantmap/internal/finder"
	"restaurantmap/models"
)

const (
	PopupMaxWidth      = 300
	AddressUnavailable = "Address not available"
)

type Marker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip,omitempty"`
	Popup   string  `json:"popup,omitempty"`
	Color   string  `json:"color"`
	Icon    string  `json:"icon"`
}

// Map is a complete description of one rendered map. Two views with the same
// Key produce the same Map.
type Map struct {
	Key           string   `json:"key"`
	Center        Marker   `json:"center"`
	Zoom          int      `json:"zoom"`
	PopupMaxWidth int      `json:"popupMaxWidth"`
	Restaurants   []Marker `json:"restaurants"`
}

func NewMap(v finder.View) Map {
	m := Map{
		Key:           v.Key,
		Zoom:          v.Zoom,
		PopupMaxWidth: PopupMaxWidth,
		Center: Marker{
			Lat:     v.Location.Coordinates.Lat,
			Lon:     v.Location.Coordinates.Lon,
			Tooltip: "Search Location: " + html.EscapeString(v.Location.Name),
			Color:   "blue",
			Icon:    "search",
		},
		Restaurants: make([]Marker, 0, len(v.Records)),
	}
	for _, r := range v.Records {
		m.Restaurants = append(m.Restaurants, Marker{
			Lat:   r.Lat,
			Lon:   r.Lon,
			Popup: Popup(r),
			Color: "red",
			Icon:  "cutlery",
		})
	}
	return m
}

// Popup is the marker body for one restaurant. Tag values are escaped; the
// surrounding markup is not.
func Popup(r models.Restaurant) string {
	address := r.Address
	if address == "" {
		address = AddressUnavailable
	}
	return fmt.Sprintf("<b>%s</b><br>%s<br><i>Cuisine: %s</i>",
		html.EscapeString(r.Name), html.EscapeString(address), html.EscapeString(r.Cuisine))
}
