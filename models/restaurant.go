package models

const (
	DefaultName    = "Unnamed"
	UnknownCuisine = "Unknown cuisine"
)

// Restaurant is the uniform record built from a raw POI tag bundle.
// Cuisine holds the raw tag value, which may list several cuisines.
type Restaurant struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Cuisine string  `json:"cuisine"`
}

func (r Restaurant) Coordinates() Coordinates {
	return Coordinates{Lat: r.Lat, Lon: r.Lon}
}
