// Package session holds per-user search state: the last resolved location,
// the map zoom and the full, unfiltered record set for that location.
package session

import (
	"sync"

	"restaurantmap/models"
)

const (
	DefaultLocationName = "Seattle, Washington, USA"
	DefaultZoom         = 12
)

var DefaultCenter = models.Coordinates{Lat: 47.6062, Lon: -122.3321}

// Session is owned by whoever handles the current request. Callers that share
// a Session between goroutines must hold Lock while using it.
type Session struct {
	sync.Mutex

	ID           string
	LocationName string
	Center       models.Coordinates
	Zoom         int
	Records      []models.Restaurant

	loaded bool
}

// New returns a session pointing at the default location with no records.
func New(id string, zoom int) *Session {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Session{
		ID:           id,
		LocationName: DefaultLocationName,
		Center:       DefaultCenter,
		Zoom:         zoom,
	}
}

// Loaded reports whether a fetch has completed for the current location.
func (s *Session) Loaded() bool { return s.loaded }

// Relocate moves the session to a newly resolved location and replaces the
// record set wholesale. It is the only way records change.
func (s *Session) Relocate(name string, center models.Coordinates, records []models.Restaurant) {
	s.LocationName = name
	s.Center = center
	s.Replace(records)
}

// Replace swaps in the records of the latest fetch for the current location.
func (s *Session) Replace(records []models.Restaurant) {
	s.Records = records
	s.loaded = true
}

func (s *Session) Location() models.Location {
	return models.Location{Name: s.LocationName, Coordinates: s.Center}
}
