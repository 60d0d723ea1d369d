// Package finder runs the search pipeline for a session: geocode the query,
// fetch nearby restaurants, normalize them, and derive the filtered view.
package finder

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"restaurantmap/internal/restaurant"
	"restaurantmap/internal/session"
	"restaurantmap/models"
	"restaurantmap/pkg/overpass"
)

type Geocoder interface {
	Resolve(ctx context.Context, query string) (models.Coordinates, error)
}

type Fetcher interface {
	FetchNearby(ctx context.Context, lat, lon float64, radius int) ([]overpass.RawPOI, error)
}

type Service struct {
	geocoder Geocoder
	fetcher  Fetcher
	radius   int
	log      *slog.Logger
}

func NewService(geocoder Geocoder, fetcher Fetcher, radius int, log *slog.Logger) *Service {
	if radius <= 0 {
		radius = overpass.DefaultRadius
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{geocoder: geocoder, fetcher: fetcher, radius: radius, log: log}
}

// Outcome describes what a submission did to the session.
type Outcome struct {
	Submitted bool     `json:"submitted"`
	Relocated bool     `json:"relocated"`
	Notices   []Notice `json:"notices,omitempty"`
}

// Ensure performs the initial fetch for the session's current location if no
// fetch has happened yet.
func (s *Service) Ensure(ctx context.Context, sess *session.Session) []Notice {
	if sess.Loaded() {
		return nil
	}
	records, notices := s.load(ctx, sess.Center)
	sess.Replace(records)
	return notices
}

// Submit geocodes query and, on success, replaces the session's location and
// records. An empty query is not a submission. When the location cannot be
// resolved the session is left exactly as it was.
func (s *Service) Submit(ctx context.Context, sess *session.Session, query string) Outcome {
	if query == "" {
		return Outcome{}
	}

	center, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		s.log.Warn("location not resolved", "query", query, "error", err)
		return Outcome{Submitted: true, Notices: []Notice{locationNotFound()}}
	}

	records, notices := s.load(ctx, center)
	sess.Relocate(query, center, records)
	s.log.Info("session relocated", "session", sess.ID, "query", query, "center", center.String(), "restaurants", len(records))
	return Outcome{Submitted: true, Relocated: true, Notices: notices}
}

func (s *Service) load(ctx context.Context, center models.Coordinates) ([]models.Restaurant, []Notice) {
	raw, err := s.fetcher.FetchNearby(ctx, center.Lat, center.Lon, s.radius)
	if err != nil {
		var failure *overpass.FetchFailure
		if errors.As(err, &failure) {
			return nil, []Notice{fetchFailure(failure.Cause)}
		}
		return nil, []Notice{fetchFailure(err)}
	}
	return restaurant.Normalize(raw), nil
}

// View is everything the presenter needs to draw one frame.
type View struct {
	Location  models.Location     `json:"location"`
	Zoom      int                 `json:"zoom"`
	Labels    []string            `json:"labels"`
	Options   []string            `json:"options"`
	Selection string              `json:"selection"`
	Total     int                 `json:"total"`
	Records   []models.Restaurant `json:"restaurants"`
	Key       string              `json:"key"`
	Notices   []Notice            `json:"notices,omitempty"`
}

// View derives the cuisine options from the session's records and applies
// selection. A selection that is not among the current labels falls back to
// all cuisines.
func (s *Service) View(sess *session.Session, selection string) View {
	labels := restaurant.SortedLabels(sess.Records)
	selection = restaurant.Resolve(selection, labels)

	v := View{
		Location:  sess.Location(),
		Zoom:      sess.Zoom,
		Labels:    labels,
		Options:   append([]string{restaurant.AllCuisines}, labels...),
		Selection: selection,
		Total:     len(sess.Records),
		Records:   restaurant.Apply(sess.Records, selection),
		Key:       MapKey(sess.Center, selection),
	}
	if len(labels) == 0 {
		v.Notices = append(v.Notices, noCuisines())
	}
	return v
}

// MapKey identifies a rendered map by its center and selection; a change in
// key means the presenter must redraw from scratch.
func MapKey(center models.Coordinates, selection string) string {
	return "map_" + strconv.FormatFloat(center.Lat, 'f', -1, 64) +
		"_" + strconv.FormatFloat(center.Lon, 'f', -1, 64) +
		"_" + selection
}
