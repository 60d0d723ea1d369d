// Package exporter turns queued search requests into rendered map pages in
// object storage.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurantmap/internal/enrich"
	"restaurantmap/internal/finder"
	"restaurantmap/internal/keys"
	"restaurantmap/internal/render"
	"restaurantmap/internal/restaurant"
	"restaurantmap/internal/service"
	"restaurantmap/internal/session"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	// ErrFetchFailed ends a job before anything is uploaded.
	ErrFetchFailed = errors.New("restaurant fetch failed")
)

// PageStore is implemented by storage.S3Service.
type PageStore interface {
	MapPageExists(ctx context.Context, bucketName, objectKey string) (bool, error)
	PutMapPage(ctx context.Context, bucketName, objectKey string, page []byte) error
}

// Job carries one request through the export pipeline.
type Job struct {
	Request service.SearchRequest
	Session *session.Session
	Notices []finder.Notice
	View    finder.View
	Key     string
	Page    []byte
	Exists  bool
	Stored  bool
}

type Exporter struct {
	finder   *finder.Service
	store    PageStore
	bucket   string
	zoom     int
	log      *slog.Logger
	pipeline *enrich.Pipeline[Job]
}

func New(svc *finder.Service, store PageStore, bucket string, zoom int, log *slog.Logger) *Exporter {
	e := &Exporter{finder: svc, store: store, bucket: bucket, zoom: zoom, log: log}
	e.pipeline = enrich.NewPipeline(
		enrich.NewStage("search", e.search),
		enrich.NewStage("view", e.view),
		enrich.NewStage("prepare", e.render, e.checkExisting),
		enrich.NewStage("upload", e.upload),
	)
	return e
}

// Handle exports the map for req. It has the signature of a
// service.HandlerFunc so it can be passed straight to an Iterator.
func (e *Exporter) Handle(ctx context.Context, req service.SearchRequest) error {
	_, err := e.Export(ctx, req)
	return err
}

// Export runs the pipeline for req and returns the finished job.
func (e *Exporter) Export(ctx context.Context, req service.SearchRequest) (*Job, error) {
	job := &Job{Request: req}
	if err := e.pipeline.Run(ctx, job); err != nil {
		return job, fmt.Errorf("export %q: %w", req.Location, err)
	}
	return job, nil
}

// search resolves the location and fetches restaurants on a session of its own.
func (e *Exporter) search(ctx context.Context, job *Job) error {
	job.Session = session.New("export", e.zoom)
	out := e.finder.Submit(ctx, job.Session, job.Request.Location)
	if !out.Relocated {
		return ErrLocationNotFound
	}
	for _, n := range out.Notices {
		if n.Kind == finder.KindFetchFailure {
			return fmt.Errorf("%w: %s", ErrFetchFailed, n.Message)
		}
	}
	job.Notices = out.Notices
	return nil
}

func (e *Exporter) view(_ context.Context, job *Job) error {
	selection := job.Request.Cuisine
	if selection == "" {
		selection = restaurant.AllCuisines
	}
	job.View = e.finder.View(job.Session, selection)
	job.View.Notices = append(job.Notices, job.View.Notices...)
	job.Key = keys.MapPage(job.View.Location, job.View.Selection)
	return nil
}

func (e *Exporter) render(_ context.Context, job *Job) error {
	page, err := render.PageBytes(job.View)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	job.Page = page
	return nil
}

func (e *Exporter) checkExisting(ctx context.Context, job *Job) error {
	exists, err := e.store.MapPageExists(ctx, e.bucket, job.Key)
	if err != nil {
		return err
	}
	job.Exists = exists
	return nil
}

func (e *Exporter) upload(ctx context.Context, job *Job) error {
	if job.Exists && !job.Request.Force {
		e.log.Info("map page already exported", "key", job.Key)
		return nil
	}
	if err := e.store.PutMapPage(ctx, e.bucket, job.Key, job.Page); err != nil {
		return err
	}
	job.Stored = true
	e.log.Info("map page exported",
		"key", job.Key,
		"restaurants", len(job.View.Records),
		"total", job.View.Total,
	)
	return nil
}
