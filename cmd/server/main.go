package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"restaurantmap/internal/config"
	"restaurantmap/internal/finder"
	"restaurantmap/internal/logging"
	"restaurantmap/internal/session"
	"restaurantmap/internal/web"
	"restaurantmap/pkg/graceful"
	"restaurantmap/pkg/kafkaclient"
	"restaurantmap/pkg/location"
	"restaurantmap/pkg/overpass"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Env)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	geocoder := location.NewClient(
		location.WithBaseURL(cfg.NominatimURL),
		location.WithUserAgent(cfg.UserAgent),
		location.WithRateLimit(cfg.GeocodeRatePerSec),
		location.WithLogger(log),
	)
	fetcher := overpass.NewClient(cfg.OverpassURL, cfg.UserAgent)
	fetcher.Log = log

	store := session.NewStore(cfg.MapZoom,
		session.WithTTL(cfg.SessionTTL),
		session.WithMaxSessions(cfg.MaxSessions),
	)
	srv := web.NewServer(
		finder.NewService(geocoder, fetcher, cfg.SearchRadius, log),
		store,
		log,
	)
	if cfg.Kafka.Broker != "" {
		producer := kafkaclient.NewProducer(cfg.Kafka.Topic, cfg.Kafka.Broker)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("failed to close kafka producer", "error", err)
			}
		}()
		srv.EnableExport(producer)
		log.Info("map export enabled", "broker", cfg.Kafka.Broker, "topic", cfg.Kafka.Topic)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		store.Run(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
