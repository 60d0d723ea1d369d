package main

import (
	"context"
	"log/slog"
	"os"

	"restaurantmap/internal/config"
	"restaurantmap/internal/exporter"
	"restaurantmap/internal/finder"
	"restaurantmap/internal/logging"
	"restaurantmap/internal/service"
	"restaurantmap/internal/storage"
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

	if cfg.Kafka.Broker == "" {
		log.Error("KAFKA_BROKER must be set for the exporter")
		os.Exit(1)
	}
	if !cfg.MinIO.Enabled() {
		log.Error("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set for the exporter")
		os.Exit(1)
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	s3Service, err := storage.NewS3Service(storage.Options{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		UseSSL:    cfg.MinIO.UseSSL,
	}, log)
	if err != nil {
		log.Error("failed to create object storage client", "error", err)
		os.Exit(1)
	}
	if _, err := s3Service.CreateBucket(ctx, cfg.MinIO.Bucket, ""); err != nil {
		log.Error("failed to create bucket", "bucket", cfg.MinIO.Bucket, "error", err)
		os.Exit(1)
	}

	geocoder := location.NewClient(
		location.WithBaseURL(cfg.NominatimURL),
		location.WithUserAgent(cfg.UserAgent),
		location.WithRateLimit(cfg.GeocodeRatePerSec),
		location.WithLogger(log),
	)
	fetcher := overpass.NewClient(cfg.OverpassURL, cfg.UserAgent)
	fetcher.Log = log

	exp := exporter.New(
		finder.NewService(geocoder, fetcher, cfg.SearchRadius, log),
		s3Service,
		cfg.MinIO.Bucket,
		cfg.MapZoom,
		log,
	)

	log.Info("connecting to kafka", "broker", cfg.Kafka.Broker, "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
	consumer := kafkaclient.NewConsumer(cfg.Kafka.Topic, cfg.Kafka.GroupID, cfg.Kafka.Broker, log)
	consumer.StartConsuming(ctx)

	handled := service.NewIterator[service.SearchRequest](consumer, log).Run(ctx, exp.Handle)

	cancel()
	consumer.Stop()
	log.Info("exporter finished", "exported", handled)
}
