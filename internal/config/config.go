// Package config assembles runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"restaurantmap/internal/env"
	"restaurantmap/internal/session"
	"restaurantmap/pkg/location"
	"restaurantmap/pkg/overpass"
)

type Config struct {
	Env      string `validate:"required"`
	HTTPAddr string `validate:"required"`

	NominatimURL      string  `validate:"required,url"`
	OverpassURL       string  `validate:"required,url"`
	UserAgent         string  `validate:"required"`
	SearchRadius      int     `validate:"gt=0"`
	MapZoom           int     `validate:"gte=1,lte=19"`
	GeocodeRatePerSec float64 `validate:"gte=0"`

	CORSOrigins []string `validate:"dive,url|eq=*"`

	SessionTTL  time.Duration `validate:"gt=0"`
	MaxSessions int           `validate:"gt=0"`

	MinIO MinIO
	Kafka Kafka
}

type MinIO struct {
	Endpoint  string `validate:"required_with=AccessKey SecretKey"`
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string `validate:"required"`
}

// Enabled reports whether map export is configured.
func (m MinIO) Enabled() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != ""
}

type Kafka struct {
	Broker  string
	Topic   string `validate:"required_with=Broker"`
	GroupID string `validate:"required_with=Broker"`
}

// Load reads .env (if present) and the process environment, applying
// defaults for everything the map needs to run against the public services.
func Load() (*Config, error) {
	env.LoadEnv()

	cfg := &Config{
		Env:               env.String("APP_ENV", "development"),
		HTTPAddr:          env.String("HTTP_ADDR", ":8080"),
		NominatimURL:      env.String("NOMINATIM_URL", location.DefaultBaseURL),
		OverpassURL:       env.String("OVERPASS_URL", overpass.DefaultURL),
		UserAgent:         env.String("USER_AGENT", location.DefaultUserAgent),
		SearchRadius:      env.Int("SEARCH_RADIUS_METERS", overpass.DefaultRadius),
		MapZoom:           env.Int("MAP_ZOOM", session.DefaultZoom),
		GeocodeRatePerSec: env.Float("GEOCODE_RATE_PER_SEC", 1),
		CORSOrigins:       env.List("CORS_ORIGINS"),
		SessionTTL:        time.Duration(env.Int("SESSION_TTL_MINUTES", int(session.DefaultTTL/time.Minute))) * time.Minute,
		MaxSessions:       env.Int("MAX_SESSIONS", session.DefaultMaxSessions),
		MinIO: MinIO{
			Endpoint:  env.String("MINIO_ENDPOINT", ""),
			AccessKey: env.String("MINIO_ACCESS_KEY", ""),
			SecretKey: env.String("MINIO_SECRET_KEY", ""),
			UseSSL:    env.Bool("MINIO_USE_SSL", false),
			Bucket:    env.String("MAP_BUCKET", "restaurant-maps"),
		},
		Kafka: Kafka{
			Broker:  env.String("KAFKA_BROKER", ""),
			Topic:   env.String("KAFKA_TOPIC", ""),
			GroupID: env.String("KAFKA_GROUP_ID", ""),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
