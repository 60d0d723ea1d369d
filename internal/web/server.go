// Package web serves the interactive map and a small JSON API over the same
// per-session search state.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"restaurantmap/internal/finder"
	"restaurantmap/internal/render"
	"restaurantmap/internal/restaurant"
	"restaurantmap/internal/session"
)

const cookieName = "restaurantmap_session"

// Publisher queues export requests; kafkaclient.Producer satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Server struct {
	finder  *finder.Service
	store   *session.Store
	exports Publisher
	log     *slog.Logger
}

func NewServer(svc *finder.Service, store *session.Store, log *slog.Logger) *Server {
	return &Server{finder: svc, store: store, log: log}
}

// EnableExport turns on POST /api/export. Without a publisher the endpoint
// answers 503.
func (s *Server) EnableExport(p Publisher) {
	s.exports = p
}

// Handler builds the gin engine and wraps it for tracing.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.log))
	if len(corsOrigins) > 0 {
		engine.Use(cors.New(corsConfig(corsOrigins)))
	}

	engine.GET("/", s.index)
	engine.POST("/search", s.search)

	api := engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/restaurants", s.restaurants)
	api.GET("/map", s.mapData)
	api.POST("/location", s.relocate)
	api.POST("/export", s.export)

	return otelhttp.NewHandler(engine, "restaurantmap")
}

// corsConfig allows the listed origins with credentials, or any origin
// without credentials when the list contains "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(c *gin.Context) *session.Session {
	id, _ := c.Cookie(cookieName)
	sess, created := s.store.Get(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sess.ID, 0, "/", "", false, true)
	}
	return sess
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func selectionOrAll(v string) string {
	if v == "" {
		return restaurant.AllCuisines
	}
	return v
}

func (s *Server) writePage(c *gin.Context, view finder.View, notices []finder.Notice) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.Page(c.Writer, view, render.PageOptions{Interactive: true, Notices: notices}); err != nil {
		s.log.Error("render page", "error", err)
	}
}
