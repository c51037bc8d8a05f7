package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/lucaruboni/restaurant-advisor/internal/catalog"
	"github.com/lucaruboni/restaurant-advisor/internal/config"
	"github.com/lucaruboni/restaurant-advisor/internal/http/middleware"
	"github.com/lucaruboni/restaurant-advisor/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

// NewServer wires the form and validation surfaces. rds may be nil, which
// disables rate limiting (dev mode).
func NewServer(cfg config.Config, cat *catalog.Catalog, submitter Submitter, validator Validator, rds *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())
	e.Renderer = newRenderer()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// static assets (restaurant images, css)
	e.Static("/static", cfg.HTTP.StaticDir)

	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// HTML pages
	e.GET("/form/:restaurant_id", formPageHandler(cat))
	e.GET("/thankyou", thankYouPageHandler(cat))
	e.GET("/validate/:restaurant_id", validatePageHandler(cat))

	// form surfaces
	e.POST("/submit", submitHandler(submitter), rlMW)
	e.POST("/validate", validateHandler(validator), rlMW)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
