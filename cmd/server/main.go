package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/travelfront/internal/booking"
	"github.com/dharmasatrya/travelfront/internal/cache"
	"github.com/dharmasatrya/travelfront/internal/config"
	"github.com/dharmasatrya/travelfront/internal/fetcher"
	"github.com/dharmasatrya/travelfront/internal/handler"
	"github.com/dharmasatrya/travelfront/internal/handoff"
	"github.com/dharmasatrya/travelfront/internal/ratelimit"
	"github.com/dharmasatrya/travelfront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.UpstreamRPS,
		BurstSize:         cfg.UpstreamBurst,
	})
	rateLimiter.SetEndpointLimit("flights/search", cfg.SearchRPS, cfg.SearchBurst)

	searchClient := fetcher.NewClient(cfg.UpstreamBaseURL,
		fetcher.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
		fetcher.WithLogger(log),
		fetcher.WithRateLimiter(rateLimiter),
		fetcher.WithRetry(cfg.MaxRetries, []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		}),
	)
	dispatchers := fetcher.NewDispatcherPool(searchClient)

	var resultCache cache.Cache
	var handoffStore handoff.Store
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", "error", err)
		}
		resultCache = redisCache

		redisStore, err := handoff.NewRedisStore(handoff.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.HandoffTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", "error", err)
		}
		handoffStore = redisStore
		log.Info("redis enabled", "host", cfg.RedisHost, "port", cfg.RedisPort, "ttl", cfg.RedisTTL)
	} else {
		resultCache = cache.NewNoOpCache()
		handoffStore = handoff.NewMemoryStore(cfg.HandoffTTL)
		log.Info("redis disabled, using in-memory handoff store")
	}

	bookingClient := booking.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamToken,
		booking.WithRateLimiter(rateLimiter),
	)

	searchHandler := handler.NewSearchHandler(dispatchers, resultCache, log)
	bookingHandler := handler.NewBookingHandler(bookingClient, log)
	handoffHandler := handler.NewHandoffHandler(handoffStore, log)

	api := e.Group("/api/v1")
	api.GET("/flights/search", searchHandler.Search)
	api.POST("/bookings", bookingHandler.CreateBooking)
	api.POST("/holidays/bookings", bookingHandler.CreateHolidayBooking)
	api.POST("/visas/applications", bookingHandler.CreateVisaApplication)
	api.POST("/packages/requests", bookingHandler.CreatePackageRequest)
	api.POST("/bookings/handoff", handoffHandler.Save)
	api.GET("/bookings/handoff/:token", handoffHandler.Resume)

	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info("starting travelfront server", "port", cfg.Port, "upstream", cfg.UpstreamBaseURL)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
