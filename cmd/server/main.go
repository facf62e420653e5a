package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/travelsearch/internal/airports"
	"github.com/dharmasatrya/travelsearch/internal/config"
	"github.com/dharmasatrya/travelsearch/internal/dates"
	"github.com/dharmasatrya/travelsearch/internal/handler"
	"github.com/dharmasatrya/travelsearch/internal/history"
	"github.com/dharmasatrya/travelsearch/internal/providers"
	"github.com/dharmasatrya/travelsearch/internal/ratelimit"
	"github.com/dharmasatrya/travelsearch/internal/search"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	client := providers.NewSerpClient(providers.SerpConfig{
		BaseURL:    cfg.Search.APIURL,
		APIKey:     cfg.Search.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Search.Timeout},
		Limiter:    newRateLimiter(cfg.RateLimit),
	})
	log.Printf("Search provider %s at %s", client.Name(), cfg.Search.APIURL)

	airportResolver := airports.NewStaticResolver()
	if len(cfg.Airports.Places) > 0 {
		airportResolver = airportResolver.WithPlaces(cfg.Airports.Places)
		log.Printf("Loaded %d extra airport places", len(cfg.Airports.Places))
	}

	store := initHistory(cfg.History)

	searchConfig := search.DefaultConfig()
	searchConfig.Timeout = cfg.Search.Timeout
	searchConfig.MaxRetries = cfg.Search.MaxRetries
	searchConfig.Currency = cfg.Search.Currency
	searchConfig.Locale = cfg.Search.Locale

	service := search.NewService(
		client,
		airportResolver,
		dates.NewResolver(nil),
		store,
		searchConfig,
	)

	searchHandler := handler.NewSearchHandler(service)
	searchHandler.Register(e.Group("/api/v1"))
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting travel search server on port %s", cfg.HTTP.Port)

	if err := run(ctx, e, ":"+cfg.HTTP.Port, store); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}

// run serves until ctx is done or the listener fails, then shuts the server
// down and closes the history store.
func run(ctx context.Context, e *echo.Echo, addr string, store history.Store) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if closeErr := store.Close(); closeErr != nil {
		log.Printf("Failed to close history store: %v", closeErr)
	}
	return err
}

func newRateLimiter(cfg config.RateLimit) *ratelimit.EngineLimiter {
	return ratelimit.NewEngineLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RequestsPerSecond,
		BurstSize:         cfg.BurstSize,
		Engines: map[string]ratelimit.Limit{
			providers.EngineFlights: {RequestsPerSecond: cfg.Flights.RequestsPerSecond, BurstSize: cfg.Flights.BurstSize},
			providers.EngineHotels:  {RequestsPerSecond: cfg.Hotels.RequestsPerSecond, BurstSize: cfg.Hotels.BurstSize},
		},
	})
}

func initHistory(cfg config.History) history.Store {
	if !cfg.Enabled {
		log.Println("Search history disabled")
		return history.NewNoOpStore()
	}

	store, err := history.NewRedisStore(history.RedisConfig{
		Host:       cfg.RedisHost,
		Port:       cfg.RedisPort,
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		TTL:        cfg.TTL,
		MaxEntries: cfg.MaxEntries,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Search history enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.TTL)
	return store
}
