package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flightshare/flight-share/internal/api"
	"github.com/flightshare/flight-share/internal/config"
	"github.com/flightshare/flight-share/internal/flightstatus"
	"github.com/flightshare/flight-share/internal/itinerary"
	"github.com/flightshare/flight-share/internal/metrics"
	"github.com/flightshare/flight-share/internal/storage/sqlite"
	"github.com/flightshare/flight-share/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "flight-share: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting flight-share",
		logger.String("provider_base_url", cfg.Provider.BaseURL),
		logger.Int("cache_ttl_hours", cfg.Cache.TTLHours),
		logger.Bool("provider_credentials_present", cfg.Provider.HasCredentials()),
	)
	if !cfg.Provider.HasCredentials() {
		log.Warn("Provider credentials are not set; lookups will fail until they are",
			logger.String("client_id_env", config.EnvClientID),
			logger.String("client_secret_env", config.EnvClientSecret),
		)
	}

	// Airport reference store
	db, err := sqlite.Open(cfg.Airports.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	airports, err := sqlite.NewAirportStorage(db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize airport storage: %w", err)
	}
	if err := airports.SeedFromJSON(cfg.Airports.SeedFile); err != nil {
		return fmt.Errorf("failed to seed airport storage: %w", err)
	}

	// Lookup pipeline
	m := metrics.New(prometheus.DefaultRegisterer)
	cache := flightstatus.NewCache(cfg.CacheTTL(), log)
	client := flightstatus.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.ClientID,
		cfg.Provider.ClientSecret,
		cfg.ProviderTimeout(),
		log,
	)
	statusService := flightstatus.NewService(client, cache, m, log)

	// Itinerary assembly
	assembler := itinerary.NewAssembler(airports, log)

	// HTTP server
	router := api.NewRouter(statusService, assembler, airports, cfg, log)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
