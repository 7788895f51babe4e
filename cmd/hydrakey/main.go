package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/hydrakey/internal/api"
	"github.com/jroosing/hydrakey/internal/config"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/logging"
	"github.com/jroosing/hydrakey/internal/resolvers"
)

const shutdownTimeout = 10 * time.Second

type overrides struct {
	host     string
	port     int
	dbPath   string
	jsonLogs bool
	debug    bool
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set HYDRAKEY_CONFIG)")
		o          overrides
	)
	flag.StringVar(&o.host, "host", "", "Override API bind host")
	flag.IntVar(&o.port, "port", 0, "Override API bind port")
	flag.StringVar(&o.dbPath, "db", "", "Override key inventory database path")
	flag.BoolVar(&o.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flag.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := o.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		IncludePID:  cfg.Logging.IncludePID,
		ExtraFields: cfg.Logging.ExtraFields,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("hydrakey exited with error", "error", err)
		os.Exit(1)
	}
}

// apply overrides cfg with the flags that were set and revalidates it.
func (o overrides) apply(cfg *config.Config) error {
	if o.host != "" {
		cfg.API.Host = o.host
	}
	if o.port != 0 {
		cfg.API.Port = o.port
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.jsonLogs {
		cfg.Logging.Format = "json"
	}
	if o.debug {
		cfg.Logging.Level = "DEBUG"
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	fetcher := resolvers.NewKeyFetcher(resolvers.FetcherConfig{
		Servers:        cfg.Resolver.Servers,
		UDPTimeout:     cfg.Resolver.UDPTimeoutDuration,
		TCPTimeout:     cfg.Resolver.TCPTimeoutDuration,
		MaxRetries:     cfg.Resolver.MaxRetries,
		UDPPayloadSize: cfg.Resolver.UDPPayloadSize,
		Logger:         logger,
	})

	logger.Info("HydraKey starting",
		"db", cfg.Database.Path,
		"schema_version", db.SchemaVersion(),
		"upstreams", fetcher.Servers(),
		"api", cfg.API.Enabled,
	)

	if !cfg.API.Enabled {
		logger.Info("API disabled; nothing to serve")
		<-ctx.Done()
		return nil
	}

	srv := api.New(cfg, db, fetcher, logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", srv.Addr(), "auth", cfg.API.APIKey != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	return nil
}
