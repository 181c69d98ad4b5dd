package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/org/floodgate/internal/api"
	"github.com/org/floodgate/internal/auth"
	"github.com/org/floodgate/internal/fsguard"
	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/internal/torrents"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type config struct {
	ListenAddr    string   `yaml:"listen_addr"`
	TLSCertFile   string   `yaml:"tls_cert"`
	TLSKeyFile    string   `yaml:"tls_key"`
	DBUrl         string   `yaml:"db_url"`
	AuthSecret    string   `yaml:"auth_secret"`
	SessionTTL    string   `yaml:"session_ttl"`
	AllowedPaths  []string `yaml:"allowed_paths"`
	DownloadDir   string   `yaml:"download_dir"`
	MigrationsDir string   `yaml:"migrations_dir"`
	LogLevel      string   `yaml:"log_level"`
}

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load config
	cfgFile := "config.yaml"
	if v := os.Getenv("FLOODGATE_CONFIG"); v != "" {
		cfgFile = v
	}

	cfg := config{
		ListenAddr:    ":3000",
		SessionTTL:    "168h",
		MigrationsDir: "migrations",
		LogLevel:      "info",
	}

	if data, err := os.ReadFile(cfgFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to parse config")
		}
	} else {
		log.Warn().Str("file", cfgFile).Msg("config file not found, using defaults")
	}

	// Env overrides
	if v := os.Getenv("FLOODGATE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DBUrl = v
	}
	if v := os.Getenv("FLOODGATE_AUTH_SECRET"); v != "" {
		cfg.AuthSecret = v
	}
	if v := os.Getenv("FLOODGATE_ALLOWED_PATHS"); v != "" {
		cfg.AllowedPaths = strings.Split(v, ",")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.DBUrl == "" {
		log.Fatal().Msg("db_url must be configured (or DATABASE_URL env var)")
	}
	if cfg.AuthSecret == "" {
		log.Fatal().Msg("auth_secret must be configured (or FLOODGATE_AUTH_SECRET env var)")
	}
	if len(cfg.AllowedPaths) == 0 {
		log.Fatal().Msg("allowed_paths must contain at least one directory")
	}

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid session_ttl")
	}

	guard, err := fsguard.New(cfg.AllowedPaths)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid allowed_paths")
	}

	downloadDir := cfg.DownloadDir
	if downloadDir == "" {
		downloadDir = cfg.AllowedPaths[0]
	}

	ctx := context.Background()

	// Connect to database
	store, err := storage.NewPostgresBackend(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	version, err := storage.Migrate(cfg.DBUrl, cfg.MigrationsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Uint("version", version).Msg("schema up to date")

	signer := auth.NewSigner([]byte(cfg.AuthSecret), sessionTTL)
	adapter := torrents.NewDirAdapter(downloadDir)

	srv := api.NewServer(store, signer, guard, adapter, api.Config{
		ListenAddr:  cfg.ListenAddr,
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
		SessionTTL:  sessionTTL,
	})

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	log.Info().Str("addr", cfg.ListenAddr).Strs("roots", guard.Roots()).Msg("server started")
	<-quit

	log.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
