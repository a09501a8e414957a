package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/betboard/internal/api"
	"github.com/avolkov/betboard/internal/extractor"
	"github.com/avolkov/betboard/internal/parser/parsers/sportline"
	"github.com/avolkov/betboard/internal/pkg/cache"
	pkgconfig "github.com/avolkov/betboard/internal/pkg/config"
	"github.com/avolkov/betboard/internal/pkg/interfaces"
	"github.com/avolkov/betboard/internal/pkg/logging"
	"github.com/avolkov/betboard/internal/pkg/notify"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	runFor     time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("Board service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&appConfig.Logging, "board-service")
	slog.Info("Config loaded", "path", cfg.configPath)

	boardCache, detailCache, closeStores, err := buildStores(appConfig)
	if err != nil {
		return err
	}
	defer closeStores()

	fetcher := buildFetcher(appConfig)
	notifier := buildNotifier(appConfig)

	service := extractor.NewService(appConfig, extractor.Deps{
		Fetcher:     fetcher,
		BoardCache:  boardCache,
		DetailCache: detailCache,
		Notifier:    notifier,
	})

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(cancel)

	api.Run(ctx, api.New(service, &appConfig.Server), "board-service")

	<-ctx.Done()
	slog.Info("Board service stopped")
	return nil
}

func parseFlags() flags {
	var cfg flags

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Exit after this duration (0 = run until signalled)")
	flag.Parse()

	return cfg
}

func buildStores(cfg *pkgconfig.Config) (boardCache, detailCache cache.Store, closeFn func(), err error) {
	if cfg.Cache.Backend == "redis" {
		board, err := cache.NewRedisStore(
			cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
			cfg.Cache.Redis.KeyPrefix+":board", cfg.Cache.BoardTTL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create board cache: %w", err)
		}
		detail, err := cache.NewRedisStore(
			cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
			cfg.Cache.Redis.KeyPrefix+":detail", cfg.Cache.DetailTTL)
		if err != nil {
			_ = board.Close()
			return nil, nil, nil, fmt.Errorf("failed to create detail cache: %w", err)
		}
		slog.Info("Using redis cache", "addr", cfg.Cache.Redis.Addr)
		return board, detail, func() {
			_ = board.Close()
			_ = detail.Close()
		}, nil
	}

	slog.Info("Using in-memory cache",
		"board_ttl", cfg.Cache.BoardTTL, "detail_ttl", cfg.Cache.DetailTTL)
	return cache.NewMemoryStore(cfg.Cache.BoardTTL),
		cache.NewMemoryStore(cfg.Cache.DetailTTL),
		func() {}, nil
}

func buildFetcher(cfg *pkgconfig.Config) interfaces.Fetcher {
	httpClient := sportline.NewClient(&cfg.Upstream)
	if cfg.Browser.Enabled {
		slog.Info("Browser fetcher enabled", "board_url", cfg.Browser.BoardURL)
		return sportline.NewBrowserClient(&cfg.Browser, httpClient)
	}
	return httpClient
}

func buildNotifier(cfg *pkgconfig.Config) interfaces.Notifier {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" {
		return nil
	}
	notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Cooldown)
	if notifier == nil {
		slog.Warn("Telegram notifier disabled: setup failed")
		return nil
	}
	slog.Info("Telegram alerts enabled", "chat_id", cfg.Telegram.ChatID)
	return notifier
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()
}
