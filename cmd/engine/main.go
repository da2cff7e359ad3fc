package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/engine"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/explorer"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/metrics"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/store"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/transport"
)

type config struct {
	Addr           string        `long:"addr" env:"ENGINE_ADDR" description:"HTTP listen address" default:":8080"`
	ExplorerURL    string        `long:"explorer-url" env:"ENGINE_EXPLORER_URL" description:"explorer API base URL" required:"true"`
	SeedPath       string        `long:"seed-path" env:"ENGINE_SEED_PATH" description:"read-only seed snapshot path" default:"data/snapshot.seed.json"`
	OverlayPath    string        `long:"overlay-path" env:"ENGINE_OVERLAY_PATH" description:"writable overlay snapshot path (empty for read-only runtimes)"`
	PageLimit      int           `long:"page-limit" env:"ENGINE_PAGE_LIMIT" description:"transactions per explorer page" default:"100"`
	RPS            int           `long:"rps" env:"ENGINE_RPS" description:"max explorer requests per second" default:"10"`
	MaxPages       int           `long:"max-pages" env:"ENGINE_MAX_PAGES" description:"page cap per incremental cycle" default:"10"`
	HTTPTimeout    time.Duration `long:"http-timeout" env:"ENGINE_HTTP_TIMEOUT" description:"explorer HTTP timeout" default:"30s"`
	UpdateInterval time.Duration `long:"update-interval" env:"ENGINE_UPDATE_INTERVAL" description:"interval between update cycles" default:"1h"`
	CronSpec       string        `long:"cron-spec" env:"ENGINE_CRON_SPEC" description:"cron spec for update cycles (overrides --update-interval)"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("engine service failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	// A missing snapshot in both tiers is a broken deployment; fail loudly
	// instead of serving empty analytics.
	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	handler, err := transport.NewHandler(eng, eng, logger.Named("transport"))
	if err != nil {
		return err
	}

	r := mux.NewRouter()
	handler.Routes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(r),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	go runScheduler(ctx, cfg, eng, logger)

	logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func buildEngine(cfg config, logger *zap.Logger) (*engine.Engine, error) {
	seed, err := store.NewSeedStore(cfg.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("init seed store: %w", err)
	}
	var overlay store.Store
	if cfg.OverlayPath != "" {
		o, err := store.NewOverlayStore(cfg.OverlayPath)
		if err != nil {
			return nil, fmt.Errorf("init overlay store: %w", err)
		}
		overlay = o
	} else {
		logger.Warn("no overlay path configured; snapshot updates will not persist")
	}
	tiered, err := store.NewTieredStore(seed, overlay, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	client, err := explorer.NewClient(explorer.Opts{
		BaseURL:     cfg.ExplorerURL,
		PageLimit:   cfg.PageLimit,
		RPS:         cfg.RPS,
		HTTPTimeout: cfg.HTTPTimeout,
	}, metrics.NewExplorer(), logger.Named("explorer"))
	if err != nil {
		return nil, fmt.Errorf("init explorer client: %w", err)
	}

	return engine.New(tiered, client, metrics.NewEngine(), logger.Named("engine"), engine.Opts{
		MaxPages: cfg.MaxPages,
	})
}

// runScheduler drives update cycles from either a cron spec or a plain
// interval loop. Both are thin adapters over ForceUpdate.
func runScheduler(ctx context.Context, cfg config, eng *engine.Engine, logger *zap.Logger) {
	if cfg.CronSpec != "" {
		c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
		_, err := c.AddFunc(cfg.CronSpec, func() {
			if err := eng.ForceUpdate(ctx); err != nil {
				logger.Warn("scheduled update cycle failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Error("invalid cron spec; falling back to interval updates",
				zap.String("cron_spec", cfg.CronSpec), zap.Error(err))
		} else {
			logger.Info("cron scheduler started", zap.String("cron_spec", cfg.CronSpec))
			c.Start()
			<-ctx.Done()
			<-c.Stop().Done()
			return
		}
	}

	runner := engine.NewRunner(eng, cfg.UpdateInterval, logger.Named("runner"))
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("update runner stopped", zap.Error(err))
	}
}
