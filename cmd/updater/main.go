// Command updater runs exactly one update cycle and exits. It is the
// adapter for externally scheduled triggers (operational cron); the
// long-running service in cmd/engine drives the same cycle from its own
// timer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/engine"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/explorer"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/metrics"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/store"
)

type config struct {
	ExplorerURL string        `long:"explorer-url" env:"UPDATER_EXPLORER_URL" description:"explorer API base URL" required:"true"`
	SeedPath    string        `long:"seed-path" env:"UPDATER_SEED_PATH" description:"read-only seed snapshot path" default:"data/snapshot.seed.json"`
	OverlayPath string        `long:"overlay-path" env:"UPDATER_OVERLAY_PATH" description:"writable overlay snapshot path" required:"true"`
	PageLimit   int           `long:"page-limit" env:"UPDATER_PAGE_LIMIT" description:"transactions per explorer page" default:"100"`
	RPS         int           `long:"rps" env:"UPDATER_RPS" description:"max explorer requests per second" default:"10"`
	MaxPages    int           `long:"max-pages" env:"UPDATER_MAX_PAGES" description:"page cap per incremental cycle" default:"10"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"UPDATER_HTTP_TIMEOUT" description:"explorer HTTP timeout" default:"30s"`
	Timeout     time.Duration `long:"timeout" env:"UPDATER_TIMEOUT" description:"overall cycle timeout" default:"10m"`
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
		logger.Fatal("one-shot update failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	seed, err := store.NewSeedStore(cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("init seed store: %w", err)
	}
	overlay, err := store.NewOverlayStore(cfg.OverlayPath)
	if err != nil {
		return fmt.Errorf("init overlay store: %w", err)
	}
	tiered, err := store.NewTieredStore(seed, overlay, logger.Named("store"))
	if err != nil {
		return err
	}

	client, err := explorer.NewClient(explorer.Opts{
		BaseURL:     cfg.ExplorerURL,
		PageLimit:   cfg.PageLimit,
		RPS:         cfg.RPS,
		HTTPTimeout: cfg.HTTPTimeout,
	}, metrics.NewExplorer(), logger.Named("explorer"))
	if err != nil {
		return fmt.Errorf("init explorer client: %w", err)
	}

	eng, err := engine.New(tiered, client, metrics.NewEngine(), logger.Named("engine"), engine.Opts{
		MaxPages: cfg.MaxPages,
	})
	if err != nil {
		return err
	}

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	return eng.ForceUpdate(ctx)
}
