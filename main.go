package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"geoglobe/app"
	"geoglobe/globe/markerdata"
	"geoglobe/hal"
	"geoglobe/internal/buildinfo"
	"geoglobe/internal/config"
	"geoglobe/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (yaml, json or toml).")
		dataPath   = flag.String("data", "", "Marker data file; overrides data.path.")
		format     = flag.String("format", "", "auto|json|geojson|sqlite; overrides data.format.")
		logLevel   = flag.String("log-level", "", "debug|info|warn|error; overrides log.level.")
		headless   = flag.Bool("headless", false, "Run without a window.")
		hz         = flag.Int("hz", 0, "Tick rate; overrides window.hz.")
		ticks      = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
		sweep      = flag.Bool("sweep", false, "Move a synthetic pointer across the globe in headless mode.")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *format != "" {
		cfg.Data.Format = *format
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *hz > 0 {
		cfg.Window.Hz = *hz
	}

	log, closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fatalf("logging: %v", err)
	}
	defer closeLog()
	log.Info("starting", buildinfo.Attrs()...)

	if err := run(cfg, log, *headless, *ticks, *sweep); err != nil {
		log.Error("globe stopped", "error", err)
		_ = closeLog()
		fatalf("%v", err)
	}
}

func run(cfg *config.Config, log *slog.Logger, headless bool, ticks uint64, sweep bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmtKind, err := markerdata.ParseFormat(cfg.Data.Format)
	if err != nil {
		return err
	}
	recs, err := markerdata.Load(ctx, cfg.Data.Path, fmtKind)
	if err != nil {
		return fmt.Errorf("load markers: %w", err)
	}
	log.Info("markers loaded", "path", cfg.Data.Path, "count", len(recs))

	newApp := app.NewStep(cfg, recs, log)
	if headless {
		err := hal.RunHeadless(ctx, hal.HeadlessConfig{
			Hz:     cfg.Window.Hz,
			Ticks:  ticks,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Sweep:  sweep,
		}, newApp)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(hal.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  buildinfo.Title(cfg.Window.Title),
		TPS:    cfg.Window.Hz,
	}, newApp)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
