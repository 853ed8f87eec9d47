package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/tui"
)

func main() {
	var (
		configPath string
		logPath    string
		logLevel   string
		seed       int64
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&logPath, "log", "arena-tui.log", "log file (the terminal is owned by the UI)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Int64Var(&seed, "seed", 0, "spawn placement seed (0 = time based)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	logger, err := config.NewLogger(logFile, logLevel)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []tui.Option{tui.WithLogger(logger)}
	if clip := (control.SystemClipboard{}); clip.Available() {
		opts = append(opts, tui.WithClipboard(clip))
	}
	if seed != 0 {
		opts = append(opts, tui.WithSeed(seed))
	}

	logger.Info("arena started", "field_w", cfg.Field.Width, "field_h", cfg.Field.Height)
	err = tui.New(ctx, screen, cfg, opts...).Run()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	logger.Info("arena stopped")
}
