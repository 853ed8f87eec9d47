package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/render"
	"github.com/Garsondee/Skirmish/internal/ui"
)

func main() {
	var (
		configPath string
		spriteDir  string
		logLevel   string
		seed       int64
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&spriteDir, "sprites", "", "sprite directory (overrides sprite_dir)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Int64Var(&seed, "seed", 0, "spawn placement seed (0 = time based)")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, logLevel)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if spriteDir != "" {
		cfg.SpriteDir = spriteDir
	}

	opts := []ui.Option{ui.WithLogger(logger)}
	if cfg.SpriteDir != "" {
		opts = append(opts, ui.WithSprites(render.NewDirSprites(cfg.SpriteDir, logger)))
	}
	if clip := (control.SystemClipboard{}); clip.Available() {
		opts = append(opts, ui.WithClipboard(clip))
	} else {
		logger.Warn("clipboard unavailable, copy disabled")
	}
	if seed != 0 {
		opts = append(opts, ui.WithSeed(seed))
	}

	g := ui.New(cfg, opts...)
	ebiten.SetWindowTitle("Skirmish")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
