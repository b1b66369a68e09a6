// Package main is the terminal viewer. Control points are given in the
// configured window space and stretched over the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/animation"
	"github.com/Faultbox/bezier-trace/internal/config"
	"github.com/Faultbox/bezier-trace/internal/engine/terminal"
	"github.com/Faultbox/bezier-trace/internal/game"
	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/internal/scene"
)

// Terminals redraw slowly; without a limit the loop would spin.
const defaultTermFPS = 30

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen owns stdout, so only the log file (if any) gets output.
	opts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	anim, err := animation.New(cfg.DurationSeconds(), cfg.ControlPoints())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Animation error: %v\n", err)
		os.Exit(1)
	}

	screen, err := terminal.New(float32(cfg.Graphics.Width), float32(cfg.Graphics.Height))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		os.Exit(1)
	}

	fps := cfg.Graphics.FPSLimit
	if fps == 0 {
		fps = defaultTermFPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.New(game.Config{
		FPSLimit: fps,
		Palette:  scene.DefaultPalette(),
	}, anim, screen, screen)

	err = g.Run(ctx)
	screen.Close()
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
