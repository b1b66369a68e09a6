// Package main is the desktop viewer: it traces the configured curve in an
// SDL2 window. R restarts, Space pauses, Escape or the controller Back
// button quits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/animation"
	"github.com/Faultbox/bezier-trace/internal/config"
	"github.com/Faultbox/bezier-trace/internal/engine/input"
	"github.com/Faultbox/bezier-trace/internal/engine/window"
	"github.com/Faultbox/bezier-trace/internal/game"
	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/internal/scene"
)

const windowTitle = "Bézier Trace"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Bézier Trace ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// run opens the window and drives the loop until the user quits.
func run(cfg *config.Config) error {
	anim, err := animation.New(cfg.DurationSeconds(), cfg.ControlPoints())
	if err != nil {
		return fmt.Errorf("creating animation: %w", err)
	}

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	in := input.New()
	defer in.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.New(game.Config{
		FPSLimit: cfg.Graphics.FPSLimit,
		Palette:  scene.DefaultPalette(),
		Title:    windowTitle,
	}, anim, win, in)

	return g.Run(ctx)
}
