// Package main traces the configured curve without a display, ticking the
// animation at the configured fixed step until it finishes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bezier-trace/internal/animation"
	"github.com/Faultbox/bezier-trace/internal/config"
	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/pkg/math"
)

var flagDump = flag.Bool("dump", false, "Write the sampled path as YAML to stdout")

// maxTicks guards against a step so small relative to the duration that
// the run would never end in practice.
const maxTicks = 10_000_000

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Keep stdout clean for the dump.
	opts := logger.Options{Level: cfg.Logging.Level, Console: os.Stderr}
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
		logger.Error("failed to create animation", zap.Error(err))
		os.Exit(1)
	}

	ticks, err := run(anim, cfg.StepSeconds(), maxTicks)
	if err != nil {
		logger.Error("trace failed", zap.Error(err))
		os.Exit(1)
	}

	last, _ := anim.MostRecentPoint()
	logger.Info("trace finished",
		zap.Int("ticks", ticks),
		zap.Int("samples", len(anim.SampledPath())),
		zap.Float32("elapsed", anim.Elapsed()),
		zap.Float32("end_x", last.X),
		zap.Float32("end_y", last.Y),
	)

	if *flagDump {
		if err := dump(os.Stdout, anim.SampledPath()); err != nil {
			logger.Error("failed to write path", zap.Error(err))
			os.Exit(1)
		}
	}
}

// run ticks a by step until it finishes and returns the tick count.
func run(a *animation.State, step float32, limit int) (int, error) {
	ticks := 0
	for !a.Finished() {
		if ticks >= limit {
			return ticks, fmt.Errorf("not finished after %d ticks (t=%v)", ticks, a.T())
		}
		a.Update(step)
		ticks++
	}
	return ticks, nil
}

type dumpPoint struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type dumpDoc struct {
	Samples int         `yaml:"samples"`
	Path    []dumpPoint `yaml:"path"`
}

// dump writes path as a YAML document.
func dump(w io.Writer, path []math.Vec2) error {
	doc := dumpDoc{Samples: len(path), Path: make([]dumpPoint, len(path))}
	for i, p := range path {
		doc.Path[i] = dumpPoint{p.X, p.Y}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
