// Package window handles the SDL2 window and its 2D renderer.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/internal/scene"
	"github.com/Faultbox/bezier-trace/pkg/math"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and an accelerated renderer. It implements
// scene.Canvas; drawing coordinates are in a logical space of
// Width×Height regardless of the actual window size.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	log       *zap.Logger
}

var _ scene.Canvas = (*Window)(nil)

// New creates a new window with a 2D renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rflags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	if err := w.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		w.log.Warn("alpha blending unavailable", zap.Error(err))
	}
	if err := w.renderer.SetLogicalSize(int32(cfg.Width), int32(cfg.Height)); err != nil {
		w.log.Warn("failed to set logical size", zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the renderer and window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

func (w *Window) setColor(c scene.Color) {
	r, g, b, a := c.RGBA8()
	w.renderer.SetDrawColor(r, g, b, a)
}

// Clear fills the whole frame with c.
func (w *Window) Clear(c scene.Color) {
	w.setColor(c)
	w.renderer.Clear()
}

// DrawLine draws a one pixel wide segment.
func (w *Window) DrawLine(a, b math.Vec2, c scene.Color) {
	w.setColor(c)
	w.renderer.DrawLineF(a.X, a.Y, b.X, b.Y)
}

// FillSquare fills a square with its top-left corner at p.
func (w *Window) FillSquare(p math.Vec2, size float32, c scene.Color) {
	w.setColor(c)
	w.renderer.FillRectF(&sdl.FRect{X: p.X, Y: p.Y, W: size, H: size})
}

// Present shows the frame drawn since the last Clear.
func (w *Window) Present() error {
	w.renderer.Present()
	return nil
}

// SetTitle sets the window title. The game loop uses it for status.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
