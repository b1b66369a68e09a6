// Package input turns SDL2 events into control actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/bezier-trace/internal/control"
)

// Input polls SDL events. Keys act on press only; auto-repeat is ignored so
// holding Space does not toggle pause every frame. Game controllers are
// opened as they are plugged in.
type Input struct {
	actions     []control.Action
	controllers map[sdl.JoystickID]*sdl.GameController
}

var _ control.Source = (*Input)(nil)

// New creates a new input handler.
func New() *Input {
	return &Input{
		actions:     make([]control.Action, 0, 4),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
	}
}

// Close releases any open game controllers.
func (i *Input) Close() {
	for id, gc := range i.controllers {
		gc.Close()
		delete(i.controllers, id)
	}
}

// Poll drains pending SDL events and returns the resulting actions. The
// returned slice is reused by the next call.
func (i *Input) Poll() []control.Action {
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.actions = append(i.actions, control.Quit)

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a := KeyAction(e.Keysym.Scancode); a != control.None {
				i.actions = append(i.actions, a)
			}

		case *sdl.ControllerDeviceEvent:
			i.handleDevice(e)

		case *sdl.ControllerButtonEvent:
			if e.Type != sdl.CONTROLLERBUTTONDOWN {
				continue
			}
			if a := ButtonAction(sdl.GameControllerButton(e.Button)); a != control.None {
				i.actions = append(i.actions, a)
			}
		}
	}

	return i.actions
}

// handleDevice opens controllers on hot-plug. Added events carry the
// device index, removed events the instance id.
func (i *Input) handleDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		gc := sdl.GameControllerOpen(int(e.Which))
		if gc == nil {
			return
		}
		i.controllers[gc.Joystick().InstanceID()] = gc
	case sdl.CONTROLLERDEVICEREMOVED:
		if gc, ok := i.controllers[e.Which]; ok {
			gc.Close()
			delete(i.controllers, e.Which)
		}
	}
}

// ButtonAction maps a game controller button to its action.
func ButtonAction(b sdl.GameControllerButton) control.Action {
	if b == sdl.CONTROLLER_BUTTON_BACK {
		return control.Quit
	}
	return control.None
}

// KeyAction maps a scancode to its action.
func KeyAction(sc sdl.Scancode) control.Action {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return control.Quit
	case sdl.SCANCODE_R:
		return control.Reset
	case sdl.SCANCODE_SPACE:
		return control.Pause
	}
	return control.None
}
