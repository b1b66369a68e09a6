// Package control defines the user actions a viewer reacts to,
// independent of the input device that produced them.
package control

// Action is a user request handled by the game loop.
type Action int

const (
	None Action = iota
	Quit
	Reset
	Pause
)

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case Reset:
		return "reset"
	case Pause:
		return "pause"
	default:
		return "none"
	}
}

// Source yields the actions requested since the previous call. Poll must
// not block.
type Source interface {
	Poll() []Action
}
