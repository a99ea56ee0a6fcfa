package render

import (
	"errors"
	"image/color"
	"time"
)

// ErrQuit is returned from Game.Update to end the game loop. Engines treat it
// as a normal shutdown and return nil from RunGame.
var ErrQuit = errors.New("quit")

// Renderer is the drawing interface that abstracts the underlying graphics
// backend. This allows swapping backends without changing game logic.
type Renderer interface {
	// FillRect fills the axis-aligned rectangle at (x, y) with size w x h.
	FillRect(dst Image, x, y, w, h int, clr color.Color)

	// DrawText draws debug text with the backend's default font.
	DrawText(dst Image, text string, x, y int)
}

// Image represents a renderable surface.
type Image interface {
	Size() (width, height int)

	// Fill fills the entire image with the given color.
	Fill(clr color.Color)

	// Clear clears the image to transparent (or the backend's blank state).
	Clear()
}

// EventKind distinguishes input events.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return "unknown"
	}
}

// Event is a discrete input event. Time is measured on the backend's Clock so
// it can be compared with the simulation clock.
type Event struct {
	Kind EventKind
	Key  Key
	Time time.Duration
}

// InputManager handles input from the user (keyboard, mouse, window).
type InputManager interface {
	// PollEvents appends every event the backend has received since the last
	// call to dst and returns the extended slice.
	PollEvents(dst []Event) []Event

	// CursorPosition returns the pointer position in window pixels.
	CursorPosition() (x, y int)
}

// Clock is a monotonic clock. Now returns the time elapsed since the backend
// started.
type Clock interface {
	Now() time.Duration
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reacts to.
const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyUp
	KeyDown
	KeyEscape
	KeyF3 // debug overlay toggle
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyS:
		return "S"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyEscape:
		return "Escape"
	case KeyF3:
		return "F3"
	default:
		return "Unknown"
	}
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update runs one outer-loop iteration: input and zero or more
	// simulation steps. Returning ErrQuit stops the engine.
	Update() error

	// Draw draws the game screen. It is called once after every Update.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the window and drives the
// outer loop.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
