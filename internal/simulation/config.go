// Package simulation provides the Pong world model and the fixed-step rules
// that advance it. Nothing here touches the wall clock or a window.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"chosenoffset.com/pong/internal/core/vec"
)

// Window
const (
	WindowTitle  = "Pong"
	WindowWidth  = 800
	WindowHeight = 600
)

// Simulation clock
const (
	StepDuration     = time.Millisecond
	MaxStepsPerFrame = 250 // catch-up cap, see Loop
)

// Paddles. Speed is in pixels per second.
const (
	PaddleWidth     = 7
	PaddleHeight    = 70
	PaddleInsetX    = 20
	PaddleInitY     = 250
	PaddleSpeed     = 900
	PointerDeadzone = 10
)

// Ball. Velocity is in pixels per second.
const (
	BallWidth  = 5
	BallHeight = 5
	BallVelX   = -250
	BallVelY   = 180
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds all simulation rules for a game
type Config struct {
	Window WindowConfig
	Paddle PaddleConfig
	Ball   BallConfig

	// Step is the simulated duration of one quantum.
	Step time.Duration

	// MaxStepsPerFrame bounds the catch-up loop. Zero or less disables the cap.
	MaxStepsPerFrame int
}

// WindowConfig is the fixed play field.
type WindowConfig struct {
	Title  string
	Width  float64
	Height float64
}

// PaddleConfig defines paddle geometry, placement and control.
type PaddleConfig struct {
	Width    float64
	Height   float64
	InsetX   float64 // distance from the left/right window edge
	InitY    float64
	Speed    float64 // pixels per second
	Deadzone float64 // pointer dead-zone in pixels
}

// BallConfig defines ball geometry and serve velocity.
type BallConfig struct {
	Width    float64
	Height   float64
	Velocity vec.Vec2 // pixels per second
}

// DefaultConfig returns the compile-time game constants.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  WindowTitle,
			Width:  WindowWidth,
			Height: WindowHeight,
		},
		Paddle: PaddleConfig{
			Width:    PaddleWidth,
			Height:   PaddleHeight,
			InsetX:   PaddleInsetX,
			InitY:    PaddleInitY,
			Speed:    PaddleSpeed,
			Deadzone: PointerDeadzone,
		},
		Ball: BallConfig{
			Width:    BallWidth,
			Height:   BallHeight,
			Velocity: vec.New(BallVelX, BallVelY),
		},
		Step:             StepDuration,
		MaxStepsPerFrame: MaxStepsPerFrame,
	}
}

// StepSeconds returns the step duration in seconds.
func (c Config) StepSeconds() float64 {
	return c.Step.Seconds()
}

// Validate checks that the config describes a playable field.
func (c Config) Validate() error {
	switch {
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidConfig, c.Step)
	case !positive(c.Window.Width) || !positive(c.Window.Height):
		return fmt.Errorf("%w: window must be positive, got %vx%v", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case !positive(c.Paddle.Width) || !positive(c.Paddle.Height):
		return fmt.Errorf("%w: paddle size must be positive, got %vx%v", ErrInvalidConfig, c.Paddle.Width, c.Paddle.Height)
	case c.Paddle.Height > c.Window.Height:
		return fmt.Errorf("%w: paddle height %v exceeds window height %v", ErrInvalidConfig, c.Paddle.Height, c.Window.Height)
	case c.Paddle.InsetX < 0 || 2*(c.Paddle.InsetX+c.Paddle.Width) > c.Window.Width:
		return fmt.Errorf("%w: paddle inset %v does not fit the window", ErrInvalidConfig, c.Paddle.InsetX)
	case c.Paddle.InitY < 0 || c.Paddle.InitY+c.Paddle.Height > c.Window.Height:
		return fmt.Errorf("%w: paddle initial y %v outside the window", ErrInvalidConfig, c.Paddle.InitY)
	case c.Paddle.Speed < 0 || math.IsInf(c.Paddle.Speed, 0) || math.IsNaN(c.Paddle.Speed):
		return fmt.Errorf("%w: paddle speed must be finite and non-negative, got %v", ErrInvalidConfig, c.Paddle.Speed)
	case c.Paddle.Deadzone < 0:
		return fmt.Errorf("%w: pointer dead-zone must be non-negative, got %v", ErrInvalidConfig, c.Paddle.Deadzone)
	case !positive(c.Ball.Width) || !positive(c.Ball.Height):
		return fmt.Errorf("%w: ball size must be positive, got %vx%v", ErrInvalidConfig, c.Ball.Width, c.Ball.Height)
	case c.Ball.Width >= c.Window.Width || c.Ball.Height >= c.Window.Height:
		return fmt.Errorf("%w: ball does not fit the window", ErrInvalidConfig)
	case !c.Ball.Velocity.IsFinite():
		return fmt.Errorf("%w: ball velocity must be finite, got %v", ErrInvalidConfig, c.Ball.Velocity)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
