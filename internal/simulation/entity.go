package simulation

import (
	"chosenoffset.com/pong/internal/core/vec"
)

// Entity is a ball or a paddle: an axis-aligned box moving in pixel space.
type Entity struct {
	Position vec.Vec2 // top-left corner
	Extent   vec.Vec2 // width, height
	Velocity vec.Vec2 // pixels per second
}

// Left returns the x coordinate of the left edge.
func (e Entity) Left() float64 { return e.Position.X }

// Right returns the x coordinate of the right edge.
func (e Entity) Right() float64 { return e.Position.X + e.Extent.X }

// Top returns the y coordinate of the top edge.
func (e Entity) Top() float64 { return e.Position.Y }

// Bottom returns the y coordinate of the bottom edge.
func (e Entity) Bottom() float64 { return e.Position.Y + e.Extent.Y }

// CenterY returns the vertical center.
func (e Entity) CenterY() float64 { return e.Position.Y + e.Extent.Y/2 }

// OverlapsVertically reports whether the open vertical spans of e and o
// intersect. Touching edges do not count.
func (e Entity) OverlapsVertically(o Entity) bool {
	return e.Bottom() > o.Top() && e.Top() < o.Bottom()
}

// World is the whole simulation state. It owns its entities by value, so
// copying a World yields an independent snapshot.
type World struct {
	Ball        Entity
	PaddleLeft  Entity
	PaddleRight Entity
}

// NewBall creates a ball centered in the window with the serve velocity.
func NewBall(cfg Config) Entity {
	return Entity{
		Position: vec.New(
			(cfg.Window.Width-cfg.Ball.Width)/2,
			(cfg.Window.Height-cfg.Ball.Height)/2,
		),
		Extent:   vec.New(cfg.Ball.Width, cfg.Ball.Height),
		Velocity: cfg.Ball.Velocity,
	}
}

// NewLeftPaddle creates the keyboard paddle at its starting position.
func NewLeftPaddle(cfg Config) Entity {
	return Entity{
		Position: vec.New(cfg.Paddle.InsetX, cfg.Paddle.InitY),
		Extent:   vec.New(cfg.Paddle.Width, cfg.Paddle.Height),
	}
}

// NewRightPaddle creates the pointer paddle at its starting position.
func NewRightPaddle(cfg Config) Entity {
	return Entity{
		Position: vec.New(cfg.Window.Width-cfg.Paddle.InsetX-cfg.Paddle.Width, cfg.Paddle.InitY),
		Extent:   vec.New(cfg.Paddle.Width, cfg.Paddle.Height),
	}
}

// NewWorld creates the starting world.
func NewWorld(cfg Config) World {
	return World{
		Ball:        NewBall(cfg),
		PaddleLeft:  NewLeftPaddle(cfg),
		PaddleRight: NewRightPaddle(cfg),
	}
}
