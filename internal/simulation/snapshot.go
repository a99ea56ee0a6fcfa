package simulation

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"chosenoffset.com/pong/internal/core/vec"
)

// ErrInvalidWorld is wrapped by every error returned from World.Validate.
var ErrInvalidWorld = errors.New("invalid world")

// Snapshot is the serialized form of a World.
type Snapshot struct {
	Step        uint64         `toml:"step"`
	Ball        EntitySnapshot `toml:"ball"`
	PaddleLeft  EntitySnapshot `toml:"paddle_left"`
	PaddleRight EntitySnapshot `toml:"paddle_right"`
}

// EntitySnapshot is the serialized form of an Entity.
type EntitySnapshot struct {
	Position Point `toml:"position"`
	Extent   Point `toml:"extent"`
	Velocity Point `toml:"velocity"`
}

// Point is a TOML-friendly vector.
type Point struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

func pointOf(v vec.Vec2) Point { return Point{X: v.X, Y: v.Y} }

func (p Point) toVec() vec.Vec2 { return vec.New(p.X, p.Y) }

func entitySnapshot(e Entity) EntitySnapshot {
	return EntitySnapshot{
		Position: pointOf(e.Position),
		Extent:   pointOf(e.Extent),
		Velocity: pointOf(e.Velocity),
	}
}

func (e EntitySnapshot) entity() Entity {
	return Entity{
		Position: e.Position.toVec(),
		Extent:   e.Extent.toVec(),
		Velocity: e.Velocity.toVec(),
	}
}

// Snapshot captures w after the given number of steps.
func (w World) Snapshot(step uint64) Snapshot {
	return Snapshot{
		Step:        step,
		Ball:        entitySnapshot(w.Ball),
		PaddleLeft:  entitySnapshot(w.PaddleLeft),
		PaddleRight: entitySnapshot(w.PaddleRight),
	}
}

// World rebuilds the world captured by s.
func (s Snapshot) World() World {
	return World{
		Ball:        s.Ball.entity(),
		PaddleLeft:  s.PaddleLeft.entity(),
		PaddleRight: s.PaddleRight.entity(),
	}
}

// EncodeSnapshot writes s as TOML.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a TOML snapshot. Keys that are not part of the
// snapshot format are rejected.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: unknown key %q", undecoded[0].String())
	}
	return s, nil
}

// Validate reports NaN or infinite fields, empty extents and paddles outside
// their vertical range. A failure here is always a bug in whatever produced w.
func (w World) Validate(cfg Config) error {
	named := []struct {
		name string
		e    Entity
	}{
		{"ball", w.Ball},
		{"paddle_left", w.PaddleLeft},
		{"paddle_right", w.PaddleRight},
	}
	for _, n := range named {
		e := n.e
		if !e.Position.IsFinite() || !e.Extent.IsFinite() || !e.Velocity.IsFinite() {
			return fmt.Errorf("%w: %s has non-finite fields", ErrInvalidWorld, n.name)
		}
		if e.Extent.X <= 0 || e.Extent.Y <= 0 {
			return fmt.Errorf("%w: %s has empty extent %v", ErrInvalidWorld, n.name, e.Extent)
		}
	}
	for _, n := range named[1:] {
		maxY := cfg.Window.Height - n.e.Extent.Y
		if n.e.Position.Y < 0 || n.e.Position.Y > maxY {
			return fmt.Errorf("%w: %s y=%v outside [0, %v]", ErrInvalidWorld, n.name, n.e.Position.Y, maxY)
		}
	}
	return nil
}
