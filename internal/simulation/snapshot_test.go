package simulation

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestSnapshotRestoresSteppedWorld(t *testing.T) {
	cfg := DefaultConfig()
	s := NewStepper(cfg)
	w := NewWorld(cfg)
	ApplyKeyboard(&w.PaddleLeft, KeyState{Down: true}, cfg.Paddle.Speed)
	for i := 0; i < 1234; i++ {
		s.Step(&w)
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, w.Snapshot(1234)); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if !strings.Contains(buf.String(), "[paddle_left.velocity]") {
		t.Errorf("Expected nested entity tables in output, got:\n%s", buf.String())
	}

	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if snap.Step != 1234 {
		t.Errorf("Expected step 1234, got %d", snap.Step)
	}
	restored := snap.World()
	if restored != w {
		t.Errorf("Expected restored world to equal the source\n%+v\n%+v", restored, w)
	}

	// Stepping the restored copy must stay in lockstep with the source.
	for i := 0; i < 1000; i++ {
		s.Step(&w)
		s.Step(&restored)
	}
	if restored != w {
		t.Error("Expected restored world to evolve identically")
	}
}

func TestDecodeSnapshotRejectsUnknownKeys(t *testing.T) {
	doc := `
step = 1
score = 3

[ball.position]
x = 1.0
y = 2.0
`
	if _, err := DecodeSnapshot(strings.NewReader(doc)); err == nil {
		t.Error("Expected an error for an unknown key")
	}
	if _, err := DecodeSnapshot(strings.NewReader("step = [")); err == nil {
		t.Error("Expected an error for malformed TOML")
	}
}

func TestWorldValidate(t *testing.T) {
	cfg := DefaultConfig()

	if err := NewWorld(cfg).Validate(cfg); err != nil {
		t.Errorf("Expected a fresh world to be valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*World)
	}{
		{"nan ball", func(w *World) { w.Ball.Position.X = math.NaN() }},
		{"inf paddle velocity", func(w *World) { w.PaddleRight.Velocity.Y = math.Inf(1) }},
		{"empty paddle", func(w *World) { w.PaddleLeft.Extent.Y = 0 }},
		{"paddle above window", func(w *World) { w.PaddleLeft.Position.Y = -0.5 }},
		{"paddle below window", func(w *World) { w.PaddleRight.Position.Y = 531 }},
	}
	for _, tt := range tests {
		w := NewWorld(cfg)
		tt.mutate(&w)
		err := w.Validate(cfg)
		if !errors.Is(err, ErrInvalidWorld) {
			t.Errorf("%s: expected ErrInvalidWorld, got %v", tt.name, err)
		}
	}
}
