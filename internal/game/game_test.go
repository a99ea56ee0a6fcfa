package game

import (
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"chosenoffset.com/pong/internal/render"
	"chosenoffset.com/pong/internal/simulation"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

type fakeInput struct {
	pending []render.Event
	cursorY int
}

func (in *fakeInput) PollEvents(dst []render.Event) []render.Event {
	dst = append(dst, in.pending...)
	in.pending = nil
	return dst
}

func (in *fakeInput) CursorPosition() (int, int) { return 0, in.cursorY }

type rect struct {
	x, y, w, h int
}

type fakeImage struct {
	fill color.Color
}

func (i *fakeImage) Size() (int, int)     { return 800, 600 }
func (i *fakeImage) Fill(clr color.Color) { i.fill = clr }
func (i *fakeImage) Clear()               { i.fill = nil }

type fakeRenderer struct {
	rects []rect
	texts []string
}

func (r *fakeRenderer) FillRect(dst render.Image, x, y, w, h int, clr color.Color) {
	r.rects = append(r.rects, rect{x, y, w, h})
}

func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int) {
	r.texts = append(r.texts, text)
}

func newTestGame(t *testing.T, cfg simulation.Config) (*Game, *fakeClock, *fakeInput) {
	t.Helper()
	clock := &fakeClock{}
	// Pointer on the right paddle's center keeps it still.
	input := &fakeInput{cursorY: 285}
	g, err := NewGame(cfg, &fakeRenderer{}, input, clock)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return g, clock, input
}

func TestUpdateMatchesDirectStepping(t *testing.T) {
	cfg := simulation.DefaultConfig()
	g, clock, _ := newTestGame(t, cfg)

	// 100 frames of 10ms.
	for i := 0; i < 100; i++ {
		clock.now += 10 * time.Millisecond
		if err := g.Update(); err != nil {
			t.Fatalf("Frame %d: unexpected error %v", i, err)
		}
	}

	if g.Stats.TotalSteps != 1000 {
		t.Errorf("Expected 1000 steps, got %d", g.Stats.TotalSteps)
	}

	want := simulation.NewWorld(cfg)
	s := simulation.NewStepper(cfg)
	for i := 0; i < 1000; i++ {
		s.Step(&want)
	}
	if g.World != want {
		t.Errorf("Expected loop-driven world to match direct stepping\n%+v\n%+v", g.World, want)
	}
}

func TestInputAppliedAtItsSimulatedTime(t *testing.T) {
	cfg := simulation.DefaultConfig()
	g, clock, input := newTestGame(t, cfg)

	input.pending = []render.Event{
		{Kind: render.EventKeyDown, Key: render.KeyW, Time: 5500 * time.Microsecond},
		{Kind: render.EventKeyUp, Key: render.KeyW, Time: 8200 * time.Microsecond},
	}
	clock.now = 10 * time.Millisecond
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}

	// Held for the steps ending at 6, 7 and 8ms.
	want := cfg.Paddle.InitY - 3*cfg.Paddle.Speed*cfg.StepSeconds()
	if got := g.World.PaddleLeft.Position.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected left paddle at %v, got %v", want, got)
	}
	if g.World.PaddleLeft.Velocity.Y != 0 {
		t.Errorf("Expected left paddle at rest after key-up, got %v", g.World.PaddleLeft.Velocity.Y)
	}
}

func TestFutureEventsStayQueued(t *testing.T) {
	cfg := simulation.DefaultConfig()
	g, clock, input := newTestGame(t, cfg)

	input.pending = []render.Event{
		{Kind: render.EventKeyDown, Key: render.KeyDown, Time: 20 * time.Millisecond},
	}
	clock.now = 10 * time.Millisecond
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if g.Events.Len() != 1 {
		t.Errorf("Expected the future event to remain queued, got %d", g.Events.Len())
	}
	if g.World.PaddleLeft.Position.Y != cfg.Paddle.InitY {
		t.Errorf("Expected paddle not to move yet, got %v", g.World.PaddleLeft.Position.Y)
	}

	clock.now = 30 * time.Millisecond
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	// Held from the step ending at 20ms through the one ending at 30ms.
	want := cfg.Paddle.InitY + 11*cfg.Paddle.Speed*cfg.StepSeconds()
	if got := g.World.PaddleLeft.Position.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected paddle at %v, got %v", want, got)
	}
}

func TestQuitStopsCatchUp(t *testing.T) {
	tests := []struct {
		name string
		ev   render.Event
	}{
		{"quit event", render.Event{Kind: render.EventQuit, Time: 3 * time.Millisecond}},
		{"escape key", render.Event{Kind: render.EventKeyDown, Key: render.KeyEscape, Time: 3 * time.Millisecond}},
	}

	for _, tt := range tests {
		g, clock, input := newTestGame(t, simulation.DefaultConfig())
		input.pending = []render.Event{tt.ev}
		clock.now = 10 * time.Millisecond

		err := g.Update()
		if !errors.Is(err, render.ErrQuit) {
			t.Errorf("%s: expected ErrQuit, got %v", tt.name, err)
		}
		if g.Running() {
			t.Errorf("%s: expected running flag cleared", tt.name)
		}
		if g.Stats.TotalSteps != 2 {
			t.Errorf("%s: expected 2 steps before the quit boundary, got %d", tt.name, g.Stats.TotalSteps)
		}

		clock.now = 20 * time.Millisecond
		if err := g.Update(); !errors.Is(err, render.ErrQuit) {
			t.Errorf("%s: expected ErrQuit on the next iteration, got %v", tt.name, err)
		}
		if g.Stats.TotalSteps != 2 {
			t.Errorf("%s: expected no steps after quitting, got %d", tt.name, g.Stats.TotalSteps)
		}
	}
}

func TestCatchUpCap(t *testing.T) {
	cfg := simulation.DefaultConfig()
	g, clock, _ := newTestGame(t, cfg)

	clock.now = time.Second
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if g.Stats.LastFrame.Steps != cfg.MaxStepsPerFrame {
		t.Errorf("Expected %d steps, got %d", cfg.MaxStepsPerFrame, g.Stats.LastFrame.Steps)
	}
	if g.Stats.TotalDropped != uint64(1000-cfg.MaxStepsPerFrame) {
		t.Errorf("Expected %d dropped steps, got %d", 1000-cfg.MaxStepsPerFrame, g.Stats.TotalDropped)
	}
	if g.Loop.SimTime() != time.Second {
		t.Errorf("Expected sim time to catch up to 1s, got %v", g.Loop.SimTime())
	}
}

func TestPointerDrivesRightPaddle(t *testing.T) {
	cfg := simulation.DefaultConfig()
	g, clock, input := newTestGame(t, cfg)
	input.cursorY = 500

	clock.now = 10 * time.Millisecond
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	want := cfg.Paddle.InitY + 10*cfg.Paddle.Speed*cfg.StepSeconds()
	if got := g.World.PaddleRight.Position.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected right paddle at %v, got %v", want, got)
	}
}

func TestDebugToggle(t *testing.T) {
	g, clock, input := newTestGame(t, simulation.DefaultConfig())
	input.pending = []render.Event{
		{Kind: render.EventKeyDown, Key: render.KeyF3, Time: time.Millisecond},
	}
	clock.now = 2 * time.Millisecond
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if !g.ShowDebug {
		t.Error("Expected F3 to enable the debug overlay")
	}
}

func TestDraw(t *testing.T) {
	g, _, _ := newTestGame(t, simulation.DefaultConfig())
	r := g.Renderer.(*fakeRenderer)
	screen := &fakeImage{}

	g.Draw(screen)

	if screen.fill != colorBackground {
		t.Errorf("Expected background fill %v, got %v", colorBackground, screen.fill)
	}
	want := []rect{
		{400, 0, 1, 600},
		{397, 297, 5, 5},
		{20, 250, 7, 70},
		{773, 250, 7, 70},
	}
	if len(r.rects) != len(want) {
		t.Fatalf("Expected %d rects, got %d", len(want), len(r.rects))
	}
	for i := range want {
		if r.rects[i] != want[i] {
			t.Errorf("Rect %d: expected %+v, got %+v", i, want[i], r.rects[i])
		}
	}
	if len(r.texts) != 0 {
		t.Errorf("Expected no overlay text, got %v", r.texts)
	}

	g.ShowDebug = true
	g.Draw(screen)
	if len(r.texts) != 1 {
		t.Errorf("Expected overlay text with debug enabled, got %v", r.texts)
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Step = 0
	_, err := NewGame(cfg, &fakeRenderer{}, &fakeInput{}, &fakeClock{})
	if !errors.Is(err, simulation.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLayout(t *testing.T) {
	g, _, _ := newTestGame(t, simulation.DefaultConfig())
	w, h := g.Layout(1920, 1080)
	if w != 800 || h != 600 {
		t.Errorf("Expected 800x600 logical screen, got %dx%d", w, h)
	}
}
