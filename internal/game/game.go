package game

import (
	"fmt"
	"log"
	"time"

	"chosenoffset.com/pong/internal/render"
	"chosenoffset.com/pong/internal/simulation"
)

// Game holds all game state and logic. It is the single owner of the World;
// the engine calls Update and Draw from one goroutine.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       simulation.Config
	World        simulation.World
	Stepper      *simulation.Stepper
	Loop         *Loop
	Events       EventQueue
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Clock        render.Clock

	// UI state
	ShowDebug bool
	Stats     Stats

	running  bool
	held     map[render.Key]bool
	pointerY float64

	// Scratch buffers reused every frame.
	polled []render.Event
	due    []render.Event
}

// NewGame creates a game with a fresh world. The simulated clock starts at
// the clock's current time so the first frame does not replay startup.
func NewGame(cfg simulation.Config, r render.Renderer, input render.InputManager, clock render.Clock) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	loop := NewLoop(cfg.Step, cfg.MaxStepsPerFrame)
	loop.Sync(clock.Now())

	world := simulation.NewWorld(cfg)
	return &Game{
		ScreenWidth:  int(cfg.Window.Width),
		ScreenHeight: int(cfg.Window.Height),
		Config:       cfg,
		World:        world,
		Stepper:      simulation.NewStepper(cfg),
		Loop:         loop,
		Renderer:     r,
		InputMgr:     input,
		Clock:        clock,
		running:      true,
		held:         make(map[render.Key]bool),
		pointerY:     world.PaddleRight.CenterY(),
	}, nil
}

// Running reports whether the game has not been asked to quit.
func (g *Game) Running() bool {
	return g.running
}

// Quit clears the running flag. The next Update returns render.ErrQuit.
func (g *Game) Quit() {
	g.running = false
}

// Update runs one outer-loop iteration: it pumps backend events into the
// queue, samples the pointer and catches the simulation up with the clock.
func (g *Game) Update() error {
	if !g.running {
		return render.ErrQuit
	}

	g.polled = g.InputMgr.PollEvents(g.polled[:0])
	g.Events.Push(g.polled...)

	_, y := g.InputMgr.CursorPosition()
	g.pointerY = float64(y)

	frame := g.Loop.Advance(g.Clock.Now(), g.tick)
	g.Stats.record(frame, g.Loop.SimTime())
	if frame.Dropped > 0 {
		log.Printf("Simulation fell behind: dropped %d steps (%v)",
			frame.Dropped, time.Duration(frame.Dropped)*g.Loop.Step())
	}

	if !g.running {
		log.Println("Quit requested")
		return render.ErrQuit
	}
	return nil
}

// tick applies the input that belongs to the step ending at boundary and
// then advances the world by one step.
func (g *Game) tick(boundary time.Duration) bool {
	g.due = g.Events.PopUntil(boundary, g.due[:0])
	for _, ev := range g.due {
		g.handleEvent(ev)
	}
	if !g.running {
		return false
	}

	speed := g.Config.Paddle.Speed
	simulation.ApplyKeyboard(&g.World.PaddleLeft, g.keyState(), speed)
	simulation.ApplyPointer(&g.World.PaddleRight, g.pointerY, g.Config.Paddle.Deadzone, speed)

	res := g.Stepper.Step(&g.World)
	g.Stats.TotalSteps++
	if res.Scored != simulation.SideNone {
		log.Printf("Point for the %s side at %v", res.Scored, boundary)
	}
	return true
}

func (g *Game) handleEvent(ev render.Event) {
	switch ev.Kind {
	case render.EventQuit:
		g.running = false
	case render.EventKeyDown:
		switch ev.Key {
		case render.KeyEscape:
			g.running = false
		case render.KeyF3:
			g.ShowDebug = !g.ShowDebug
		default:
			g.held[ev.Key] = true
		}
	case render.EventKeyUp:
		g.held[ev.Key] = false
	}
}

// keyState maps held keys to the left paddle's controls. W and Up both move
// up, S and Down both move down.
func (g *Game) keyState() simulation.KeyState {
	return simulation.KeyState{
		Up:   g.held[render.KeyW] || g.held[render.KeyUp],
		Down: g.held[render.KeyS] || g.held[render.KeyDown],
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}
