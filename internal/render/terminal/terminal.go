// Package terminal implements the render interfaces on a tcell screen so the
// game can be played in a terminal. The logical 800x600 field is scaled onto
// the cell grid.
package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/pong/internal/render"
)

// DefaultFrameInterval paces the outer loop at 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Backend bundles the terminal implementations sharing one screen.
type Backend struct {
	Screen   tcell.Screen
	Clock    *Clock
	Renderer *TerminalRenderer
	Input    *TerminalInputManager
	Engine   *TerminalEngine
}

// NewBackend initializes screen and wires the renderer, input and engine to
// a logical surface of width x height pixels.
func NewBackend(screen tcell.Screen, width, height int) (*Backend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	clock := NewClock()
	input := NewInputManager(screen, clock, width, height)
	return &Backend{
		Screen:   screen,
		Clock:    clock,
		Renderer: &TerminalRenderer{},
		Input:    input,
		Engine:   NewEngine(screen, input, width, height),
	}, nil
}

// Close restores the terminal.
func (b *Backend) Close() {
	b.Input.Stop()
	b.Screen.Fini()
}

// Clock measures time since the backend started. Event timestamps from
// tcell are wall-clock times and are converted with At.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// NewClock creates a clock starting now.
func NewClock() *Clock {
	return &Clock{start: time.Now(), now: time.Now}
}

// Now returns the time elapsed since the clock started.
func (c *Clock) Now() time.Duration {
	return c.now().Sub(c.start)
}

// At converts a wall-clock time to the clock's timeline.
func (c *Clock) At(t time.Time) time.Duration {
	return t.Sub(c.start)
}

// TerminalImage is the screen seen through a logical pixel coordinate system.
type TerminalImage struct {
	screen        tcell.Screen
	width, height int
}

// NewImage wraps screen as a width x height logical surface.
func NewImage(screen tcell.Screen, width, height int) *TerminalImage {
	return &TerminalImage{screen: screen, width: width, height: height}
}

// Size returns the logical size.
func (i *TerminalImage) Size() (width, height int) {
	return i.width, i.height
}

// Fill paints every cell with the given background color.
func (i *TerminalImage) Fill(clr color.Color) {
	i.screen.Fill(' ', tcell.StyleDefault.Background(tcell.FromImageColor(clr)))
}

// Clear resets every cell to the default style.
func (i *TerminalImage) Clear() {
	i.screen.Clear()
}

// cellSpan maps the logical interval [p, p+size) onto cell indices
// [from, to). Any non-empty interval covers at least one cell.
func cellSpan(p, size, logical, cells int) (from, to int) {
	if size <= 0 || logical <= 0 {
		return 0, 0
	}
	scale := float64(cells) / float64(logical)
	from = int(math.Floor(float64(p) * scale))
	to = int(math.Ceil(float64(p+size) * scale))
	if to <= from {
		to = from + 1
	}
	from, to = max(from, 0), min(to, cells)
	if to < from {
		to = from
	}
	return from, to
}

// TerminalRenderer implements the Renderer interface with cell fills.
type TerminalRenderer struct{}

// FillRect paints the cells covered by the logical rectangle.
func (r *TerminalRenderer) FillRect(dst render.Image, x, y, w, h int, clr color.Color) {
	img := dst.(*TerminalImage)
	cols, rows := img.screen.Size()
	x0, x1 := cellSpan(x, w, img.width, cols)
	y0, y1 := cellSpan(y, h, img.height, rows)

	style := tcell.StyleDefault.Background(tcell.FromImageColor(clr))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			img.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawText writes text starting at the cell under the logical point (x, y).
// Newlines move to the next row.
func (r *TerminalRenderer) DrawText(dst render.Image, text string, x, y int) {
	img := dst.(*TerminalImage)
	cols, rows := img.screen.Size()
	cx0, _ := cellSpan(x, 1, img.width, cols)
	cy, _ := cellSpan(y, 1, img.height, rows)
	cx := cx0

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, ch := range text {
		if ch == '\n' {
			cx = cx0
			cy++
			continue
		}
		img.screen.SetContent(cx, cy, ch, nil, style)
		cx++
	}
}

// TerminalEngine implements the Engine interface. It drives the outer loop
// itself: Update, Draw, Show, then wait for the next frame.
type TerminalEngine struct {
	screen tcell.Screen
	input  *TerminalInputManager
	image  *TerminalImage

	// FrameInterval is the presentation wait between frames.
	FrameInterval time.Duration
}

// NewEngine creates an engine drawing to screen.
func NewEngine(screen tcell.Screen, input *TerminalInputManager, width, height int) *TerminalEngine {
	return &TerminalEngine{
		screen:        screen,
		input:         input,
		image:         NewImage(screen, width, height),
		FrameInterval: DefaultFrameInterval,
	}
}

// SetWindowSize sets the logical surface size. The terminal itself keeps
// whatever size the user gave it.
func (e *TerminalEngine) SetWindowSize(width, height int) {
	e.image.width, e.image.height = width, height
	e.input.SetLogicalSize(width, height)
}

// SetWindowTitle sets the terminal title.
func (e *TerminalEngine) SetWindowTitle(title string) {
	e.screen.SetTitle(title)
}

// RunGame runs the game loop with the provided game until it returns
// render.ErrQuit or fails.
func (e *TerminalEngine) RunGame(game render.Game) error {
	e.input.Start()

	ticker := time.NewTicker(e.FrameInterval)
	defer ticker.Stop()

	for {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			return err
		}
		game.Draw(e.image)
		e.screen.Show()
		<-ticker.C
	}
}
