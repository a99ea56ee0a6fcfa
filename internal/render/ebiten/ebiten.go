package ebiten

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/pong/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// FillRect draws a filled rectangle on the destination image.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, w, h int, clr color.Color) {
	ebitenImg := dst.(*EbitenImage).img
	vector.DrawFilledRect(ebitenImg, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// DrawText draws text on the destination image using the debug font.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int) {
	ebitenImg := dst.(*EbitenImage).img
	ebitenutil.DebugPrintAt(ebitenImg, str, x, y)
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// GetEbitenImage returns the underlying ebiten.Image.
func (i *EbitenImage) GetEbitenImage() *ebiten.Image {
	return i.img
}

// EbitenClock measures time since the backend was created.
type EbitenClock struct {
	start time.Time
}

// NewClock creates a clock starting now.
func NewClock() *EbitenClock {
	return &EbitenClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *EbitenClock) Now() time.Duration {
	return time.Since(c.start)
}

// EbitenInputManager implements the InputManager interface using Ebiten.
// Ebiten exposes key state per tick rather than an event queue, so edges are
// turned into events stamped with the poll time.
type EbitenInputManager struct {
	clock    render.Clock
	keys     []ebiten.Key
	quitSent bool
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager(clock render.Clock) *EbitenInputManager {
	return &EbitenInputManager{clock: clock}
}

// PollEvents appends the key edges and window-close request seen this tick.
func (m *EbitenInputManager) PollEvents(dst []render.Event) []render.Event {
	now := m.clock.Now()

	if ebiten.IsWindowBeingClosed() && !m.quitSent {
		m.quitSent = true
		dst = append(dst, render.Event{Kind: render.EventQuit, Time: now})
	}

	m.keys = inpututil.AppendJustReleasedKeys(m.keys[:0])
	for _, k := range m.keys {
		if key := keyFromEbiten(k); key != render.KeyUnknown {
			dst = append(dst, render.Event{Kind: render.EventKeyUp, Key: key, Time: now})
		}
	}

	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	for _, k := range m.keys {
		if key := keyFromEbiten(k); key != render.KeyUnknown {
			dst = append(dst, render.Event{Kind: render.EventKeyDown, Key: key, Time: now})
		}
	}

	return dst
}

// CursorPosition returns the current cursor position.
func (m *EbitenInputManager) CursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// keyFromEbiten converts an ebiten.Key to a render.Key.
func keyFromEbiten(key ebiten.Key) render.Key {
	switch key {
	case ebiten.KeyW:
		return render.KeyW
	case ebiten.KeyS:
		return render.KeyS
	case ebiten.KeyArrowUp:
		return render.KeyUp
	case ebiten.KeyArrowDown:
		return render.KeyDown
	case ebiten.KeyEscape:
		return render.KeyEscape
	case ebiten.KeyF3:
		return render.KeyF3
	default:
		return render.KeyUnknown
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// RunGame runs the game loop with the provided game. Update is called once
// per presented frame and vsync provides the presentation wait.
func (e *EbitenEngine) RunGame(game render.Game) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
