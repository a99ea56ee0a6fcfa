//go:build sdl

// Package sdl implements the render interfaces on SDL2. It is built only
// with the sdl tag because it needs the SDL2 development libraries.
package sdl

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"chosenoffset.com/pong/internal/render"
)

// Backend owns the SDL window and renderer and implements the render
// interfaces on top of them. SDL calls must stay on the main thread.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	image    *SDLImage
}

// NewBackend initializes SDL and opens a width x height window.
func NewBackend(title string, width, height int) (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_CENTERED),
		int32(sdl.WINDOWPOS_CENTERED),
		int32(width), int32(height), uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1,
		uint32(sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	b := &Backend{window: window, renderer: renderer}
	b.image = &SDLImage{renderer: renderer, width: width, height: height}
	return b, nil
}

// Close releases the renderer and window and shuts SDL down.
func (b *Backend) Close() {
	b.renderer.Destroy()
	b.window.Destroy()
	sdl.Quit()
}

// Now returns the time since SDL was initialized. SDL event timestamps use
// the same origin.
func (b *Backend) Now() time.Duration {
	return time.Duration(sdl.GetTicks()) * time.Millisecond
}

// PollEvents drains the SDL event queue. Key auto-repeats are skipped.
func (b *Backend) PollEvents(dst []render.Event) []render.Event {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, render.Event{
				Kind: render.EventQuit,
				Time: time.Duration(ev.Timestamp) * time.Millisecond,
			})
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			key := keyFromScancode(ev.Keysym.Scancode)
			if key == render.KeyUnknown {
				continue
			}
			kind := render.EventKeyDown
			if ev.Type == sdl.KEYUP {
				kind = render.EventKeyUp
			}
			dst = append(dst, render.Event{
				Kind: kind,
				Key:  key,
				Time: time.Duration(ev.Timestamp) * time.Millisecond,
			})
		}
	}
	return dst
}

// CursorPosition returns the mouse position in window pixels.
func (b *Backend) CursorPosition() (x, y int) {
	mx, my, _ := sdl.GetMouseState()
	return int(mx), int(my)
}

func keyFromScancode(code sdl.Scancode) render.Key {
	switch code {
	case sdl.SCANCODE_W:
		return render.KeyW
	case sdl.SCANCODE_S:
		return render.KeyS
	case sdl.SCANCODE_UP:
		return render.KeyUp
	case sdl.SCANCODE_DOWN:
		return render.KeyDown
	case sdl.SCANCODE_ESCAPE:
		return render.KeyEscape
	case sdl.SCANCODE_F3:
		return render.KeyF3
	default:
		return render.KeyUnknown
	}
}

// FillRect fills a rectangle with the renderer's draw color.
func (b *Backend) FillRect(dst render.Image, x, y, w, h int, clr color.Color) {
	r, g, bl, a := rgba(clr)
	b.renderer.SetDrawColor(r, g, bl, a)
	b.renderer.FillRect(&sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)})
}

// DrawText is a no-op. SDL2 core has no font rendering.
func (b *Backend) DrawText(dst render.Image, text string, x, y int) {}

// SetWindowSize resizes the window.
func (b *Backend) SetWindowSize(width, height int) {
	b.window.SetSize(int32(width), int32(height))
	b.image.width, b.image.height = width, height
}

// SetWindowTitle sets the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.window.SetTitle(title)
}

// RunGame polls, updates, draws and presents until the game quits. Presenting
// waits for vsync, which paces the loop.
func (b *Backend) RunGame(game render.Game) error {
	for {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			return err
		}
		game.Draw(b.image)
		b.renderer.Present()
	}
}

// SDLImage is the window's back buffer.
type SDLImage struct {
	renderer      *sdl.Renderer
	width, height int
}

// Size returns the logical size.
func (i *SDLImage) Size() (width, height int) {
	return i.width, i.height
}

// Fill clears the back buffer to clr.
func (i *SDLImage) Fill(clr color.Color) {
	r, g, b, a := rgba(clr)
	i.renderer.SetDrawColor(r, g, b, a)
	i.renderer.Clear()
}

// Clear clears the back buffer to black.
func (i *SDLImage) Clear() {
	i.renderer.SetDrawColor(0, 0, 0, 255)
	i.renderer.Clear()
}

func rgba(clr color.Color) (r, g, b, a uint8) {
	c := color.RGBAModel.Convert(clr).(color.RGBA)
	return c.R, c.G, c.B, c.A
}
