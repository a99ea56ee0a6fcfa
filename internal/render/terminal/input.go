package terminal

import (
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/pong/internal/render"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats but never releases.
const DefaultHoldWindow = 200 * time.Millisecond

// TerminalInputManager implements the InputManager interface from tcell
// events. tcell delivers events on its own goroutine; they are handed over
// through a channel and translated on the caller's goroutine in PollEvents.
type TerminalInputManager struct {
	screen tcell.Screen
	clock  *Clock
	events chan tcell.Event
	quit   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once

	// HoldWindow is the synthetic key-up delay after the last press.
	HoldWindow time.Duration

	// release deadline per held key
	held map[render.Key]time.Duration

	width, height    int // logical size
	cursorX, cursorY int // logical pixels
}

// NewInputManager creates an input manager for screen. Call Start to begin
// receiving events.
func NewInputManager(screen tcell.Screen, clock *Clock, width, height int) *TerminalInputManager {
	return &TerminalInputManager{
		screen:     screen,
		clock:      clock,
		events:     make(chan tcell.Event, 64),
		quit:       make(chan struct{}),
		HoldWindow: DefaultHoldWindow,
		held:       make(map[render.Key]time.Duration),
		width:      width,
		height:     height,
		cursorX:    width / 2,
		cursorY:    height / 2,
	}
}

// Start launches tcell's event pump. Later calls do nothing.
func (m *TerminalInputManager) Start() {
	m.startOnce.Do(func() { go m.screen.ChannelEvents(m.events, m.quit) })
}

// Stop ends the event pump. It is safe to call more than once.
func (m *TerminalInputManager) Stop() {
	m.stopOnce.Do(func() { close(m.quit) })
}

// SetLogicalSize sets the pixel space the cursor position is reported in.
func (m *TerminalInputManager) SetLogicalSize(width, height int) {
	m.width, m.height = width, height
}

// PollEvents translates the pending tcell events and appends key-ups for
// keys whose hold window has expired.
func (m *TerminalInputManager) PollEvents(dst []render.Event) []render.Event {
drain:
	for {
		select {
		case ev, ok := <-m.events:
			if !ok {
				m.events = nil
				break drain
			}
			dst = m.HandleEvent(ev, dst)
		default:
			break drain
		}
	}

	now := m.clock.Now()
	for key, deadline := range m.held {
		if deadline <= now {
			dst = append(dst, render.Event{Kind: render.EventKeyUp, Key: key, Time: deadline})
			delete(m.held, key)
		}
	}
	return dst
}

// HandleEvent translates one tcell event, appending the result to dst.
func (m *TerminalInputManager) HandleEvent(ev tcell.Event, dst []render.Event) []render.Event {
	at := m.clock.At(ev.When())

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return append(dst, render.Event{Kind: render.EventQuit, Time: at})
		case tcell.KeyEscape:
			return append(dst, render.Event{Kind: render.EventKeyDown, Key: render.KeyEscape, Time: at})
		case tcell.KeyF3:
			return append(dst, render.Event{Kind: render.EventKeyDown, Key: render.KeyF3, Time: at})
		case tcell.KeyUp:
			return m.press(render.KeyUp, at, dst)
		case tcell.KeyDown:
			return m.press(render.KeyDown, at, dst)
		case tcell.KeyRune:
			switch unicode.ToLower(ev.Rune()) {
			case 'w':
				return m.press(render.KeyW, at, dst)
			case 's':
				return m.press(render.KeyS, at, dst)
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cols, rows := m.screen.Size()
		m.cursorX = cellCenter(x, cols, m.width)
		m.cursorY = cellCenter(y, rows, m.height)
	case *tcell.EventResize:
		m.screen.Sync()
	}
	return dst
}

// press emits a key-down for a key that is not already held and pushes its
// release deadline out by the hold window.
func (m *TerminalInputManager) press(key render.Key, at time.Duration, dst []render.Event) []render.Event {
	if _, ok := m.held[key]; !ok {
		dst = append(dst, render.Event{Kind: render.EventKeyDown, Key: key, Time: at})
	}
	m.held[key] = at + m.HoldWindow
	return dst
}

// CursorPosition returns the last mouse position in logical pixels.
func (m *TerminalInputManager) CursorPosition() (x, y int) {
	return m.cursorX, m.cursorY
}

// cellCenter maps a cell index to the logical pixel at its center.
func cellCenter(cell, cells, logical int) int {
	if cells <= 0 {
		return 0
	}
	return int((float64(cell) + 0.5) * float64(logical) / float64(cells))
}
