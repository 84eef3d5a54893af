// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Mouse buttons, matching SDL numbering.
const (
	ButtonLeft   uint8 = sdl.BUTTON_LEFT
	ButtonMiddle uint8 = sdl.BUTTON_MIDDLE
	ButtonRight  uint8 = sdl.BUTTON_RIGHT
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input tracks held keys, mouse position and buttons across frames, plus the
// events of the current frame.
type Input struct {
	events []Event

	held    map[sdl.Scancode]bool
	buttons map[uint8]bool

	mouseX, mouseY int
	deltaX, deltaY int
	mouseKnown     bool

	// Consumed is set by the engine when the GUI overlay owns input this
	// frame. Camera and picking handlers should ignore input when true.
	Consumed bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to engine events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.BeginFrame()
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := convert(event); ok {
			i.Handle(e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
		case sdl.KEYUP:
			ev.Type = EventKeyUp
		default:
			return Event{}, false
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
		default:
			return Event{}, false
		}
		return ev, true
	}
	return Event{}, false
}

// BeginFrame clears the per-frame events and mouse delta. Held state is kept.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	i.deltaX, i.deltaY = 0, 0
	i.Consumed = false
}

// Handle applies one event to the tracked state and records it for the frame.
func (i *Input) Handle(e Event) {
	switch e.Type {
	case EventKeyDown:
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	case EventMouseMove:
		i.moveMouse(e.MouseX, e.MouseY)
	case EventMouseDown:
		i.moveMouse(e.MouseX, e.MouseY)
		i.buttons[e.Button] = true
	case EventMouseUp:
		i.moveMouse(e.MouseX, e.MouseY)
		delete(i.buttons, e.Button)
	}
	i.events = append(i.events, e)
}

// moveMouse accumulates the delta. The first known position yields no delta.
func (i *Input) moveMouse(x, y int) {
	if i.mouseKnown {
		i.deltaX += x - i.mouseX
		i.deltaY += y - i.mouseY
	}
	i.mouseX, i.mouseY = x, y
	i.mouseKnown = true
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame. Key repeats
// are ignored.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// IsButtonHeld reports whether a mouse button is currently down.
func (i *Input) IsButtonHeld(button uint8) bool {
	return i.buttons[button]
}

// Clicked returns the position of a button press this frame.
func (i *Input) Clicked(button uint8) (x, y int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventMouseDown && e.Button == button {
			return e.MouseX, e.MouseY, true
		}
	}
	return 0, 0, false
}

// MousePosition returns the last known cursor position in window pixels.
func (i *Input) MousePosition() (int, int) {
	return i.mouseX, i.mouseY
}

// MouseDelta returns the cursor movement accumulated this frame.
func (i *Input) MouseDelta() (int, int) {
	return i.deltaX, i.deltaY
}

// Resize returns the last window resize of this frame.
func (i *Input) Resize() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
