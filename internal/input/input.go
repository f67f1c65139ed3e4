// Package input keeps the per-frame keyboard and mouse state the editor reads.
package input

import "github.com/go-gl/mathgl/mgl32"

type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	KeyF5
	KeyEscape
	KeyDelete
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	mouseButtonCount
)

type EventKind int

const (
	KeyPressed EventKind = iota
	KeyReleased
	MousePressed
	MouseReleased
	CursorMoved
	Scrolled
	Resized
	CloseRequested
)

// Event is one windowing event. X and Y carry the cursor position, scroll
// offsets or window size depending on Kind.
type Event struct {
	Kind   EventKind
	Key    Key
	Button MouseButton
	X, Y   float32
}

// State is the input seen by one frame. Events are folded in with Handle and
// EndFrame clears what only lasts a frame.
type State struct {
	held     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	buttons       [mouseButtonCount]bool
	clicked       [mouseButtonCount]bool
	buttonRelease [mouseButtonCount]bool

	Mouse       mgl32.Vec2
	MouseDelta  mgl32.Vec2
	ScrollDelta float32
	Width       int
	Height      int
	Close       bool

	cursorSeen bool
}

func NewState(width, height int) *State {
	return &State{
		held:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
		Width:    width,
		Height:   height,
	}
}

func (s *State) Handle(e Event) {
	switch e.Kind {
	case KeyPressed:
		// Repeats of a held key are not new presses.
		if !s.held[e.Key] {
			s.pressed[e.Key] = true
		}
		s.held[e.Key] = true
	case KeyReleased:
		delete(s.held, e.Key)
		s.released[e.Key] = true
	case MousePressed:
		if e.Button < mouseButtonCount {
			if !s.buttons[e.Button] {
				s.clicked[e.Button] = true
			}
			s.buttons[e.Button] = true
		}
	case MouseReleased:
		if e.Button < mouseButtonCount {
			s.buttons[e.Button] = false
			s.buttonRelease[e.Button] = true
		}
	case CursorMoved:
		pos := mgl32.Vec2{e.X, e.Y}
		if s.cursorSeen {
			s.MouseDelta = s.MouseDelta.Add(pos.Sub(s.Mouse))
		}
		s.Mouse = pos
		s.cursorSeen = true
	case Scrolled:
		s.ScrollDelta += e.Y
	case Resized:
		s.Width = int(e.X)
		s.Height = int(e.Y)
	case CloseRequested:
		s.Close = true
	}
}

// EndFrame drops the per-frame edges and deltas.
func (s *State) EndFrame() {
	clear(s.pressed)
	clear(s.released)
	s.clicked = [mouseButtonCount]bool{}
	s.buttonRelease = [mouseButtonCount]bool{}
	s.MouseDelta = mgl32.Vec2{}
	s.ScrollDelta = 0
}

func (s *State) Down(k Key) bool {
	return s.held[k]
}

// JustPressed reports whether k went down during this frame, even if it was
// released again before the frame ran.
func (s *State) JustPressed(k Key) bool {
	return s.pressed[k]
}

// JustReleased reports whether k was released during this frame.
func (s *State) JustReleased(k Key) bool {
	return s.released[k]
}

func (s *State) ButtonDown(b MouseButton) bool {
	return s.buttons[b]
}

// Clicked reports whether b went down during this frame.
func (s *State) Clicked(b MouseButton) bool {
	return s.clicked[b]
}

func (s *State) ButtonReleased(b MouseButton) bool {
	return s.buttonRelease[b]
}
