package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool
	ScrollY           float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	// Keyboard
	Chars     []rune // text typed this frame
	Backspace bool   // pressed or auto-repeating
	Enter     bool
	Tab       bool
	Escape    bool
	Shift     bool
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	// Mouse position
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	// Mouse buttons
	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	s.LeftPressed = leftDown
	s.RightPressed = rightDown

	// Scroll
	_, scrollY := ebiten.Wheel()
	s.ScrollY = scrollY

	// Drag tracking
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !leftDown {
		s.Dragging = false
	}

	// Text entry
	s.Chars = ebiten.AppendInputChars(s.Chars[:0])
	s.Backspace = repeating(ebiten.KeyBackspace)
	s.Enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	s.Tab = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	s.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	s.Shift = ebiten.IsKeyPressed(ebiten.KeyShift)
}

// repeating reports a key press on the first frame and then at a steady
// rate while the key is held.
func repeating(k ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

// In reports whether the cursor is inside the rectangle.
func (s *InputState) In(x, y, w, h int) bool {
	return s.MouseX >= x && s.MouseX < x+w && s.MouseY >= y && s.MouseY < y+h
}
