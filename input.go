package liquid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource feeds pointer events into a Tracker. Poll is called once per
// Update, before the simulation step, with the surface bounds in screen
// coordinates.
type InputSource interface {
	Poll(t *Tracker, bounds Rect)
}

// EbitenInput polls Ebitengine's mouse and touch state. A touch in progress
// takes precedence over the mouse; only the first finger is tracked.
type EbitenInput struct {
	mouseX, mouseY int
	mouseSeen      bool

	touch          ebiten.TouchID
	touching       bool
	touchX, touchY int
	idBuf          []ebiten.TouchID
}

// NewEbitenInput returns an input source reading live Ebitengine input.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(t *Tracker, bounds Rect) {
	if in.pollTouch(t, bounds) {
		return
	}
	in.pollMouse(t, bounds)
}

// pollTouch handles the primary touch. Returns true while a touch owns the
// pointer.
func (in *EbitenInput) pollTouch(t *Tracker, bounds Rect) bool {
	if in.touching {
		in.idBuf = inpututil.AppendJustReleasedTouchIDs(in.idBuf[:0])
		for _, id := range in.idBuf {
			if id == in.touch {
				in.touching = false
				t.Leave()
				return true
			}
		}
		x, y := ebiten.TouchPosition(in.touch)
		if x != in.touchX || y != in.touchY {
			in.touchX, in.touchY = x, y
			t.Move(float64(x), float64(y), bounds)
		}
		return true
	}

	in.idBuf = inpututil.AppendJustPressedTouchIDs(in.idBuf[:0])
	if len(in.idBuf) == 0 {
		return false
	}
	in.touch = in.idBuf[0]
	in.touching = true
	in.touchX, in.touchY = ebiten.TouchPosition(in.touch)
	t.Enter(float64(in.touchX), float64(in.touchY), bounds)
	return true
}

// pollMouse reports a move only when the cursor position changed, so a
// resting cursor reads as idle. The first sighting only places the pointer.
func (in *EbitenInput) pollMouse(t *Tracker, bounds Rect) {
	if !ebiten.IsFocused() {
		t.Leave()
		in.mouseSeen = false
		return
	}
	x, y := ebiten.CursorPosition()
	if !in.mouseSeen {
		in.mouseX, in.mouseY = x, y
		in.mouseSeen = true
		t.Enter(float64(x), float64(y), bounds)
		return
	}
	if x == in.mouseX && y == in.mouseY {
		return
	}
	in.mouseX, in.mouseY = x, y
	t.Move(float64(x), float64(y), bounds)
}
