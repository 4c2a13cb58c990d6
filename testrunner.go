package liquid

import (
	"encoding/json"
	"fmt"
)

// Script actions.
const (
	actionMove       = "move"
	actionTouch      = "touch"
	actionLeave      = "leave"
	actionSwipe      = "swipe"
	actionWait       = "wait"
	actionScreenshot = "screenshot"
)

// scriptStep is one action in a test script. Coordinates are normalized to
// the effect's bounds: (0,0) is the top-left corner and (1,1) the bottom-right,
// so a script plays the same at any window size or device scale.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner replays scripted pointer input and screenshots, one step per
// frame once earlier injections have drained. Attach with SetTestRunner.
type TestRunner struct {
	steps   []scriptStep
	cursor  int
	waiting int
	done    bool
}

// LoadTestScript parses a JSON script of the form
//
//	{"steps": [{"action": "swipe", "fromX": 0.1, "fromY": 0.5, "toX": 0.9, "toY": 0.5, "frames": 20}, ...]}
//
// Unknown actions are rejected.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case actionMove, actionTouch, actionLeave, actionSwipe, actionWait, actionScreenshot:
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches a runner. It is stepped at the start of every Update.
func (e *Effect) SetTestRunner(r *TestRunner) {
	e.testRunner = r
}

// Done reports whether every step has run and its input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(e *Effect) {
	if r.done || len(e.injectQueue) > 0 {
		return
	}
	if r.waiting > 0 {
		r.waiting--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionMove:
		x, y := toScreen(e.bounds, st.X, st.Y)
		e.InjectMove(x, y)
	case actionTouch:
		x, y := toScreen(e.bounds, st.X, st.Y)
		e.InjectTouch(x, y)
	case actionLeave:
		e.InjectLeave()
	case actionSwipe:
		fx, fy := toScreen(e.bounds, st.FromX, st.FromY)
		tx, ty := toScreen(e.bounds, st.ToX, st.ToY)
		e.InjectSwipe(fx, fy, tx, ty, st.Frames)
	case actionWait:
		if st.Frames > 0 {
			r.waiting = st.Frames - 1 // this frame counts
		}
	case actionScreenshot:
		e.Screenshot(st.Label)
	}
}

// toScreen maps a normalized script position into screen coordinates.
func toScreen(b Rect, x, y float64) (float64, float64) {
	return b.X + x*b.Width, b.Y + y*b.Height
}
