package liquid

import "testing"

func newTestEffect() *Effect {
	return &Effect{
		cfg:     Config{Source: "test.png", Label: "test"}.withDefaults(),
		bounds:  Rect{Width: 200, Height: 100},
		pointer: NewTracker(),
	}
}

func TestInjectMove(t *testing.T) {
	e := newTestEffect()
	e.InjectMove(100, 50)
	if len(e.injectQueue) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(e.injectQueue))
	}
	if !e.processInjectedInput() {
		t.Fatal("expected an event to be consumed")
	}
	if !e.pointer.Active() {
		t.Error("pointer should be active after move inside bounds")
	}
	if p := e.pointer.Position(); p != (Vec2{0.5, 0.5}) {
		t.Errorf("Position() = %v, want {0.5 0.5}", p)
	}
	if e.processInjectedInput() {
		t.Error("empty queue should not consume")
	}
}

func TestInjectTouchThenLeave(t *testing.T) {
	e := newTestEffect()
	e.InjectTouch(20, 10)
	e.InjectLeave()

	e.processInjectedInput()
	if !e.pointer.Active() {
		t.Error("touch should activate the pointer")
	}
	if s := e.pointer.Consume(); s.Delta != (Vec2{}) {
		t.Errorf("touch Delta = %v, want zero", s.Delta)
	}

	e.processInjectedInput()
	if e.pointer.Active() {
		t.Error("leave should deactivate the pointer")
	}
}

func TestInjectSwipe(t *testing.T) {
	e := newTestEffect()
	e.InjectSwipe(0, 50, 200, 50, 5)

	// touch, 3 interpolated moves, final move, leave
	if len(e.injectQueue) != 6 {
		t.Fatalf("expected 6 queued events, got %d", len(e.injectQueue))
	}
	if e.injectQueue[0].kind != syntheticEnter {
		t.Errorf("first event kind = %v, want enter", e.injectQueue[0].kind)
	}
	if last := e.injectQueue[5]; last.kind != syntheticLeave {
		t.Errorf("last event kind = %v, want leave", last.kind)
	}
	wantX := []float64{0, 50, 100, 150, 200}
	for i, x := range wantX {
		if got := e.injectQueue[i].x; got != x {
			t.Errorf("event %d x = %v, want %v", i, got, x)
		}
	}

	var total float64
	for i := 0; i < 5; i++ {
		e.processInjectedInput()
		total += e.pointer.Consume().Delta.X
	}
	if !nearlyEqual(total, 1) {
		t.Errorf("summed Delta.X = %v, want 1", total)
	}
	e.processInjectedInput()
	if e.pointer.Active() {
		t.Error("swipe should end inactive")
	}
	if len(e.injectQueue) != 0 {
		t.Errorf("queue not drained: %d left", len(e.injectQueue))
	}
}

func TestInjectSwipeMinimumFrames(t *testing.T) {
	e := newTestEffect()
	e.InjectSwipe(0, 0, 10, 10, 0)
	// touch, final move, leave
	if len(e.injectQueue) != 3 {
		t.Fatalf("expected 3 queued events, got %d", len(e.injectQueue))
	}
}

func TestInjectOutsideBounds(t *testing.T) {
	e := newTestEffect()
	e.InjectMove(500, 500)
	e.processInjectedInput()
	if e.pointer.Active() {
		t.Error("move outside bounds should leave the pointer inactive")
	}
}
