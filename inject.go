package liquid

// syntheticKind is the kind of an injected pointer event.
type syntheticKind uint8

const (
	syntheticMove  syntheticKind = iota // pointer moved to (x, y)
	syntheticEnter                      // touch began at (x, y)
	syntheticLeave                      // pointer left / touch ended
)

// syntheticPointerEvent is a single injected pointer event. Coordinates are
// screen pixels, the same space the live input source reports.
type syntheticPointerEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectMove queues a pointer move to screen position (x, y). The event is
// consumed on the next Update in place of live input.
func (e *Effect) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: syntheticMove, x: x, y: y})
}

// InjectTouch queues a touch start at (x, y).
func (e *Effect) InjectTouch(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: syntheticEnter, x: x, y: y})
}

// InjectLeave queues a pointer leave.
func (e *Effect) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: syntheticLeave})
}

// InjectSwipe queues a touch at (fromX, fromY), moves linearly interpolated
// over frames-2 intermediate frames, a final move to (toX, toY), and a leave.
// The sequence consumes frames+1 frames. Minimum frames is 2.
func (e *Effect) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectTouch(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
	e.InjectMove(toX, toY)
	e.InjectLeave()
}

// processInjectedInput pops one queued event and feeds it to the tracker.
// Returns true if an event was consumed (live input is skipped this frame).
func (e *Effect) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		e.pointer.Move(evt.x, evt.y, e.bounds)
	case syntheticEnter:
		e.pointer.Enter(evt.x, evt.y, e.bounds)
	case syntheticLeave:
		e.pointer.Leave()
	}
	return true
}
