package liquid

// PointerSample is what one simulation step reads from the tracker.
type PointerSample struct {
	// Pos is the pointer position in surface UV space.
	Pos Vec2
	// Delta is the motion since the previous step, zero if the pointer did
	// not move.
	Delta Vec2
	// Active is 1 while the pointer is over the surface, else 0.
	Active float32
}

// Tracker records pointer position in normalized surface coordinates and hands
// out per-step deltas. It is written by input handling and read by the
// simulation step, both on the game goroutine; it is not safe for concurrent
// use.
type Tracker struct {
	pos    Vec2
	prev   Vec2
	active bool
	moved  bool
}

// NewTracker returns a tracker resting at the center of the surface.
func NewTracker() *Tracker {
	return &Tracker{
		pos:  Vec2{0.5, 0.5},
		prev: Vec2{0.5, 0.5},
	}
}

// Move records a pointer move at screen position (x, y). Inside bounds the
// pointer becomes active; outside it becomes inactive and keeps its last
// position. Empty bounds are ignored.
func (t *Tracker) Move(x, y float64, bounds Rect) {
	if bounds.Empty() {
		return
	}
	if !bounds.Contains(x, y) {
		t.active = false
		return
	}
	t.pos = bounds.Normalize(x, y)
	t.active = true
	t.moved = true
}

// Enter activates the pointer at (x, y) without recording motion, so a new
// touch or the first mouse sighting does not inject a jump from wherever the
// pointer was last. Positions outside bounds are ignored.
func (t *Tracker) Enter(x, y float64, bounds Rect) {
	if bounds.Empty() || !bounds.Contains(x, y) {
		return
	}
	t.pos = bounds.Normalize(x, y)
	t.prev = t.pos
	t.active = true
}

// Leave marks the pointer inactive (mouse left the surface, touch ended).
func (t *Tracker) Leave() {
	t.active = false
}

// Active reports whether the pointer is over the surface.
func (t *Tracker) Active() bool {
	return t.active
}

// Position returns the last known normalized position.
func (t *Tracker) Position() Vec2 {
	return t.pos
}

// Consume returns the sample for one simulation step and resets the motion
// state, so a pointer that stops moving injects zero velocity.
func (t *Tracker) Consume() PointerSample {
	s := PointerSample{Pos: t.pos}
	if t.moved {
		s.Delta = Vec2{t.pos.X - t.prev.X, t.pos.Y - t.prev.Y}
	}
	if t.active {
		s.Active = 1
	}
	t.prev = t.pos
	t.moved = false
	return s
}
