package liquid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade animates the effect's opacity once the source image is ready, so the
// first visible frame does not pop in.
type fade struct {
	tween *gween.Tween
	value float32
	Done  bool
}

// newFade returns a fade from 0 to 1 over duration seconds. A non-positive
// duration yields a fade that is already complete.
func newFade(duration float32) *fade {
	if duration <= 0 {
		return &fade{value: 1, Done: true}
	}
	return &fade{tween: gween.New(0, 1, duration, ease.OutCubic)}
}

// Update advances the fade by dt seconds.
func (f *fade) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.value = val
	if finished {
		f.value = 1
		f.Done = true
	}
}

// Value returns the current opacity in [0, 1].
func (f *fade) Value() float32 {
	return f.value
}
