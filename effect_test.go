package liquid

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func TestNewRequiresSource(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("New(Config{}) error = %v, want ErrNoSource", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Source: "a.png", Decay: 2}); err == nil {
		t.Error("expected error for decay 2")
	}
	if _, err := New(Config{Source: "a.png", Background: "not-a-colour"}); err == nil {
		t.Error("expected error for bad background")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	captureLog(t)
	e, err := New(Config{Source: "does-not-exist.png", Background: "navy"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if e.Config().Resolution != DefaultResolution {
		t.Errorf("Resolution = %d, want %d", e.Config().Resolution, DefaultResolution)
	}
	if e.background.A != 1 || e.background.B == 0 {
		t.Errorf("background = %+v, want opaque navy", e.background)
	}
	if e.Ready() || e.Failed() {
		t.Error("new effect should be neither ready nor failed")
	}
	if e.Pointer() == nil {
		t.Error("Pointer() = nil")
	}
}

func TestSetBoundsStopsFollowingLayout(t *testing.T) {
	e := newTestEffect()
	e.autoBounds = true
	r := Rect{X: 10, Y: 20, Width: 300, Height: 200}
	e.SetBounds(r)
	if e.Bounds() != r {
		t.Errorf("Bounds() = %v, want %v", e.Bounds(), r)
	}
	if e.autoBounds {
		t.Error("SetBounds should turn off autoBounds")
	}
}

func TestSurfaceSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		scale, limit float64
		wantW, wantH int
	}{
		{"unscaled", 800, 600, 1, 2, 800, 600},
		{"retina", 800, 600, 2, 2, 1600, 1200},
		{"capped", 800, 600, 3, 2, 1600, 1200},
		{"fractional rounds up", 101, 51, 1.5, 2, 152, 77},
		{"bad scale", 640, 480, 0, 2, 640, 480},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := surfaceSize(tt.w, tt.h, tt.scale, tt.limit)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("surfaceSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestReceiveImageFailure(t *testing.T) {
	buf := captureLog(t)
	e := newTestEffect()
	ch := make(chan loadResult, 1)
	ch <- loadResult{err: errors.New("boom")}
	e.loading = ch

	e.receiveImage()
	if e.Ready() {
		t.Error("failed load should not be ready")
	}
	if e.loading != nil {
		t.Error("loading channel should be cleared after a result")
	}
	if !strings.Contains(buf.String(), "load image: boom") {
		t.Errorf("log = %q, want load failure", buf.String())
	}

	// No retry: nothing more happens on later frames.
	e.receiveImage()
	if e.Ready() {
		t.Error("effect became ready without a retry")
	}
}

func TestReceiveImagePending(t *testing.T) {
	e := newTestEffect()
	ch := make(chan loadResult, 1)
	e.loading = ch
	e.receiveImage()
	if e.loading == nil {
		t.Error("pending load should stay attached")
	}
	ch <- loadResult{img: image.NewRGBA(image.Rect(0, 0, 1, 1))}
}

func TestFailLogsOnce(t *testing.T) {
	buf := captureLog(t)
	e := newTestEffect()
	e.fail(errors.New("compile fluid shader: bad"))
	e.fail(errors.New("second"))
	if !e.Failed() {
		t.Error("Failed() = false after fail")
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("logged %d lines, want 1: %q", n, buf.String())
	}
}

func TestCloseIdempotent(t *testing.T) {
	captureLog(t)
	e, err := New(Config{Source: "does-not-exist.png"})
	if err != nil {
		t.Fatal(err)
	}
	e.InjectMove(1, 1)
	e.Close()
	e.Close()

	if len(e.injectQueue) != 0 {
		t.Error("Close should drop queued input")
	}
	if e.input != nil {
		t.Error("Close should detach live input")
	}
	if err := e.Update(); !errors.Is(err, ErrClosed) {
		t.Errorf("Update after Close = %v, want ErrClosed", err)
	}
}

func TestEffectName(t *testing.T) {
	e := newTestEffect()
	if e.name() != "test" {
		t.Errorf("name() = %q, want label", e.name())
	}
	e.cfg.Label = ""
	if e.name() != "test.png" {
		t.Errorf("name() = %q, want source", e.name())
	}
}
