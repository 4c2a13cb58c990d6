package liquid

import (
	"context"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultTPS = 60

// Effect is one liquid distortion surface: a source image warped by a
// displacement field that follows the pointer. Call Update and Draw from the
// host's ebiten.Game methods, and Layout from its Layout. All methods must be
// called from the game goroutine.
type Effect struct {
	cfg        Config
	background Color

	bounds     Rect
	autoBounds bool // bounds follow Layout

	pointer     *Tracker
	input       InputSource
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	sim     simulator
	comp    *compositor
	surface *RenderTexture
	surfOp  ebiten.DrawImageOptions

	cancelLoad context.CancelFunc
	loading    <-chan loadResult
	source     *ebiten.Image
	fade       *fade

	failed bool // initialization or render failure; nothing is drawn
	closed bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	stats debugStats
}

// New validates cfg, starts loading the source image in the background and
// returns the effect. GPU resources are created on the first Update.
func New(cfg Config) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	bg, err := parseBackground(cfg.Background)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Effect{
		cfg:           cfg,
		background:    bg,
		autoBounds:    true,
		pointer:       NewTracker(),
		input:         NewEbitenInput(),
		cancelLoad:    cancel,
		loading:       startLoad(ctx, cfg.Source),
		ScreenshotDir: "screenshots",
	}
	return e, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Effect) Config() Config {
	return e.cfg
}

// Pointer returns the tracker driving the simulation.
func (e *Effect) Pointer() *Tracker {
	return e.pointer
}

// SetInput replaces the live input source. nil disables live input; injected
// events still apply.
func (e *Effect) SetInput(src InputSource) {
	e.input = src
}

// Bounds returns the surface rectangle in screen coordinates.
func (e *Effect) Bounds() Rect {
	return e.bounds
}

// SetBounds places the surface inside a larger screen. After SetBounds the
// bounds no longer follow Layout.
func (e *Effect) SetBounds(r Rect) {
	e.bounds = r
	e.autoBounds = false
}

// Ready reports whether the source image has been uploaded.
func (e *Effect) Ready() bool {
	return e.source != nil
}

// Failed reports whether initialization or rendering failed. A failed effect
// keeps running but draws nothing.
func (e *Effect) Failed() bool {
	return e.failed
}

// Layout reports the backing surface size for an outside size in device
// independent pixels, using the monitor's scale factor capped at
// Config.MaxPixelRatio. While bounds follow Layout they cover the whole
// surface. The displacement field is never reset by a size change.
func (e *Effect) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w, h := surfaceSize(outsideWidth, outsideHeight, scale, e.cfg.MaxPixelRatio)
	if e.autoBounds {
		e.bounds = Rect{Width: float64(w), Height: float64(h)}
	}
	return w, h
}

// surfaceSize scales an outside size by min(scale, maxRatio).
func surfaceSize(outsideW, outsideH int, scale, maxRatio float64) (int, int) {
	ratio := min(scale, maxRatio)
	if ratio <= 0 {
		ratio = 1
	}
	return int(math.Ceil(float64(outsideW) * ratio)), int(math.Ceil(float64(outsideH) * ratio))
}

// Update polls input, picks up the decoded image and advances the
// displacement field by one step. It never returns an error for effect
// failures; those are logged and the effect stops drawing.
func (e *Effect) Update() error {
	if e.closed {
		return ErrClosed
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	dt := float32(1.0 / float64(tps))

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.pollInput()
	e.receiveImage()
	if e.failed {
		return nil
	}

	if e.sim == nil {
		e.sim = newSimulator(e.cfg.Backend, e.cfg.Resolution, e.cfg.stepParams())
		e.comp = newCompositor(e.cfg.Strength)
	}

	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}
	if err := e.sim.Step(e.pointer.Consume()); err != nil {
		e.fail(err)
		return nil
	}
	if e.cfg.Debug {
		e.stats.stepTime = time.Since(t0)
	}

	if e.fade != nil {
		e.fade.Update(dt)
	}
	return nil
}

// pollInput feeds one injected event, or live input when none is queued.
func (e *Effect) pollInput() {
	if e.processInjectedInput() {
		return
	}
	if e.input != nil {
		e.input.Poll(e.pointer, e.bounds)
	}
}

// receiveImage uploads the decoded source image once it arrives. A failed
// load is logged and leaves the effect without an image for good.
func (e *Effect) receiveImage() {
	if e.loading == nil {
		return
	}
	select {
	case res := <-e.loading:
		e.loading = nil
		if res.err != nil {
			logf("%s: load image: %v", e.name(), res.err)
			return
		}
		e.source = ebiten.NewImageFromImage(res.img)
		e.fade = newFade(e.cfg.FadeIn)
	default:
	}
}

// Draw renders the warped image into the surface and the surface onto screen.
// Nothing but the background is drawn until the image is ready.
func (e *Effect) Draw(screen *ebiten.Image) {
	if e.closed || e.failed || e.sim == nil || e.bounds.Empty() {
		return
	}

	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	w, h := int(math.Ceil(e.bounds.Width)), int(math.Ceil(e.bounds.Height))
	if e.surface == nil {
		e.surface = NewRenderTexture(w, h)
	} else {
		e.surface.Resize(w, h)
	}
	e.surface.Fill(e.background)

	if e.source != nil {
		if err := e.comp.draw(e.surface, e.source, e.sim.Field(), e.fade.Value()); err != nil {
			e.fail(err)
			return
		}
	}

	op := &e.surfOp
	op.GeoM.Reset()
	op.GeoM.Translate(e.bounds.X, e.bounds.Y)
	screen.DrawImage(e.surface.image, op)

	e.flushScreenshots(e.surface.image)

	if e.cfg.Debug {
		e.stats.drawTime = time.Since(t0)
		e.stats.ready = e.source != nil
		e.debugLog(e.stats)
	}
}

// Close stops the effect: live input is detached, an in-flight image load is
// cancelled and GPU resources are released. Further Update calls return
// ErrClosed. Close is idempotent.
func (e *Effect) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.input = nil
	e.injectQueue = nil
	e.testRunner = nil
	e.cancelLoad()
	e.loading = nil
	if e.sim != nil {
		e.sim.Dispose()
		e.sim = nil
	}
	if e.comp != nil {
		e.comp.Dispose()
		e.comp = nil
	}
	if e.surface != nil {
		e.surface.Dispose()
		e.surface = nil
	}
	if e.source != nil {
		e.source.Deallocate()
		e.source = nil
	}
}

// fail logs err once and stops drawing.
func (e *Effect) fail(err error) {
	if e.failed {
		return
	}
	e.failed = true
	logf("%s: %v; effect disabled", e.name(), err)
}

func (e *Effect) name() string {
	if e.cfg.Label != "" {
		return e.cfg.Label
	}
	return e.cfg.Source
}
