package liquid

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig holds window options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool
}

// game adapts an Effect to ebiten.Game for Run.
type game struct {
	ctx     context.Context
	effect  *Effect
	showFPS bool
	fps     string
	elapsed float64
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if err := g.effect.Update(); err != nil {
		return err
	}
	if g.showFPS {
		g.elapsed += 1 / float64(max(ebiten.TPS(), 1))
		if g.fps == "" || g.elapsed >= 0.5 {
			g.elapsed = 0
			g.fps = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.effect.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, g.fps)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.effect.Layout(outsideWidth, outsideHeight)
}

// Run opens a resizable window showing e full-window and blocks until the
// window closes or ctx is cancelled. e is closed on return.
func Run(ctx context.Context, e *Effect, cfg RunConfig) error {
	defer e.Close()

	title := cfg.Title
	if title == "" {
		title = e.name()
	}
	ebiten.SetWindowTitle(title)
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&game{ctx: ctx, effect: e, showFPS: cfg.ShowFPS})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
