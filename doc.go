// Package liquid is an interactive liquid distortion effect for [Ebitengine].
//
// An [Effect] displays one image, scaled to cover its surface, and warps it
// through a low-resolution displacement field. Moving the pointer (mouse or
// first touch) across the surface pushes the field along the direction of
// motion; each step the field also diffuses toward its neighbours and decays
// back to rest, so the image ripples and then settles.
//
// # Quick start
//
// [Run] opens a window and drives the effect for you:
//
//	e, err := liquid.New(liquid.Config{Source: "photo.jpg"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := liquid.Run(ctx, e, liquid.RunConfig{Width: 800, Height: 600}); err != nil {
//		log.Fatal(err)
//	}
//
// To embed the effect in an existing game, call [Effect.Update],
// [Effect.Draw] and [Effect.Layout] from the matching [ebiten.Game] methods:
//
//	type Game struct{ fx *liquid.Effect }
//
//	func (g *Game) Update() error               { return g.fx.Update() }
//	func (g *Game) Draw(s *ebiten.Image)        { g.fx.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return g.fx.Layout(w, h) }
//
// Use [Effect.SetBounds] to place the surface inside a larger screen.
//
// # Simulation
//
// The field is a Resolution x Resolution grid of 2D vectors in [-1, 1],
// stepped once per Update. With the default [BackendGPU] it lives in a pair
// of ping-pong render textures and is stepped by a Kage shader; vectors are
// stored as RGBA8 bytes 128+v*127 in R and G, so zero is exact. After decay
// each component also moves a fixed rest step toward zero, which lets the
// 8-bit field come fully to rest. [BackendCPU] steps a float32 [Field]
// across worker goroutines and uploads it every frame. Both backends apply
// the same rule and share [Config]'s tunables.
//
// # Image
//
// Config.Source is a file path or an http(s) URL. PNG, JPEG, GIF and WebP
// are decoded off the game goroutine. Until the image is ready only the
// background colour is drawn; afterwards the image fades in over
// Config.FadeIn seconds. A failed load is logged once and never retried.
//
// # Testing
//
// [Effect.InjectMove], [Effect.InjectTouch], [Effect.InjectSwipe] and
// [Effect.InjectLeave] queue synthetic pointer events that replace live
// input one per frame. [LoadTestScript] builds a [TestRunner] from JSON for
// scripted sessions; script positions are fractions of the effect bounds.
// [Effect.Screenshot] writes the surface to PNG.
//
// [Ebitengine]: https://ebitengine.org
package liquid
