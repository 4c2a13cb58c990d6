package liquid

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// simulator advances the displacement field once per frame and exposes it as
// an RGBA8-encoded texture for the render pass.
type simulator interface {
	Step(s PointerSample) error
	Field() *ebiten.Image
	Dispose()
}

func newSimulator(b Backend, size int, p stepParams) simulator {
	if b == BackendCPU {
		return newCPUSimulator(size, p)
	}
	return newGPUSimulator(size, p)
}

// --- GPU ---

// gpuSimulator runs the fluid Kage program over a ping-pong pair.
type gpuSimulator struct {
	buf      *pingPong
	size     int
	uniforms map[string]any
	mouse    [2]float32 // persistent buffers referenced by uniforms
	delta    [2]float32
	shaderOp ebiten.DrawRectShaderOptions
}

func newGPUSimulator(size int, p stepParams) *gpuSimulator {
	g := &gpuSimulator{
		buf:      newPingPong(size, size),
		size:     size,
		uniforms: make(map[string]any, 7),
	}
	g.uniforms["Mouse"] = g.mouse[:]
	g.uniforms["MouseDelta"] = g.delta[:]
	g.uniforms["Radius"] = p.Radius
	g.uniforms["Diffusion"] = p.Diffusion
	g.uniforms["Gain"] = p.Gain
	g.uniforms["Decay"] = p.Decay
	g.shaderOp.Blend = ebiten.BlendCopy
	return g
}

// Step renders the next field from the current one into the other buffer.
func (g *gpuSimulator) Step(s PointerSample) error {
	shader, err := fluidProgram.get()
	if err != nil {
		return err
	}
	g.mouse[0], g.mouse[1] = float32(s.Pos.X), float32(s.Pos.Y)
	g.delta[0], g.delta[1] = float32(s.Delta.X), float32(s.Delta.Y)
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	g.uniforms["Active"] = s.Active

	g.shaderOp.Images[0] = g.buf.Read()
	g.shaderOp.Uniforms = g.uniforms
	g.buf.Write().DrawRectShader(g.size, g.size, shader, &g.shaderOp)
	g.buf.Swap()
	return nil
}

func (g *gpuSimulator) Field() *ebiten.Image { return g.buf.Read() }

func (g *gpuSimulator) Dispose() { g.buf.Dispose() }

// --- CPU ---

// cpuSimulator steps a Field on the CPU and uploads it each frame.
type cpuSimulator struct {
	field  *Field
	tex    *RenderTexture
	pix    []byte
	params stepParams
}

func newCPUSimulator(size int, p stepParams) *cpuSimulator {
	c := &cpuSimulator{
		field:  NewField(size, size),
		tex:    NewRenderTexture(size, size),
		pix:    make([]byte, size*size*4),
		params: p,
	}
	fillNeutral(c.tex.image)
	return c
}

func (c *cpuSimulator) Step(s PointerSample) error {
	if err := c.field.Step(s, c.params); err != nil {
		return err
	}
	c.field.Encode(c.pix)
	c.tex.image.WritePixels(c.pix)
	return nil
}

func (c *cpuSimulator) Field() *ebiten.Image { return c.tex.image }

func (c *cpuSimulator) Dispose() { c.tex.Dispose() }
