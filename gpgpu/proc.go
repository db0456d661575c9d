package gpgpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/goswizzle/merge"
	"github.com/richinsley/goswizzle/shader"
)

// Sampler uniform names every two-input fragment shader declares.
const (
	inputTextureUniform  = "inputImageTexture"
	inputTexture2Uniform = "inputImageTexture2"
)

type inputBinding struct {
	id     uint32
	unit   uint32
	target uint32
	bound  bool
}

// TwoInputProc is an OpenGL implementation of merge.TwoInputFilter. It
// renders a full-screen quad with the supplied fragment shader into an
// RGBA8 framebuffer, sampling two bound input textures.
type TwoInputProc struct {
	gles          bool
	width         int
	height        int
	order         uint
	externalInput bool

	program     uint32
	samplerLocs [2]int32
	inputs      [2]inputBinding

	fbo       uint32
	textureID uint32
	quadVAO   uint32
	quadVBO   uint32

	initialized bool
}

var _ merge.TwoInputFilter = (*TwoInputProc)(nil)

// NewTwoInputProc creates an uninitialized filter. gles selects the ESSL
// shader dialect instead of desktop GLSL.
func NewTwoInputProc(gles bool) *TwoInputProc {
	return &TwoInputProc{gles: gles}
}

// Init builds the program from fragmentSource and allocates an inW x inH
// output. Calling Init again releases the previous resources first.
func (p *TwoInputProc) Init(inW, inH int, order uint, prepareForExternalInput bool, fragmentSource string) error {
	if inW <= 0 || inH <= 0 {
		return fmt.Errorf("%w: invalid output size %dx%d", ErrInitialization, inW, inH)
	}
	if p.initialized {
		p.Destroy()
	}

	program, fs, err := buildProgram(fragmentSource, p.gles)
	if err != nil {
		return err
	}
	p.program = program
	p.samplerLocs[0] = uniformLocation(program, fs, inputTextureUniform)
	p.samplerLocs[1] = uniformLocation(program, fs, inputTexture2Uniform)
	if p.samplerLocs[0] < 0 || p.samplerLocs[1] < 0 {
		p.Destroy()
		return fmt.Errorf("%w: fragment shader must use %s and %s", ErrShaderCompilation, inputTextureUniform, inputTexture2Uniform)
	}

	if err := p.createOutput(inW, inH); err != nil {
		p.Destroy()
		return err
	}
	p.createQuad()

	p.width = inW
	p.height = inH
	p.order = order
	p.externalInput = prepareForExternalInput
	p.inputs = [2]inputBinding{}
	p.initialized = true

	log.Debug().
		Int("width", inW).
		Int("height", inH).
		Uint("order", order).
		Bool("gles", p.gles).
		Msg("two-input filter initialized")
	return nil
}

func (p *TwoInputProc) createOutput(width, height int) error {
	gl.GenFramebuffers(1, &p.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.GenTextures(1, &p.textureID)
	gl.BindTexture(gl.TEXTURE_2D, p.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.textureID, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: output framebuffer is not complete (status 0x%x)", ErrInitialization, status)
	}
	return nil
}

func (p *TwoInputProc) createQuad() {
	gl.GenVertexArrays(1, &p.quadVAO)
	gl.GenBuffers(1, &p.quadVBO)
	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(shader.QuadVertices)*4, gl.Ptr(shader.QuadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// UseTexture records texture id for input position, to be sampled from
// texture unit during Render.
func (p *TwoInputProc) UseTexture(id, unit, target uint32, position int) {
	if position < 0 || position >= len(p.inputs) {
		log.Warn().Int("position", position).Msg("ignoring texture for unknown input position")
		return
	}
	p.inputs[position] = inputBinding{id: id, unit: unit, target: target, bound: true}
}

// Render draws one frame into the output framebuffer.
func (p *TwoInputProc) Render() error {
	if !p.initialized {
		return fmt.Errorf("%w: render before init", ErrInitialization)
	}
	for i, in := range p.inputs {
		if !in.bound {
			return fmt.Errorf("input %d has no texture bound", i)
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	gl.Disable(gl.BLEND)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(p.program)
	for i, in := range p.inputs {
		gl.ActiveTexture(gl.TEXTURE0 + in.unit)
		gl.BindTexture(in.target, in.id)
		gl.Uniform1i(p.samplerLocs[i], int32(in.unit))
	}

	gl.BindVertexArray(p.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	for _, in := range p.inputs {
		gl.ActiveTexture(gl.TEXTURE0 + in.unit)
		gl.BindTexture(in.target, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("render pass failed with gl error 0x%x", e)
	}
	return nil
}

// ReadPixels copies the output framebuffer into a new image. Row 0 of the
// image is texture coordinate t=0, matching how inputs were uploaded.
func (p *TwoInputProc) ReadPixels() (*image.NRGBA, error) {
	if !p.initialized {
		return nil, fmt.Errorf("%w: read before init", ErrInitialization)
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(p.width), int32(p.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("read back failed with gl error 0x%x", e)
	}
	return img, nil
}

// OutputTexture returns the texture the filter renders into, for chaining
// into a later filter.
func (p *TwoInputProc) OutputTexture() uint32 { return p.textureID }

// Order returns the processing order given to Init.
func (p *TwoInputProc) Order() uint { return p.order }

// ExternalInput reports the prepareForExternalInput flag given to Init.
func (p *TwoInputProc) ExternalInput() bool { return p.externalInput }

// Size returns the output dimensions.
func (p *TwoInputProc) Size() (int, int) { return p.width, p.height }

// Destroy releases the program, framebuffer, output texture and quad.
func (p *TwoInputProc) Destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
		p.fbo = 0
	}
	if p.textureID != 0 {
		gl.DeleteTextures(1, &p.textureID)
		p.textureID = 0
	}
	if p.quadVBO != 0 {
		gl.DeleteBuffers(1, &p.quadVBO)
		p.quadVBO = 0
	}
	if p.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &p.quadVAO)
		p.quadVAO = 0
	}
	p.initialized = false
}
