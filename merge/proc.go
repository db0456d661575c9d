package merge

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrInvalidSlot is returned by Proc.UseTexture for a slot other than 0 or 1.
var ErrInvalidSlot = errors.New("merge: input slot must be 0 or 1")

// TwoInputFilter is the host pipeline's two-input filter base. The host
// owns program compilation, texture units, the output framebuffer and the
// render pass; the merge operator only supplies the fragment shader.
type TwoInputFilter interface {
	// Init prepares an output of inW x inH for the given processing order,
	// building the program from fragmentSource.
	Init(inW, inH int, order uint, prepareForExternalInput bool, fragmentSource string) error

	// UseTexture binds texture id of the given target to texture unit for
	// input position 0 or 1.
	UseTexture(id, unit, target uint32, position int)

	// Render runs one render pass into the output.
	Render() error
}

// Proc is the channel-merge filter. It forwards everything to its base
// and contributes only the shader for its mode.
type Proc struct {
	base TwoInputFilter
	mode Mode
}

// NewProc creates a merge operator for mode on top of base.
func NewProc(base TwoInputFilter, mode Mode) (*Proc, error) {
	if base == nil {
		return nil, errors.New("merge: nil base filter")
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("merge: invalid mode %d", int(mode))
	}
	return &Proc{base: base, mode: mode}, nil
}

// Mode returns the merge mode chosen at construction.
func (p *Proc) Mode() Mode { return p.mode }

// FragmentShaderSource returns the shader handed to the base on Init.
func (p *Proc) FragmentShaderSource() string { return FragmentSource(p.mode) }

// Init initializes the base filter with this operator's shader. Errors
// from the base are returned unchanged.
func (p *Proc) Init(inW, inH int, order uint, prepareForExternalInput bool) error {
	log.Debug().
		Str("mode", p.mode.String()).
		Int("width", inW).
		Int("height", inH).
		Uint("order", order).
		Msg("merge: init")
	return p.base.Init(inW, inH, order, prepareForExternalInput, p.FragmentShaderSource())
}

// UseTexture binds input position (0 or 1) on unit+position so the two
// inputs never share a texture unit.
func (p *Proc) UseTexture(id, unit, target uint32, position int) error {
	if position != 0 && position != 1 {
		return ErrInvalidSlot
	}
	p.base.UseTexture(id, unit+uint32(position), target, position)
	return nil
}

// Process runs the base render pass for the current frame.
func (p *Proc) Process() error {
	return p.base.Render()
}
