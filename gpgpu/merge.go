package gpgpu

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/goswizzle/graphics"
	"github.com/richinsley/goswizzle/merge"
)

// gl.Init is only needed once per process.
var glInitOnce sync.Once

// InitGL makes ctx current and loads the GL entry points.
func InitGL(ctx graphics.Context) error {
	ctx.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return nil
}

// Merge runs one merge pass of a and b in ctx and reads the result back.
// The output has a's size; b is sampled at the same normalized coordinates
// whatever its size.
func Merge(ctx graphics.Context, mode merge.Mode, a, b image.Image, sampler Sampler) (*image.NRGBA, error) {
	if err := InitGL(ctx); err != nil {
		return nil, err
	}

	ta, err := NewTexture(a, sampler)
	if err != nil {
		return nil, fmt.Errorf("input A: %w", err)
	}
	defer ta.Destroy()
	tb, err := NewTexture(b, sampler)
	if err != nil {
		return nil, fmt.Errorf("input B: %w", err)
	}
	defer tb.Destroy()

	aw, ah := ta.Size()
	if bw, bh := tb.Size(); bw != aw || bh != ah {
		log.Warn().
			Int("a_width", aw).Int("a_height", ah).
			Int("b_width", bw).Int("b_height", bh).
			Msg("merge inputs differ in size, B is resampled")
	}

	host := NewTwoInputProc(ctx.IsGLES())
	defer host.Destroy()

	proc, err := merge.NewProc(host, mode)
	if err != nil {
		return nil, err
	}
	if err := proc.Init(aw, ah, 0, true); err != nil {
		return nil, err
	}
	if err := proc.UseTexture(ta.ID(), 0, gl.TEXTURE_2D, 0); err != nil {
		return nil, err
	}
	if err := proc.UseTexture(tb.ID(), 0, gl.TEXTURE_2D, 1); err != nil {
		return nil, err
	}
	if err := proc.Process(); err != nil {
		return nil, err
	}
	return host.ReadPixels()
}
