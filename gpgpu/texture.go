package gpgpu

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Sampler carries the texture wrap and filter settings by name, as used in
// job files: wrap "clamp" or "repeat", filter "nearest", "linear" or
// "mipmap".
type Sampler struct {
	Filter string `yaml:"filter"`
	Wrap   string `yaml:"wrap"`
}

// Texture is an RGBA8 2D texture holding one merge input.
type Texture struct {
	id     uint32
	width  int
	height int
}

// NewTexture uploads img as a non-premultiplied RGBA8 texture. The first
// image row lands at texture coordinate t=0.
func NewTexture(img image.Image, sampler Sampler) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: input image is nil", ErrInitialization)
	}
	nrgba := toNRGBA(img)
	width := nrgba.Rect.Dx()
	height := nrgba.Rect.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: input image is empty", ErrInitialization)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode(sampler.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode(sampler.Wrap))
	minFilter, magFilter := getFilterMode(sampler.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(nrgba.Pix),
	)

	if sampler.Filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{id: textureID, width: width, height: height}, nil
}

// toNRGBA returns img as a tightly packed NRGBA image with origin (0,0).
// Tightly packed NRGBA inputs are used without copying.
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Min == (image.Point{}) && src.Stride == 4*src.Rect.Dx() {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		// row copy keeps color under zero alpha, draw.Draw would not
		rowSize := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			srcRow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:], srcRow[:rowSize])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture width and height in pixels.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Destroy deletes the texture. It is safe to call more than once.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func getWrapMode(wrap string) int32 {
	switch wrap {
	case "repeat":
		return gl.REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case "linear":
		return gl.LINEAR, gl.LINEAR
	default:
		// exact texel values for same-size inputs
		return gl.NEAREST, gl.NEAREST
	}
}
