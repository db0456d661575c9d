package merge

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrEmptyInput is returned by Images when b has no pixels to sample
// for a non-empty a.
var ErrEmptyInput = errors.New("merge: input b is empty")

// Pixel applies the channel selection of mode to one pair of co-located
// samples. Channels are in R, G, B, A order and expected in [0,1]. An
// invalid mode yields a zero pixel.
func Pixel(mode Mode, a, b [4]float32) [4]float32 {
	switch mode {
	case ModeRGBAlphaFromR:
		return [4]float32{a[0], a[1], a[2], b[0]}
	case ModeRGRG:
		return [4]float32{a[0], a[1], b[0], b[1]}
	case ModeRARG:
		return [4]float32{a[0], a[3], b[0], b[1]}
	default:
		return [4]float32{}
	}
}

// Images is the CPU rendition of the merge pass. The output takes the
// bounds of a. b is sampled at the same normalized coordinate as a using
// nearest-pixel lookup, so inputs of different sizes are accepted.
//
// Samples are read non-premultiplied. For *image.NRGBA and *image.NRGBA64
// sources the stored channels are used as-is, which keeps color data in
// fully transparent pixels; other image types go through
// color.NRGBA64Model.
func Images(mode Mode, a, b image.Image) (*image.NRGBA, error) {
	if a == nil || b == nil {
		return nil, errors.New("merge: both input images are required")
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("merge: invalid mode %d", int(mode))
	}

	ab, bb := a.Bounds(), b.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, ab.Dx(), ab.Dy()))
	if ab.Empty() {
		return out, nil
	}
	if bb.Empty() {
		return nil, ErrEmptyInput
	}

	aw, ah := float64(ab.Dx()), float64(ab.Dy())
	bw, bh := bb.Dx(), bb.Dy()
	for y := 0; y < ab.Dy(); y++ {
		by := bb.Min.Y + scaleCoord(y, ah, bh)
		for x := 0; x < ab.Dx(); x++ {
			bx := bb.Min.X + scaleCoord(x, aw, bw)
			p := Pixel(mode, sample(a, ab.Min.X+x, ab.Min.Y+y), sample(b, bx, by))
			i := out.PixOffset(x, y)
			out.Pix[i+0] = quantize(p[0])
			out.Pix[i+1] = quantize(p[1])
			out.Pix[i+2] = quantize(p[2])
			out.Pix[i+3] = quantize(p[3])
		}
	}
	return out, nil
}

// scaleCoord maps pixel i of a span of length from onto the nearest pixel
// of a span of length to, through the pixel centre.
func scaleCoord(i int, from float64, to int) int {
	j := int(math.Floor((float64(i) + 0.5) / from * float64(to)))
	if j >= to {
		j = to - 1
	}
	return j
}

func sample(img image.Image, x, y int) [4]float32 {
	switch src := img.(type) {
	case *image.NRGBA:
		i := src.PixOffset(x, y)
		s := src.Pix[i : i+4 : i+4]
		return [4]float32{
			float32(s[0]) / 255, float32(s[1]) / 255,
			float32(s[2]) / 255, float32(s[3]) / 255,
		}
	case *image.NRGBA64:
		c := src.NRGBA64At(x, y)
		return unit16(c)
	}
	c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
	return unit16(c)
}

func unit16(c color.NRGBA64) [4]float32 {
	return [4]float32{
		float32(c.R) / 0xffff, float32(c.G) / 0xffff,
		float32(c.B) / 0xffff, float32(c.A) / 0xffff,
	}
}

func quantize(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
