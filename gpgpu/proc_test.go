package gpgpu

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goswizzle/merge"
)

func TestInitRejectsInvalidSize(t *testing.T) {
	p := NewTwoInputProc(true)
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		err := p.Init(size[0], size[1], 0, false, merge.FragmentRGRG)
		assert.ErrorIs(t, err, ErrInitialization)
	}
}

func TestRenderAndReadBeforeInit(t *testing.T) {
	p := NewTwoInputProc(false)
	assert.ErrorIs(t, p.Render(), ErrInitialization)
	_, err := p.ReadPixels()
	assert.ErrorIs(t, err, ErrInitialization)
}

func TestUseTextureRecordsBinding(t *testing.T) {
	p := NewTwoInputProc(false)
	p.UseTexture(5, 2, gl.TEXTURE_2D, 0)
	p.UseTexture(6, 3, gl.TEXTURE_2D, 1)
	p.UseTexture(7, 4, gl.TEXTURE_2D, 2)

	assert.Equal(t, inputBinding{id: 5, unit: 2, target: gl.TEXTURE_2D, bound: true}, p.inputs[0])
	assert.Equal(t, inputBinding{id: 6, unit: 3, target: gl.TEXTURE_2D, bound: true}, p.inputs[1])
}

func TestMergeProcOffsetsUnitsOnHost(t *testing.T) {
	host := NewTwoInputProc(false)
	proc, err := merge.NewProc(host, merge.ModeRGRG)
	require.NoError(t, err)

	require.NoError(t, proc.UseTexture(21, 4, gl.TEXTURE_2D, 0))
	require.NoError(t, proc.UseTexture(22, 4, gl.TEXTURE_2D, 1))
	assert.Equal(t, uint32(4), host.inputs[0].unit)
	assert.Equal(t, uint32(5), host.inputs[1].unit)
}

func TestToNRGBA(t *testing.T) {
	packed := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, packed, toNRGBA(packed))

	// sub-image keeps raw channels even under zero alpha
	parent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	parent.SetNRGBA(2, 1, color.NRGBA{200, 100, 50, 0})
	sub := parent.SubImage(image.Rect(2, 1, 4, 3)).(*image.NRGBA)
	got := toNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	assert.Equal(t, color.NRGBA{200, 100, 50, 0}, got.NRGBAAt(0, 0))

	gray := image.NewGray(image.Rect(3, 3, 4, 4))
	gray.SetGray(3, 3, color.Gray{77})
	got = toNRGBA(gray)
	assert.Equal(t, color.NRGBA{77, 77, 77, 255}, got.NRGBAAt(0, 0))
}

func TestSamplerModes(t *testing.T) {
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), getWrapMode(""))
	assert.Equal(t, int32(gl.REPEAT), getWrapMode("repeat"))

	minF, magF := getFilterMode("")
	assert.Equal(t, int32(gl.NEAREST), minF)
	assert.Equal(t, int32(gl.NEAREST), magF)
	minF, _ = getFilterMode("mipmap")
	assert.Equal(t, int32(gl.LINEAR_MIPMAP_LINEAR), minF)
}
