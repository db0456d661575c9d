package merge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initCall struct {
	w, h     int
	order    uint
	external bool
	source   string
}

type useCall struct {
	id, unit, target uint32
	position         int
}

// recordingFilter captures every call the operator forwards.
type recordingFilter struct {
	inits     []initCall
	uses      []useCall
	renders   int
	initErr   error
	renderErr error
}

func (f *recordingFilter) Init(inW, inH int, order uint, prepareForExternalInput bool, fragmentSource string) error {
	f.inits = append(f.inits, initCall{inW, inH, order, prepareForExternalInput, fragmentSource})
	return f.initErr
}

func (f *recordingFilter) UseTexture(id, unit, target uint32, position int) {
	f.uses = append(f.uses, useCall{id, unit, target, position})
}

func (f *recordingFilter) Render() error {
	f.renders++
	return f.renderErr
}

const textureTarget2D = 0x0DE1

func TestNewProcValidation(t *testing.T) {
	_, err := NewProc(nil, ModeRGRG)
	assert.Error(t, err)
	_, err = NewProc(&recordingFilter{}, Mode(9))
	assert.Error(t, err)

	p, err := NewProc(&recordingFilter{}, ModeRARG)
	require.NoError(t, err)
	assert.Equal(t, ModeRARG, p.Mode())
}

func TestProcInitForwardsShader(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			base := &recordingFilter{}
			p, err := NewProc(base, mode)
			require.NoError(t, err)

			require.NoError(t, p.Init(640, 480, 3, true))
			require.Len(t, base.inits, 1)
			assert.Equal(t, initCall{640, 480, 3, true, FragmentSource(mode)}, base.inits[0])
			assert.Equal(t, FragmentSource(mode), p.FragmentShaderSource())
		})
	}
}

func TestProcInitErrorIsUnchanged(t *testing.T) {
	baseErr := errors.New("framebuffer incomplete")
	base := &recordingFilter{initErr: baseErr}
	p, err := NewProc(base, ModeRGBAlphaFromR)
	require.NoError(t, err)

	err = p.Init(0, 0, 0, false)
	assert.Same(t, baseErr, err)
}

func TestProcUseTextureOffsetsUnit(t *testing.T) {
	base := &recordingFilter{}
	p, err := NewProc(base, ModeRGRG)
	require.NoError(t, err)

	require.NoError(t, p.UseTexture(11, 2, textureTarget2D, 0))
	require.NoError(t, p.UseTexture(12, 2, textureTarget2D, 1))

	assert.Equal(t, []useCall{
		{id: 11, unit: 2, target: textureTarget2D, position: 0},
		{id: 12, unit: 3, target: textureTarget2D, position: 1},
	}, base.uses)
}

func TestProcUseTextureInvalidSlot(t *testing.T) {
	base := &recordingFilter{}
	p, err := NewProc(base, ModeRGRG)
	require.NoError(t, err)

	for _, slot := range []int{-1, 2, 5} {
		assert.ErrorIs(t, p.UseTexture(1, 0, textureTarget2D, slot), ErrInvalidSlot)
	}
	assert.Empty(t, base.uses)
}

func TestProcProcess(t *testing.T) {
	base := &recordingFilter{}
	p, err := NewProc(base, ModeRARG)
	require.NoError(t, err)

	require.NoError(t, p.Process())
	require.NoError(t, p.Process())
	assert.Equal(t, 2, base.renders)

	base.renderErr = errors.New("gl error")
	assert.Same(t, base.renderErr, p.Process())
}
