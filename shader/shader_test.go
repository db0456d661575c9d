package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexShaderOutputsTextureCoordinate(t *testing.T) {
	src := GenerateVertexShader()
	assert.Contains(t, src, "#version 300 es")
	assert.Contains(t, src, "out vec2 textureCoordinate;")
	assert.Contains(t, src, "layout (location = 0) in vec2 position;")
}

func TestQuadVerticesCoverClipSpace(t *testing.T) {
	require.Len(t, QuadVertices, 12)
	for _, v := range QuadVertices {
		assert.True(t, v == -1 || v == 1)
	}
}

func TestCompileSPIRV(t *testing.T) {
	src := WGSLQuadVertex + `
@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(input.textureCoordinate, 0.0, 1.0);
}
`
	words, err := CompileSPIRV(src)
	require.NoError(t, err)
	require.NotEmpty(t, words)
	assert.Equal(t, uint32(SPIRVMagic), words[0])
}

func TestCompileSPIRVError(t *testing.T) {
	_, err := CompileSPIRV("fn broken( {")
	assert.Error(t, err)
}
