package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// ─────────────────────────────────── GLSL ───────────────────────────────────────

// Full-screen quad vertex shader. Written as WebGL2 GLSL and translated with
// the fragment shader so varying names stay in sync after translation.
const vertexShaderSource = `#version 300 es
layout (location = 0) in vec2 position;
out vec2 textureCoordinate;
void main() {
    textureCoordinate = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

// QuadVertices are two triangles covering clip space, matching attribute 0
// of the vertex shader.
var QuadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

func GenerateVertexShader() string {
	return vertexShaderSource
}

// ─────────────────────────────────── WGSL ───────────────────────────────────────

// WGSLQuadVertex is the WGSL counterpart of the quad vertex shader. Fragment
// modules append their bindings and fs_main to it.
const WGSLQuadVertex = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) textureCoordinate: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertexIndex: u32) -> VertexOutput {
    var positions = array<vec2<f32>, 6>(
        vec2<f32>(-1.0,  1.0),
        vec2<f32>(-1.0, -1.0),
        vec2<f32>( 1.0, -1.0),
        vec2<f32>(-1.0,  1.0),
        vec2<f32>( 1.0, -1.0),
        vec2<f32>( 1.0,  1.0)
    );

    var uvs = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 0.0),
        vec2<f32>(0.0, 1.0),
        vec2<f32>(1.0, 1.0),
        vec2<f32>(0.0, 0.0),
        vec2<f32>(1.0, 1.0),
        vec2<f32>(1.0, 0.0)
    );

    var output: VertexOutput;
    output.position = vec4<f32>(positions[vertexIndex], 0.0, 1.0);
    output.textureCoordinate = uvs[vertexIndex];
    return output;
}
`

// CompileSPIRV compiles a WGSL module to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spir-v output is %d bytes, not a whole number of words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203
