package merge

import "github.com/richinsley/goswizzle/shader"

// Fragment shaders are written against WebGL2 GLSL and translated to the
// context's dialect at program build time. Every variant samples
// inputImageTexture and inputImageTexture2 at the same textureCoordinate.

const fragmentHeader = `#version 300 es
precision highp float;

in vec2 textureCoordinate;
uniform sampler2D inputImageTexture;
uniform sampler2D inputImageTexture2;
out vec4 fragColor;

void main()
{
    vec4 textureColor = texture(inputImageTexture, textureCoordinate);
    vec4 textureColor2 = texture(inputImageTexture2, textureCoordinate);
`

// FragmentRGBAlphaFromR writes A.rgb and B.r as alpha.
const FragmentRGBAlphaFromR = fragmentHeader + `
    fragColor = vec4(textureColor.rgb, textureColor2.r);
}
`

// FragmentRGRG writes A.rg followed by B.rg.
const FragmentRGRG = fragmentHeader + `
    fragColor = vec4(textureColor.rg, textureColor2.rg);
}
`

// FragmentRARG writes A.r, A.a followed by B.rg.
const FragmentRARG = fragmentHeader + `
    fragColor = vec4(textureColor.ra, textureColor2.rg);
}
`

// WGSL twins of the fragment shaders, for wgpu/Vulkan pipelines.

const wgslFragmentHeader = shader.WGSLQuadVertex + `
@group(0) @binding(0) var inputSampler: sampler;
@group(0) @binding(1) var inputImageTexture: texture_2d<f32>;
@group(0) @binding(2) var inputImageTexture2: texture_2d<f32>;

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    let textureColor = textureSample(inputImageTexture, inputSampler, input.textureCoordinate);
    let textureColor2 = textureSample(inputImageTexture2, inputSampler, input.textureCoordinate);
`

// WGSLRGBAlphaFromR is the WGSL form of FragmentRGBAlphaFromR.
const WGSLRGBAlphaFromR = wgslFragmentHeader + `
    return vec4<f32>(textureColor.rgb, textureColor2.r);
}
`

// WGSLRGRG is the WGSL form of FragmentRGRG.
const WGSLRGRG = wgslFragmentHeader + `
    return vec4<f32>(textureColor.rg, textureColor2.rg);
}
`

// WGSLRARG is the WGSL form of FragmentRARG.
const WGSLRARG = wgslFragmentHeader + `
    return vec4<f32>(textureColor.ra, textureColor2.rg);
}
`

// FragmentSource returns the WebGL2 fragment shader for mode, or "" for
// an invalid mode.
func FragmentSource(mode Mode) string {
	switch mode {
	case ModeRGBAlphaFromR:
		return FragmentRGBAlphaFromR
	case ModeRGRG:
		return FragmentRGRG
	case ModeRARG:
		return FragmentRARG
	default:
		return ""
	}
}

// WGSLSource returns the WGSL module (vertex and fragment entry points)
// for mode, or "" for an invalid mode.
func WGSLSource(mode Mode) string {
	switch mode {
	case ModeRGBAlphaFromR:
		return WGSLRGBAlphaFromR
	case ModeRGRG:
		return WGSLRGRG
	case ModeRARG:
		return WGSLRARG
	default:
		return ""
	}
}
