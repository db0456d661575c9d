package options

// MergeOptions holds the command-line settings. Fields are pointers so
// they can be bound directly to flag definitions.
type MergeOptions struct {
	InputA     *string
	InputB     *string
	Mode       *string
	OutputFile *string
	Frame      *int    // frame index when an input is a video
	CPU        *bool   // use the CPU reference instead of OpenGL
	Headless   *bool   // prefer EGL over a hidden GLFW window
	Filter     *string // texture filter: nearest, linear, mipmap
	Wrap       *string // texture wrap: clamp, repeat
	FFMPEGPath *string
	ConfigFile *string
	Emit       *string // print a shader (glsl, wgsl, spirv) and exit
	LogLevel   *string
	Help       *bool
}
