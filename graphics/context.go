package graphics

// Context is an OpenGL context the merge pipeline can render in.
type Context interface {
	MakeCurrent()
	Shutdown()
	// IsGLES reports whether the context speaks OpenGL ES, which selects
	// the shader dialect.
	IsGLES() bool
	GetFramebufferSize() (int, int)
}
