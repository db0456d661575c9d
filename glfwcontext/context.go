package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/goswizzle/graphics"
)

// Context is a desktop OpenGL 4.1 core context backed by a GLFW window.
// The window stays hidden; rendering goes to framebuffer objects.
type Context struct {
	window *glfw.Window
}

var _ graphics.Context = (*Context)(nil)

// New creates a hidden width x height window and makes its context current.
// InitGraphics must have been called on the main thread first.
func New(width, height int) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(width, height, "goswizzle", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	c.MakeCurrent()
	return c, nil
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// Shutdown destroys the window and its context.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Debug().Msg("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Debug().Msg("GLFW terminated")
}
