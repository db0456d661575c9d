package gpgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goswizzle/shader"
	"github.com/richinsley/goswizzle/translator"
)

// buildProgram translates the quad vertex shader and fragmentSource into
// the context's dialect and links them. The translated fragment stage is
// returned for uniform name lookups.
func buildProgram(fragmentSource string, gles bool) (uint32, *translator.Shader, error) {
	vs, err := translator.Translate(shader.GenerateVertexShader(), "vertex", gles)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
	}
	fs, err := translator.Translate(fragmentSource, "fragment", gles)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
	}

	program, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
	}
	return program, fs, nil
}

// uniformLocation resolves a WebGL2 uniform name through the translator's
// name map. Returns -1 when the uniform was optimized out.
func uniformLocation(program uint32, fs *translator.Shader, name string) int32 {
	mapped := fs.MappedName(name)
	if mapped == "" {
		return -1
	}
	return gl.GetUniformLocation(program, gl.Str(mapped+"\x00"))
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	id := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(logText))
		gl.DeleteShader(id)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(logText, "\x00"))
	}
	return id, nil
}
