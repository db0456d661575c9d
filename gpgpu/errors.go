package gpgpu

import "errors"

var (
	// ErrInitialization marks failures while setting up the filter's GL
	// resources: bad dimensions, incomplete framebuffers, missing init.
	ErrInitialization = errors.New("gpgpu: initialization failed")

	// ErrShaderCompilation marks shader translation, compile or link failures.
	ErrShaderCompilation = errors.New("gpgpu: shader compilation failed")
)
