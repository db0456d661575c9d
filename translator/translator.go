package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use. Creating it loads the ANGLE module, so callers share it.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Shader is a translated shader stage.
type Shader struct {
	Code      string
	Variables map[string]gst.ShaderVariable
}

// MappedName returns the name a WebGL2 identifier was given in the
// translated output, or "" when the translator dropped it.
func (s *Shader) MappedName(name string) string {
	if v, ok := s.Variables[name]; ok {
		return v.MappedName
	}
	return ""
}

// Translate converts WebGL2 GLSL for stage ("vertex" or "fragment") into
// ESSL when gles is set and desktop GLSL 4.10 otherwise.
func Translate(source, stage string, gles bool) (*Shader, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	res, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return &Shader{Code: res.Code, Variables: res.Variables}, nil
}
