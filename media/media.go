// Package media loads merge inputs and writes merge outputs.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	// decoders for image.Decode
	_ "image/jpeg"
)

// Loader reads still images directly and pulls single frames out of
// anything else through ffmpeg.
type Loader struct {
	// FFmpegPath overrides the ffmpeg binary looked up on PATH.
	FFmpegPath string
}

// IsStillImage reports whether path has an extension decoded in-process.
func IsStillImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Load returns the image at path. For video containers and other formats
// frame selects the zero-based frame to extract; it is ignored for still
// images.
func (l *Loader) Load(path string, frame int) (image.Image, error) {
	if IsStillImage(path) {
		return decodeFile(path)
	}
	return l.extractFrame(path, frame)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	log.Debug().Str("path", path).Str("format", format).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).
		Msg("decoded image")
	return img, nil
}

func (l *Loader) extractFrame(path string, frame int) (image.Image, error) {
	if frame < 0 {
		return nil, fmt.Errorf("invalid frame index %d", frame)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var out, stderr bytes.Buffer
	stream := ffmpeg.Input(path).
		Filter("select", ffmpeg.Args{fmt.Sprintf("gte(n,%d)", frame)}).
		Output("pipe:", ffmpeg.KwArgs{
			"vframes": 1,
			"format":  "image2",
			"vcodec":  "png",
			"pix_fmt": "rgba",
		}).
		WithOutput(&out).
		WithErrorOutput(&stderr)

	if l.FFmpegPath != "" {
		stream = stream.SetFfmpegPath(l.FFmpegPath)
	}
	if err := stream.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame %d of %s: %w: %s", frame, path, err, strings.TrimSpace(stderr.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame %d for %s", frame, path)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg frame: %w", err)
	}
	log.Debug().Str("path", path).Int("frame", frame).Msg("extracted frame")
	return img, nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
