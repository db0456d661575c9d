package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStillImage(t *testing.T) {
	assert.True(t, IsStillImage("a.png"))
	assert.True(t, IsStillImage("dir/B.JPG"))
	assert.True(t, IsStillImage("c.jpeg"))
	assert.False(t, IsStillImage("clip.mp4"))
	assert.False(t, IsStillImage("frame.exr"))
	assert.False(t, IsStillImage("noext"))
}

func TestSaveAndLoadPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})
	img.SetNRGBA(2, 1, color.NRGBA{250, 128, 7, 255})

	path := filepath.Join(t.TempDir(), "nested", "out.png")
	require.NoError(t, SavePNG(path, img))

	l := &Loader{}
	got, err := l.Load(path, 0)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), got.Bounds())

	nrgba, ok := got.(*image.NRGBA)
	require.True(t, ok, "png keeps non-premultiplied pixels")
	assert.Equal(t, img.Pix, nrgba.Pix)
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	require.NoError(t, f.Close())

	got, err := (&Loader{}).Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), got.Bounds())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{}

	_, err := l.Load(filepath.Join(dir, "missing.png"), 0)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not a png"), 0644))
	_, err = l.Load(garbage, 0)
	assert.Error(t, err)

	// video paths are checked before ffmpeg is started
	_, err = l.Load(filepath.Join(dir, "missing.mp4"), 0)
	assert.Error(t, err)
	_, err = l.Load(filepath.Join(dir, "missing.mp4"), -1)
	assert.Error(t, err)
}
