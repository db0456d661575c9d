package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goswizzle/merge"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }
func boolp(b bool) *bool    { return &b }

func flagOptions() *MergeOptions {
	return &MergeOptions{
		InputA:     strp("a.png"),
		InputB:     strp("b.png"),
		Mode:       strp("ra_rg"),
		OutputFile: strp("out.png"),
		Frame:      intp(0),
		CPU:        boolp(false),
		Headless:   boolp(true),
		Filter:     strp("nearest"),
		Wrap:       strp("clamp"),
		FFMPEGPath: strp("/usr/bin/ffmpeg"),
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cpu: true
filter: linear
jobs:
  - a: color.png
    b: mask.png
    mode: rgb_r
    output: out/rgba.png
  - a: clip.mp4
    b: depth.mp4
    mode: a_ra_b_rg
    output: out/packed.png
    frame: 12
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.CPU)
	assert.Equal(t, "linear", c.Filter)
	assert.Nil(t, c.Headless)
	require.Len(t, c.Jobs, 2)
	assert.Equal(t, Job{A: "color.png", B: "mask.png", Mode: merge.ModeRGBAlphaFromR, Output: "out/rgba.png"}, c.Jobs[0])
	assert.Equal(t, merge.ModeRARG, c.Jobs[1].Mode)
	assert.Equal(t, 12, c.Jobs[1].Frame)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := map[string]string{
		"badmode.yaml": "jobs:\n  - {a: a.png, b: b.png, mode: rgba, output: o.png}\n",
		"noout.yaml":   "jobs:\n  - {a: a.png, b: b.png, mode: rg_rg}\n",
		"nojobs.yaml":  "cpu: true\n",
		"frame.yaml":   "jobs:\n  - {a: a.png, b: b.png, output: o.png, frame: -2}\n",
	}
	for name, body := range bad {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	in := &Config{
		Wrap: "repeat",
		Jobs: []Job{{A: "a.png", B: "b.png", Mode: merge.ModeRGRG, Output: "o.png"}},
	}
	require.NoError(t, Save(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "mode: rg_rg")

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFromFlags(t *testing.T) {
	c, err := FromFlags(flagOptions())
	require.NoError(t, err)
	require.Len(t, c.Jobs, 1)
	assert.Equal(t, Job{A: "a.png", B: "b.png", Mode: merge.ModeRARG, Output: "out.png"}, c.Jobs[0])
	require.NotNil(t, c.Headless)
	assert.True(t, *c.Headless)
	assert.Equal(t, "/usr/bin/ffmpeg", c.FFMPEGPath)

	o := flagOptions()
	o.Mode = strp("bogus")
	_, err = FromFlags(o)
	assert.Error(t, err)

	o = flagOptions()
	o.InputB = strp("")
	_, err = FromFlags(o)
	assert.Error(t, err)
}

func TestOverlay(t *testing.T) {
	c := &Config{Filter: "linear", Headless: boolp(false)}
	o := flagOptions()
	o.CPU = boolp(true)
	c.Overlay(o)

	assert.True(t, c.CPU)
	assert.Equal(t, "linear", c.Filter)
	assert.Equal(t, "clamp", c.Wrap)
	assert.False(t, *c.Headless)
	assert.Equal(t, "/usr/bin/ffmpeg", c.FFMPEGPath)
}
