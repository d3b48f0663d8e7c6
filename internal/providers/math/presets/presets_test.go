package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Presets, 16)
	assert.Len(t, c.Ranges, 6)

	p, ok := c.Find("beat-frequency")
	require.True(t, ok)
	assert.Equal(t, "sin(x)+sin(1.1*x)", p.Expression)
	assert.Equal(t, "-pi*20", p.Start)

	r, ok := c.FindRange("-2pi..2pi")
	require.True(t, ok)
	assert.Equal(t, "2.0*pi", r.Stop)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestDefaultCatalogModes(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	want := map[string]plotting.Mode{
		"curve":      plotting.ModeSingle,
		"parametric": plotting.ModeParametric2D,
		"polar":      plotting.ModePolar,
		"line3d":     plotting.ModeParametric3D,
		"surface":    plotting.ModeSurface,
	}
	for _, p := range c.Presets {
		mode, err := p.Mode()
		require.NoError(t, err, p.Name)
		assert.Equal(t, want[p.Category], mode, p.Name)
	}
}

func TestEveryPresetSamples(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, p := range c.Presets {
		ds, err := plotting.Sample(p.Request(1000), plotting.DefaultLimits())
		require.NoError(t, err, p.Name)
		assert.NotEmpty(t, ds.Channels, p.Name)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.toml")
	body := `
[[presets]]
name = "parabola"
title = "Parabola"
category = "curve"
expression = "x**2"
start = "-1"
stop = "1"

[[ranges]]
name = "unit"
start = "0"
stop = "1"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Presets, 1)
	assert.Equal(t, "x**2", c.Presets[0].Expression)
	assert.Equal(t, "unit", c.Ranges[0].Name)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yml")
	body := "presets:\n  - name: line\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "line", c.Presets[0].Name)
}

func TestLoadEmptyPathUsesBuiltin(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Presets)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("presets:\n  - name: bad\n    expression: sin(\n    start: \"0\"\n    stop: \"1\"\n"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("presets:\n  - name: a\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n  - name: a\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n"), "yaml")
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte("ranges:\n  - name: r\n    start: foo\n    stop: \"1\"\n"), "yaml")
	assert.ErrorIs(t, err, plotting.ErrInterval)

	_, err = Parse([]byte("{}"), "json")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadGlobMerges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"),
		[]byte("presets:\n  - name: a\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra", "b.toml"),
		[]byte("[[presets]]\nname = \"b\"\nexpression = \"x**2\"\nstart = \"0\"\nstop = \"1\"\n"), 0o644))

	c, err := Load(filepath.Join(dir, "**", "*.{yaml,toml}"))
	require.NoError(t, err)
	require.Len(t, c.Presets, 2)
	assert.Equal(t, "a", c.Presets[0].Name)
	assert.Equal(t, "b", c.Presets[1].Name)

	_, err = Load(filepath.Join(dir, "*.json"))
	assert.ErrorContains(t, err, "no files match")
}

func TestLoadGlobRejectsDuplicatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	body := []byte("presets:\n  - name: same\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), body, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.yaml"), body, 0o644))

	_, err := LoadGlob(filepath.Join(dir, "*.yaml"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestTitlesAreSanitized(t *testing.T) {
	c, err := Parse([]byte("presets:\n  - name: a\n    title: \"<b>Bold</b> <script>alert(1)</script>\"\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Bold", c.Presets[0].Title)

	c, err = Parse([]byte("presets:\n  - name: a\n    title: \"Sin & Cos\"\n    expression: x\n    start: \"0\"\n    stop: \"1\"\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sin & Cos", c.Presets[0].Title)
}
