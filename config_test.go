package pointview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, [3]float64{0, 0, 1}, cfg.Camera.Eye)
	assert.Equal(t, ZoomCoefficient, cfg.Camera.ZoomCoefficient)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "view.toml", `
[window]
width = 800
title = "cloud"

[camera]
eye = [0.0, 1.0, 4.0]
projection = "orthographic"
fov_y = 60.0

[cloud]
source = "terrain"
points = 400
encoding = "jet"
invert_y = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height, "missing keys keep their defaults")
	assert.Equal(t, "cloud", cfg.Window.Title)
	assert.Equal(t, [3]float64{0, 1, 4}, cfg.Camera.Eye)
	assert.Equal(t, "orthographic", cfg.Camera.Projection)
	assert.Equal(t, 60.0, cfg.Camera.FovY)
	assert.Equal(t, SourceTerrain, cfg.Cloud.Source)
	assert.Equal(t, 400, cfg.Cloud.Points)
	assert.Equal(t, "jet", cfg.Cloud.Encoding)
	assert.True(t, cfg.Cloud.InvertY)
	assert.True(t, cfg.Scene.DrawGrid)
}

func TestLoadConfigYAML(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := writeFile(t, "view"+ext, `
camera:
  center: [0.5, 0, 0]
  near: 0.1
  far: 50
cloud:
  source: helix
  point_size: 4
scene:
  draw_grid: false
  camera_height: 2.5
`)
			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, [3]float64{0.5, 0, 0}, cfg.Camera.Center)
			assert.Equal(t, 0.1, cfg.Camera.Near)
			assert.Equal(t, 50.0, cfg.Camera.Far)
			assert.Equal(t, SourceHelix, cfg.Cloud.Source)
			assert.Equal(t, 4.0, cfg.Cloud.PointSize)
			assert.False(t, cfg.Scene.DrawGrid)
			assert.True(t, cfg.Scene.DrawCenterFrame)
			assert.Equal(t, 2.5, cfg.Scene.CameraHeight)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "view.json", "{}"))
		assert.ErrorContains(t, err, "unsupported config format")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "view.toml", "[window\nwidth = "))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "view.yaml", "window:\n  width: -4\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero height", func(c *Config) { c.Window.Height = 0 }},
		{"eye on center", func(c *Config) { c.Camera.Eye = c.Camera.Center }},
		{"up along view", func(c *Config) { c.Camera.Up = [3]float64{0, 0, 1} }},
		{"bad projection", func(c *Config) { c.Camera.Projection = "fisheye" }},
		{"near not positive", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near / 2 }},
		{"zero zoom coefficient", func(c *Config) { c.Camera.ZoomCoefficient = 0 }},
		{"negative zoom coefficient", func(c *Config) { c.Camera.ZoomCoefficient = -0.5 }},
		{"fov too narrow", func(c *Config) { c.Camera.FovY = 0.5 }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = 200 }},
		{"no points", func(c *Config) { c.Cloud.Points = 0 }},
		{"bad encoding", func(c *Config) { c.Cloud.Encoding = "rainbow" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestCameraConfigNewCamera(t *testing.T) {
	cc := DefaultConfig().Camera
	cc.Eye = [3]float64{0, 0, 3}
	cc.Projection = "ortho"
	cc.FovY = 500
	cc.Near, cc.Far = 0.5, 20
	cc.ZoomCoefficient = 0.01

	cam := cc.NewCamera(640, 480)
	assertVec3(t, mgl64.Vec3{0, 0, 3}, cam.Position())
	assert.Equal(t, Orthographic, cam.ProjectionKind())
	assert.Equal(t, FovMax, cam.FieldOfView())
	near, far := cam.ClippingPlanes()
	assert.Equal(t, 0.5, near)
	assert.Equal(t, 20.0, far)
	assert.Equal(t, 0.01, cam.ZoomCoefficient())
	assert.Equal(t, mgl64.Vec2{640, 480}, cam.WindowSize())
}

func TestApplyScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cloud.PointSize = 5
	cfg.Cloud.Encoding = "heat"
	cfg.Cloud.Offset = [3]float64{1, 0, 0}
	cfg.Cloud.InvertX = true
	cfg.Scene.DrawCenterFrame = false
	cfg.Scene.CameraHeight = 3

	s := NewScene(NewSphereCloud(10, 1, 1), 1)
	cfg.ApplyScene(s)

	assert.Equal(t, 5.0, s.Cloud.PointSize)
	assert.Equal(t, EncodingHeat, s.Cloud.Encoding)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, s.Cloud.Offset)
	assert.True(t, s.Cloud.InvertX)
	assert.False(t, s.DrawCenterFrame)
	assert.Equal(t, 3.0, s.Grid.Height)
}

func TestCloudConfigNewCloud(t *testing.T) {
	cc := DefaultConfig().Cloud
	cc.Source = SourceHelix
	cc.Points = 30
	cc.PointSize = 3

	pc, err := cc.NewCloud()
	require.NoError(t, err)
	assert.Equal(t, 30, pc.Len())
	assert.Equal(t, 3.0, pc.PointSize)

	other := cc
	other.PointSize = 9
	assert.True(t, cc.SameSource(other))
	other.Seed++
	assert.False(t, cc.SameSource(other))

	cc.Source = "teapot"
	_, err = cc.NewCloud()
	assert.Error(t, err)
}
