package pointview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the viewer settings that can be tuned from a file. Fields
// missing from the file keep their DefaultConfig values.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Cloud  CloudConfig  `toml:"cloud" yaml:"cloud"`
	Scene  SceneConfig  `toml:"scene" yaml:"scene"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

type CameraConfig struct {
	Eye             [3]float64 `toml:"eye" yaml:"eye"`
	Center          [3]float64 `toml:"center" yaml:"center"`
	Up              [3]float64 `toml:"up" yaml:"up"`
	Projection      string     `toml:"projection" yaml:"projection"`
	FovY            float64    `toml:"fov_y" yaml:"fov_y"`
	Near            float64    `toml:"near" yaml:"near"`
	Far             float64    `toml:"far" yaml:"far"`
	ZoomCoefficient float64    `toml:"zoom_coefficient" yaml:"zoom_coefficient"`
}

type CloudConfig struct {
	Source             string     `toml:"source" yaml:"source"`
	Points             int        `toml:"points" yaml:"points"`
	Seed               int64      `toml:"seed" yaml:"seed"`
	PointSize          float64    `toml:"point_size" yaml:"point_size"`
	Offset             [3]float64 `toml:"offset" yaml:"offset"`
	Scale              [3]float64 `toml:"scale" yaml:"scale"`
	Rotate             [3]float64 `toml:"rotate" yaml:"rotate"`
	InvertX            bool       `toml:"invert_x" yaml:"invert_x"`
	InvertY            bool       `toml:"invert_y" yaml:"invert_y"`
	InvertZ            bool       `toml:"invert_z" yaml:"invert_z"`
	UseOriginalColors  bool       `toml:"use_original_colors" yaml:"use_original_colors"`
	Encoding           string     `toml:"encoding" yaml:"encoding"`
	InverseDepthColors bool       `toml:"inverse_depth_colors" yaml:"inverse_depth_colors"`
	Threshold          float64    `toml:"threshold" yaml:"threshold"`
}

type SceneConfig struct {
	CameraHeight    float64 `toml:"camera_height" yaml:"camera_height"`
	DrawGrid        bool    `toml:"draw_grid" yaml:"draw_grid"`
	DrawCenterFrame bool    `toml:"draw_center_frame" yaml:"draw_center_frame"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1024, Height: 768, Title: "pointview"},
		Camera: CameraConfig{
			Eye:             [3]float64{0, 0, 1},
			Center:          [3]float64{0, 0, 0},
			Up:              [3]float64{0, 1, 0},
			Projection:      Perspective.String(),
			FovY:            DefaultFov,
			Near:            DefaultNear,
			Far:             DefaultFar,
			ZoomCoefficient: ZoomCoefficient,
		},
		Cloud: CloudConfig{
			Source:            SourceSphere,
			Points:            20000,
			Seed:              1,
			PointSize:         2,
			Scale:             [3]float64{1, 1, 1},
			UseOriginalColors: true,
			Encoding:          EncodingTurbo.String(),
			Threshold:         0.1,
		},
		Scene: SceneConfig{CameraHeight: 1, DrawGrid: true, DrawCenterFrame: true},
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := DecodeConfig(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes data into cfg using the format named by ext.
func DecodeConfig(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	}
	return fmt.Errorf("unsupported config format %q", ext)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Eye == c.Camera.Center {
		return fmt.Errorf("%w: camera eye and center are both %v", ErrInvalidConfig, c.Camera.Eye)
	}
	forward := vec3(c.Camera.Center).Sub(vec3(c.Camera.Eye))
	if forward.Cross(vec3(c.Camera.Up)).Len() < 1e-9 {
		return fmt.Errorf("%w: camera up %v is parallel to the view direction", ErrInvalidConfig, c.Camera.Up)
	}
	if _, err := ParseProjectionKind(c.Camera.Projection); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clipping planes near=%g far=%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.ZoomCoefficient <= 0 {
		return fmt.Errorf("%w: zoom coefficient %g is not positive", ErrInvalidConfig, c.Camera.ZoomCoefficient)
	}
	if c.Camera.FovY < FovMin || c.Camera.FovY > FovMax {
		return fmt.Errorf("%w: fov_y %g outside [%g, %g]", ErrInvalidConfig, c.Camera.FovY, FovMin, FovMax)
	}
	if c.Cloud.Points <= 0 {
		return fmt.Errorf("%w: cloud points %d", ErrInvalidConfig, c.Cloud.Points)
	}
	if _, err := ParseEncoding(c.Cloud.Encoding); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func vec3(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3(a)
}

// NewCamera builds a camera from the look-at parameters and applies the
// projection settings.
func (c CameraConfig) NewCamera(width, height int) *Camera {
	cam := NewCamera(vec3(c.Eye), vec3(c.Center), vec3(c.Up))
	c.Apply(cam)
	cam.SetWindowSize(width, height)
	return cam
}

// Apply pushes the projection settings onto cam. Look-at parameters are
// only read at construction.
func (c CameraConfig) Apply(cam *Camera) {
	kind, _ := ParseProjectionKind(c.Projection)
	cam.SetZoomCoefficient(c.ZoomCoefficient)
	cam.SetClippingPlanes(c.Near, c.Far)
	cam.SetFieldOfView(c.FovY)
	cam.SetProjectionKind(kind)
}

// Apply copies the display settings onto pc.
func (c CloudConfig) Apply(pc *PointCloud) {
	enc, _ := ParseEncoding(c.Encoding)
	pc.PointSize = c.PointSize
	pc.Offset = vec3(c.Offset)
	pc.Scale = vec3(c.Scale)
	pc.Rotate = vec3(c.Rotate)
	pc.InvertX, pc.InvertY, pc.InvertZ = c.InvertX, c.InvertY, c.InvertZ
	pc.UseOriginalColors = c.UseOriginalColors
	pc.Encoding = enc
	pc.InverseDepthColors = c.InverseDepthColors
	pc.Threshold = c.Threshold
	pc.Invalidate()
}

// NewCloud generates the configured point source with its display settings.
func (c CloudConfig) NewCloud() (*PointCloud, error) {
	pc, err := NewSource(c.Source, c.Points, c.Seed)
	if err != nil {
		return nil, err
	}
	c.Apply(pc)
	return pc, nil
}

// SameSource reports whether both configs generate the same points.
func (c CloudConfig) SameSource(o CloudConfig) bool {
	return c.Source == o.Source && c.Points == o.Points && c.Seed == o.Seed
}

func (c SceneConfig) Apply(s *Scene) {
	s.DrawGrid = c.DrawGrid
	s.DrawCenterFrame = c.DrawCenterFrame
	if s.Grid != nil {
		s.Grid.Height = c.CameraHeight
	}
}

func (c Config) ApplyCamera(cam *Camera) {
	c.Camera.Apply(cam)
}

// ApplyScene pushes the cloud display and scene settings. The cloud source is
// not regenerated here.
func (c Config) ApplyScene(s *Scene) {
	if s.Cloud != nil {
		c.Cloud.Apply(s.Cloud)
	}
	c.Scene.Apply(s)
}
