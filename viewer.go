package pointview

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Viewer is the ebiten game that shows a point cloud around an orbiting camera.
type Viewer struct {
	camera     *Camera
	scene      *Scene
	controller *Controller
	cfg        Config

	updates <-chan Config

	drawList DrawList
	dirty    bool
	lastX    int
	lastY    int
}

// NewViewer builds the camera and scene from cfg. updates may be nil; when set,
// configs received on it are applied between frames.
func NewViewer(cfg Config, cloud *PointCloud, updates <-chan Config) *Viewer {
	log.Println("Initializing viewer...")
	v := &Viewer{cfg: cfg, updates: updates, dirty: true}
	v.camera = cfg.Camera.NewCamera(cfg.Window.Width, cfg.Window.Height)
	v.scene = NewScene(cloud, cfg.Scene.CameraHeight)
	cfg.Scene.Apply(v.scene)
	v.controller = NewController(v.camera, v.scene)
	v.camera.OnUpdate(func(CameraSnapshot) { v.dirty = true })
	log.Printf("Viewer ready: %d points, %s projection", v.scene.Cloud.Len(), v.camera.ProjectionKind())
	return v
}

func (v *Viewer) Camera() *Camera { return v.camera }
func (v *Viewer) Scene() *Scene   { return v.scene }
func (v *Viewer) Config() Config  { return v.cfg }

// ApplyConfig switches to cfg. The cloud is regenerated only when its source
// changed; the camera keeps its orientation, pivot and distance.
func (v *Viewer) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Cloud.SameSource(v.cfg.Cloud) {
		cloud, err := cfg.Cloud.NewCloud()
		if err != nil {
			return fmt.Errorf("could not regenerate cloud: %w", err)
		}
		v.scene.Cloud = cloud
	}
	cfg.ApplyCamera(v.camera)
	cfg.ApplyScene(v.scene)
	v.cfg = cfg
	v.dirty = true
	return nil
}

func (v *Viewer) drainUpdates() {
	for {
		select {
		case cfg, ok := <-v.updates:
			if !ok {
				v.updates = nil
				return
			}
			if err := v.ApplyConfig(cfg); err != nil {
				log.Printf("Ignoring config update: %v", err)
				continue
			}
			log.Println("Config reloaded")
		default:
			return
		}
	}
}

// HandleKey applies a keyboard shortcut and reports whether it was one.
func (v *Viewer) HandleKey(key ebiten.Key) bool {
	switch key {
	case ebiten.KeyP:
		if v.camera.ProjectionKind() == Perspective {
			v.camera.SetProjectionKind(Orthographic)
		} else {
			v.camera.SetProjectionKind(Perspective)
		}
	case ebiten.KeyC:
		v.scene.DrawCenterFrame = !v.scene.DrawCenterFrame
	case ebiten.KeyG:
		v.scene.DrawGrid = !v.scene.DrawGrid
	case ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4:
		pc := v.scene.Cloud
		pc.Encoding = encodingKeys[key]
		pc.UseOriginalColors = false
		pc.Invalidate()
	case ebiten.KeyO:
		v.scene.Cloud.UseOriginalColors = !v.scene.Cloud.UseOriginalColors
		v.scene.Cloud.Invalidate()
	case ebiten.KeyR:
		v.camera.Reset()
	case ebiten.KeyF:
		pc := v.scene.Cloud
		if pc.Len() == 0 {
			return false
		}
		v.camera.SetCenter(TransformPoint(pc.ModelMatrix(), pc.Centroid()))
	default:
		return false
	}
	v.dirty = true
	return true
}

var viewerKeys = []ebiten.Key{
	ebiten.KeyP, ebiten.KeyC, ebiten.KeyG, ebiten.KeyO, ebiten.KeyR, ebiten.KeyF,
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
}

var encodingKeys = map[ebiten.Key]Encoding{
	ebiten.Key1: EncodingGrayscale,
	ebiten.Key2: EncodingTurbo,
	ebiten.Key3: EncodingJet,
	ebiten.Key4: EncodingHeat,
}

var viewerButtons = map[ebiten.MouseButton]MouseButton{
	ebiten.MouseButtonLeft:   ButtonLeft,
	ebiten.MouseButtonRight:  ButtonRight,
	ebiten.MouseButtonMiddle: ButtonMiddle,
}

func (v *Viewer) Update() error {
	v.drainUpdates()

	for _, k := range viewerKeys {
		if inpututil.IsKeyJustPressed(k) {
			v.HandleKey(k)
		}
	}

	x, y := ebiten.CursorPosition()
	for eb, b := range viewerButtons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			if v.controller.MousePress(b, float64(x), float64(y)) {
				v.dirty = true
			}
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			v.controller.MouseRelease(b)
		}
	}
	if x != v.lastX || y != v.lastY {
		v.controller.MouseMove(float64(x), float64(y))
		v.lastX, v.lastY = x, y
	}

	_, wy := ebiten.Wheel()
	v.controller.Wheel(wy)
	return nil
}

// Frame returns the draw list, rebuilding it only after something changed.
func (v *Viewer) Frame() DrawList {
	if v.dirty {
		v.drawList = v.scene.Build(v.camera)
		v.dirty = false
	}
	return v.drawList
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	PaintDrawList(screen, v.Frame())
	ebitenutil.DebugPrint(screen, v.hud())
}

func (v *Viewer) hud() string {
	c := v.camera.Center()
	lo, hi := v.scene.Cloud.Bounds()
	size := hi.Sub(lo)
	m := v.controller.MouseNDC()
	return fmt.Sprintf("FPS: %0.2f\n%s fov %.0f dist %.3f\npivot (%.2f, %.2f, %.2f)\n%d points %s\nextent %.2f x %.2f x %.2f\ncursor (%.2f, %.2f) cell %d",
		ebiten.ActualFPS(), v.camera.ProjectionKind(), v.camera.FieldOfView(), v.camera.Distance(),
		c.X(), c.Y(), c.Z(), v.scene.Cloud.Len(), v.scene.Cloud.Encoding,
		size.X(), size.Y(), size.Z(), m.X(), m.Y(), v.scene.Grid.Selected)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.controller.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
