package pointview

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ScreenPoint is a projected point. Depth is NDC z, larger is farther.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
	Color color.RGBA
}

type ScreenSegment struct {
	X0, Y0, X1, Y1 float64
	ColorA, ColorB color.RGBA
}

// DrawList is everything the scene paints for one frame, in screen pixels.
type DrawList struct {
	// Points are sorted far to near.
	Points    []ScreenPoint
	PointSize float64
	Grid      []ScreenSegment
	Gizmos    []ScreenSegment
	// Selection is the outline of the picked grid cell, empty if none.
	Selection  []mgl64.Vec2
	Center     *ScreenPoint
	CenterSize float64
}

// Scene holds what the viewer draws. The camera is passed in per call; the
// scene never keeps it.
type Scene struct {
	Cloud *PointCloud
	Grid  *GroundGrid

	DrawGrid        bool
	DrawCenterFrame bool
	CenterPointSize float64
}

func NewScene(cloud *PointCloud, cameraHeight float64) *Scene {
	if cloud == nil {
		cloud = NewPointCloud()
	}
	return &Scene{
		Cloud:           cloud,
		Grid:            NewGroundGrid(cameraHeight),
		DrawGrid:        true,
		DrawCenterFrame: true,
		CenterPointSize: 15,
	}
}

// projectPoint runs a model-space point through mvp. It reports false for
// points outside the view volume.
func projectPoint(mvp mgl64.Mat4, p mgl64.Vec3, window mgl64.Vec2) (ScreenPoint, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return ScreenPoint{}, false
	}
	if clip.X() < -w || clip.X() > w || clip.Y() < -w || clip.Y() > w || clip.Z() < -w || clip.Z() > w {
		return ScreenPoint{}, false
	}
	ndc := ClipToNDC(clip)
	s := NDCToScreen(ndc, window)
	return ScreenPoint{X: s.X(), Y: s.Y(), Depth: ndc.Z()}, true
}

// ProjectCloud projects the cloud and sorts it far to near so nearer points
// are painted over farther ones.
func (s *Scene) ProjectCloud(cam *Camera) []ScreenPoint {
	if s.Cloud == nil || s.Cloud.Len() == 0 {
		return nil
	}
	mvp := cam.StandardUniforms(s.Cloud.ModelMatrix()).MVP
	window := cam.WindowSize()
	positions := s.Cloud.Positions()
	colors := s.Cloud.ResolvedColors()

	pts := make([]ScreenPoint, 0, len(positions))
	for i, p := range positions {
		sp, ok := projectPoint(mvp, p, window)
		if !ok {
			continue
		}
		sp.Color = colors[i]
		pts = append(pts, sp)
	}

	sort.Slice(pts, func(i, j int) bool {
		return pts[i].Depth > pts[j].Depth
	})
	return pts
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(clamp(int(float64(x)+(float64(y)-float64(x))*t+0.5), 0, 255))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// clipSegment cuts a world-space segment at the near plane in eye space.
// Orthographic views keep everything.
func clipSegment(cam *Camera, seg Segment) (a, b mgl64.Vec3, ca, cb color.RGBA, ok bool) {
	view := cam.View()
	a, b = TransformPoint(view, seg.A), TransformPoint(view, seg.B)
	ca, cb = seg.ColorA, seg.ColorB
	if cam.ProjectionKind() == Orthographic {
		return a, b, ca, cb, true
	}

	near, _ := cam.ClippingPlanes()
	nearPlane := NewPlane(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -near})
	da, db := nearPlane.SignedDistance(a), nearPlane.SignedDistance(b)
	switch {
	case da < 0 && db < 0:
		return a, b, ca, cb, false
	case da >= 0 && db >= 0:
		return a, b, ca, cb, true
	}

	p, _ := nearPlane.SegmentIntersect(a, b)
	t := da / (da - db)
	mid := lerpColor(ca, cb, t)
	if da < 0 {
		return p, b, mid, cb, true
	}
	return a, p, ca, mid, true
}

// ProjectSegments clips and projects world-space segments.
func ProjectSegments(cam *Camera, segs []Segment) []ScreenSegment {
	proj := cam.Projection()
	window := cam.WindowSize()
	out := make([]ScreenSegment, 0, len(segs))
	for _, seg := range segs {
		a, b, ca, cb, ok := clipSegment(cam, seg)
		if !ok {
			continue
		}
		sa := NDCToScreen(ClipToNDC(EyeToClip(a.Vec4(1), proj)), window)
		sb := NDCToScreen(ClipToNDC(EyeToClip(b.Vec4(1), proj)), window)
		out = append(out, ScreenSegment{X0: sa.X(), Y0: sa.Y(), X1: sb.X(), Y1: sb.Y(), ColorA: ca, ColorB: cb})
	}
	return out
}

// outlinePolygon joins the projected edges of a closed outline into its
// vertex list. Edges shortened or dropped by the near clip leave a gap that
// becomes an extra vertex, so the polygon follows the clipped shape. Fewer
// than two surviving edges give no outline.
func outlinePolygon(edges []ScreenSegment) []mgl64.Vec2 {
	if len(edges) < 2 {
		return nil
	}
	pts := make([]mgl64.Vec2, 0, 2*len(edges))
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		pts = append(pts, mgl64.Vec2{e.X0, e.Y0})
		end := mgl64.Vec2{e.X1, e.Y1}
		if !end.ApproxEqualThreshold(mgl64.Vec2{next.X0, next.Y0}, 1e-6) {
			pts = append(pts, end)
		}
	}
	return pts
}

// Build projects the whole scene for the camera's current state.
func (s *Scene) Build(cam *Camera) DrawList {
	dl := DrawList{Points: s.ProjectCloud(cam)}
	if s.Cloud != nil {
		dl.PointSize = s.Cloud.PointSize
	}

	if s.DrawGrid && s.Grid != nil {
		dl.Grid = ProjectSegments(cam, s.Grid.Segments())
		if corners, ok := s.Grid.CellCorners(s.Grid.Selected); ok {
			outline := make([]Segment, 4)
			for i := range corners {
				outline[i] = solidSegment(corners[i], corners[(i+1)%4], white)
			}
			dl.Selection = outlinePolygon(ProjectSegments(cam, outline))
		}
	}

	if s.DrawCenterFrame {
		dl.Gizmos = ProjectSegments(cam, CenterFrameSegments(cam.Center()))
		mvp := cam.ProjectionView()
		if sp, ok := projectPoint(mvp, cam.Center(), cam.WindowSize()); ok {
			sp.Color = yellow
			dl.Center = &sp
			dl.CenterSize = s.CenterPointSize
		}
	}
	return dl
}

// PickCell selects the grid cell under the pixel (x, y) and returns its index,
// or -1. Perspective views cast from the eye; orthographic views need the
// full unprojected ray because every pixel has its own origin.
func (s *Scene) PickCell(cam *Camera, x, y float64) int {
	if s.Grid == nil {
		return -1
	}
	var i int
	if cam.ProjectionKind() == Perspective {
		i = ComputeWorldIntersectionPoint(mgl64.Vec2{x, y}, cam.Position(),
			cam.Projection(), cam.View(), cam.WindowSize(), s.Grid.Quads())
	} else {
		i = s.Grid.Pick(cam.PickRay(x, y))
	}
	s.Grid.Selected = i
	return i
}
