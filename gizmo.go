package pointview

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	cyan   = color.RGBA{G: 255, B: 255, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 128}
)

const arrowSize = 0.05

func solidSegment(a, b mgl64.Vec3, c color.RGBA) Segment {
	return Segment{A: a, B: b, ColorA: c, ColorB: c}
}

func triangleOutline(a, b, c mgl64.Vec3, col color.RGBA) []Segment {
	return []Segment{solidSegment(a, b, col), solidSegment(b, c, col), solidSegment(c, a, col)}
}

// BasisSegments draws unit X, Y and Z axes in red, green and blue with arrow
// heads, in local space.
func BasisSegments() []Segment {
	const s = arrowSize
	o := mgl64.Vec3{}
	segs := []Segment{
		solidSegment(o, mgl64.Vec3{1, 0, 0}, red),
		solidSegment(o, mgl64.Vec3{0, 1, 0}, green),
		solidSegment(o, mgl64.Vec3{0, 0, 1}, blue),
	}
	segs = append(segs, triangleOutline(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1 - s, s, 0}, mgl64.Vec3{1 - s, -s, 0}, red)...)
	segs = append(segs, triangleOutline(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{s, 1 - s, 0}, mgl64.Vec3{-s, 1 - s, 0}, green)...)
	segs = append(segs, triangleOutline(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{s, 0, 1 - s}, mgl64.Vec3{-s, 0, 1 - s}, blue)...)
	segs = append(segs, triangleOutline(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, s, 1 - s}, mgl64.Vec3{0, -s, 1 - s}, blue)...)
	return segs
}

// CameraGizmoSegments is a small pyramid: the apex at the origin and a
// square base at z = 1.
func CameraGizmoSegments(c color.RGBA) []Segment {
	const h = 0.25
	apex := mgl64.Vec3{}
	tl := mgl64.Vec3{-h, h, 1}
	tr := mgl64.Vec3{h, h, 1}
	br := mgl64.Vec3{h, -h, 1}
	bl := mgl64.Vec3{-h, -h, 1}
	return []Segment{
		solidSegment(tl, tr, c),
		solidSegment(tr, br, c),
		solidSegment(br, bl, c),
		solidSegment(bl, tl, c),
		solidSegment(apex, tl, c),
		solidSegment(apex, tr, c),
		solidSegment(apex, br, c),
		solidSegment(apex, bl, c),
	}
}

// pivotModel places a gizmo at the pivot, scaled and flipped about X.
func pivotModel(center mgl64.Vec3, scale float64) mgl64.Mat4 {
	return mgl64.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl64.Scale3D(scale, scale, scale)).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(180)))
}

func transformSegments(m mgl64.Mat4, segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{A: TransformPoint(m, s.A), B: TransformPoint(m, s.B), ColorA: s.ColorA, ColorB: s.ColorB}
	}
	return out
}

// CenterFrameSegments returns the basis and camera gizmos placed at center.
func CenterFrameSegments(center mgl64.Vec3) []Segment {
	segs := transformSegments(pivotModel(center, 0.2), BasisSegments())
	return append(segs, transformSegments(pivotModel(center, 0.1), CameraGizmoSegments(cyan))...)
}
