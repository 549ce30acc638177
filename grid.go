package pointview

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	gridSteps    = 99   // lines on each side of an axis
	gridSpacing  = 0.01 // local units between lines
	gridScale    = 10.0
	gridCellSize = 0.1 // local units, one cell per major line
	gridCells    = 18  // cells along each axis
)

// Segment is a line from A to B with a colour at each end.
type Segment struct {
	A, B           mgl64.Vec3
	ColorA, ColorB color.RGBA
}

// GroundGrid is a fading line grid on the XZ plane below the pivot, plus the
// square cells between its major lines, which can be picked.
type GroundGrid struct {
	// Height is how far below the origin the grid lies.
	Height   float64
	Selected int

	segments []Segment
	quads    []Quad
	builtFor float64
}

func NewGroundGrid(height float64) *GroundGrid {
	return &GroundGrid{Height: height, Selected: -1, builtFor: math.NaN()}
}

// ModelMatrix lowers the grid by Height, scales it, and lays the local XY
// plane onto the world XZ plane.
func (g *GroundGrid) ModelMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(0, -g.Height, 0).
		Mul4(mgl64.Scale3D(gridScale, gridScale, gridScale)).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(90)))
}

// lineAlpha fades lines towards the edge; minor lines are fainter than the
// lines every 5 and 10 steps.
func lineAlpha(i int) uint8 {
	v := (100 - math.Abs(float64(i))) / 100
	if i%10 != 0 {
		if i%5 == 0 {
			v /= 2
		} else {
			v /= 4
		}
	}
	v *= 0.8
	return uint8(math.Round(v * 255))
}

// LocalSegments returns the grid lines in grid space. Every line runs from
// an axis outwards and fades to transparent.
func LocalSegments() []Segment {
	segs := make([]Segment, 0, (2*gridSteps+1)*4)
	end := gridSteps * gridSpacing
	for i := -gridSteps; i <= gridSteps; i++ {
		shift := float64(i) * gridSpacing
		solid := color.RGBA{R: 255, G: 255, B: 255, A: lineAlpha(i)}
		faded := color.RGBA{R: 255, G: 255, B: 255, A: 0}

		segs = append(segs,
			Segment{A: mgl64.Vec3{shift, 0, 0}, B: mgl64.Vec3{shift, end, 0}, ColorA: solid, ColorB: faded},
			Segment{A: mgl64.Vec3{shift, 0, 0}, B: mgl64.Vec3{shift, -end, 0}, ColorA: solid, ColorB: faded},
			Segment{A: mgl64.Vec3{0, shift, 0}, B: mgl64.Vec3{end, shift, 0}, ColorA: solid, ColorB: faded},
			Segment{A: mgl64.Vec3{0, shift, 0}, B: mgl64.Vec3{-end, shift, 0}, ColorA: solid, ColorB: faded},
		)
	}
	return segs
}

func (g *GroundGrid) rebuild() {
	if g.builtFor == g.Height {
		return
	}
	m := g.ModelMatrix()

	local := LocalSegments()
	g.segments = make([]Segment, len(local))
	for i, s := range local {
		g.segments[i] = Segment{
			A:      TransformPoint(m, s.A),
			B:      TransformPoint(m, s.B),
			ColorA: s.ColorA,
			ColorB: s.ColorB,
		}
	}

	g.quads = make([]Quad, 0, gridCells*gridCells)
	start := -float64(gridCells) / 2 * gridCellSize
	for row := 0; row < gridCells; row++ {
		for col := 0; col < gridCells; col++ {
			x0 := start + float64(col)*gridCellSize
			y0 := start + float64(row)*gridCellSize
			x1, y1 := x0+gridCellSize, y0+gridCellSize
			g.quads = append(g.quads, NewQuad(
				TransformPoint(m, mgl64.Vec3{x0, y0, 0}),
				TransformPoint(m, mgl64.Vec3{x1, y0, 0}),
				TransformPoint(m, mgl64.Vec3{x1, y1, 0}),
				TransformPoint(m, mgl64.Vec3{x0, y1, 0}),
			))
		}
	}
	g.builtFor = g.Height
}

// Segments returns the grid lines in world space.
func (g *GroundGrid) Segments() []Segment {
	g.rebuild()
	return g.segments
}

// Quads returns the pickable cells in world space, row by row.
func (g *GroundGrid) Quads() []Quad {
	g.rebuild()
	return g.quads
}

// CellCorners returns the world-space outline of cell i.
func (g *GroundGrid) CellCorners(i int) ([4]mgl64.Vec3, bool) {
	quads := g.Quads()
	if i < 0 || i >= len(quads) {
		return [4]mgl64.Vec3{}, false
	}
	q := quads[i]
	return [4]mgl64.Vec3{q[0][0], q[0][1], q[0][2], q[1][2]}, true
}

// Plane is the world plane the grid lies on.
func (g *GroundGrid) Plane() Plane {
	return NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -g.Height, 0})
}

// Pick returns the first cell hit by r, or -1. Rays that never reach the
// grid plane are rejected before the cells are scanned.
func (g *GroundGrid) Pick(r Ray) int {
	if _, ok := g.Plane().Intersect(r); !ok {
		return -1
	}
	i, _ := IntersectQuads(r.Origin, r.Dir, g.Quads())
	return i
}
