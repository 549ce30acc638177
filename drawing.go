package pointview

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// triangleBatch collects coloured quads and draws them with as few
// DrawTriangles calls as the 16-bit index limit allows.
type triangleBatch struct {
	screen   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newTriangleBatch(screen *ebiten.Image) *triangleBatch {
	return &triangleBatch{screen: screen}
}

func vertexAt(x, y float32, clr color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(clr.R) / 255.0,
		ColorG: float32(clr.G) / 255.0,
		ColorB: float32(clr.B) / 255.0,
		ColorA: float32(clr.A) / 255.0,
	}
}

func (b *triangleBatch) addQuad(xs, ys [4]float32, cols [4]color.RGBA) {
	if len(b.vertices)+4 > math.MaxUint16 {
		b.flush()
	}
	base := uint16(len(b.vertices))
	for i := 0; i < 4; i++ {
		b.vertices = append(b.vertices, vertexAt(xs[i], ys[i], cols[i]))
	}
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}

func (b *triangleBatch) flush() {
	if len(b.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	b.screen.DrawTriangles(b.vertices, b.indices, whiteSub, op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// addPoint draws a square of side size centred on p.
func (b *triangleBatch) addPoint(p ScreenPoint, size float64) {
	h := float32(math.Max(size, 1) / 2)
	x, y := float32(p.X), float32(p.Y)
	b.addQuad(
		[4]float32{x - h, x + h, x + h, x - h},
		[4]float32{y - h, y - h, y + h, y + h},
		[4]color.RGBA{p.Color, p.Color, p.Color, p.Color},
	)
}

// addSegment draws a line as a thin quad so the colour can change along it.
func (b *triangleBatch) addSegment(s ScreenSegment, width float64) {
	dx, dy := s.X1-s.X0, s.Y1-s.Y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	b.addQuad(
		[4]float32{float32(s.X0 + nx), float32(s.X1 + nx), float32(s.X1 - nx), float32(s.X0 - nx)},
		[4]float32{float32(s.Y0 + ny), float32(s.Y1 + ny), float32(s.Y1 - ny), float32(s.Y0 - ny)},
		[4]color.RGBA{s.ColorA, s.ColorB, s.ColorB, s.ColorA},
	)
}

// drawPolygonOutline strokes a closed polygon.
func drawPolygonOutline(screen *ebiten.Image, pts []screenXY, strokeWidth float32, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		path.LineTo(p.x, p.y)
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	drawOp := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vertices, indices, whiteSub, drawOp)
}

type screenXY struct{ x, y float32 }

// PaintDrawList renders dl onto screen: grid first, then the points far to
// near, then the pivot gizmos on top.
func PaintDrawList(screen *ebiten.Image, dl DrawList) {
	batch := newTriangleBatch(screen)
	for _, s := range dl.Grid {
		batch.addSegment(s, 1)
	}
	for _, p := range dl.Points {
		batch.addPoint(p, dl.PointSize)
	}
	batch.flush()

	if len(dl.Selection) > 1 {
		pts := make([]screenXY, len(dl.Selection))
		for i, p := range dl.Selection {
			pts[i] = screenXY{float32(p.X()), float32(p.Y())}
		}
		drawPolygonOutline(screen, pts, 2, white)
	}

	for _, s := range dl.Gizmos {
		batch.addSegment(s, 1.5)
	}
	batch.flush()

	if dl.Center != nil {
		vector.DrawFilledCircle(screen, float32(dl.Center.X), float32(dl.Center.Y), float32(dl.CenterSize/2), dl.Center.Color, true)
	}
}

// Paint draws the scene as seen by cam.
func (s *Scene) Paint(screen *ebiten.Image, cam *Camera) {
	PaintDrawList(screen, s.Build(cam))
}
