package pointview

import (
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PointCloud is a set of points with optional per-point colours and the
// display settings the viewer applies to them.
type PointCloud struct {
	positions []mgl64.Vec3
	colors    []color.RGBA

	PointSize float64

	Offset mgl64.Vec3
	Scale  mgl64.Vec3
	// Rotate holds X, Y, Z rotations in degrees, applied in that order.
	Rotate mgl64.Vec3

	InvertX, InvertY, InvertZ bool

	// UseOriginalColors uses the per-point colours when there are any;
	// otherwise points are coloured by depth.
	UseOriginalColors  bool
	Encoding           Encoding
	InverseDepthColors bool
	Threshold          float64

	resolved []color.RGBA
	dirty    bool
}

func NewPointCloud() *PointCloud {
	return &PointCloud{
		PointSize:         2,
		Scale:             mgl64.Vec3{1, 1, 1},
		UseOriginalColors: true,
		Encoding:          EncodingTurbo,
		Threshold:         0.1,
		dirty:             true,
	}
}

// SetPoints replaces the cloud. colors may be nil or must match positions.
func (pc *PointCloud) SetPoints(positions []mgl64.Vec3, colors []color.RGBA) {
	if colors != nil && len(colors) != len(positions) {
		log.Printf("point cloud: %d colours for %d points, ignoring colours", len(colors), len(positions))
		colors = nil
	}
	pc.positions = positions
	pc.colors = colors
	pc.dirty = true
}

func (pc *PointCloud) Len() int {
	return len(pc.positions)
}

// Invalidate forces colours to be recomputed on the next ResolvedColors.
// Call it after changing the colour settings.
func (pc *PointCloud) Invalidate() {
	pc.dirty = true
}

func (pc *PointCloud) HasColors() bool {
	return len(pc.colors) > 0
}

func (pc *PointCloud) ModelMatrix() mgl64.Mat4 {
	return ModelMatrix(pc.Offset, pc.Scale, pc.Rotate)
}

// Positions returns the points with the axis inversions applied.
func (pc *PointCloud) Positions() []mgl64.Vec3 {
	if !pc.InvertX && !pc.InvertY && !pc.InvertZ {
		return pc.positions
	}
	fx, fy, fz := axisFactor(pc.InvertX), axisFactor(pc.InvertY), axisFactor(pc.InvertZ)
	out := make([]mgl64.Vec3, len(pc.positions))
	for i, p := range pc.positions {
		out[i] = mgl64.Vec3{fx * p.X(), fy * p.Y(), fz * p.Z()}
	}
	return out
}

func axisFactor(invert bool) float64 {
	if invert {
		return -1
	}
	return 1
}

// ResolvedColors returns the colour drawn for every point.
func (pc *PointCloud) ResolvedColors() []color.RGBA {
	if !pc.dirty && len(pc.resolved) == len(pc.positions) {
		return pc.resolved
	}
	if pc.UseOriginalColors && pc.HasColors() {
		pc.resolved = pc.colors
	} else {
		zs := make([]float64, len(pc.positions))
		for i, p := range pc.positions {
			zs[i] = p.Z()
		}
		pc.resolved = DepthColors(zs, pc.Encoding, pc.Threshold, pc.InverseDepthColors)
	}
	pc.dirty = false
	return pc.resolved
}

// Bounds returns the axis-aligned box of the raw positions. Both corners are
// zero for an empty cloud.
func (pc *PointCloud) Bounds() (min, max mgl64.Vec3) {
	if len(pc.positions) == 0 {
		return
	}
	min, max = pc.positions[0], pc.positions[0]
	for _, p := range pc.positions[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}
	return min, max
}

// Centroid is the mean of the raw positions.
func (pc *PointCloud) Centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(pc.positions) == 0 {
		return sum
	}
	for _, p := range pc.positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pc.positions)))
}
