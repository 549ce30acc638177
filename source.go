package pointview

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// Point sources stand in for a file loader: each returns a cloud of n points
// built from a seed.

const (
	SourceSphere  = "sphere"
	SourceHelix   = "helix"
	SourceTerrain = "terrain"
)

func NewSource(name string, n int, seed int64) (*PointCloud, error) {
	if n <= 0 {
		return nil, fmt.Errorf("point count must be positive, got %d", n)
	}
	switch name {
	case SourceSphere:
		return NewSphereCloud(n, 0.5, seed), nil
	case SourceHelix:
		return NewHelixCloud(n, 0.4, 3), nil
	case SourceTerrain:
		return NewTerrainCloud(n, 2, seed), nil
	}
	return nil, fmt.Errorf("unknown point source %q", name)
}

// NewSphereCloud scatters n points uniformly over a sphere. The points carry
// no colours, so they are drawn with the depth encoding.
func NewSphereCloud(n int, radius float64, seed int64) *PointCloud {
	rnd := rand.New(rand.NewSource(seed))
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		z := rnd.Float64()*2 - 1
		theta := rnd.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		pts[i] = mgl64.Vec3{r * math.Cos(theta), r * math.Sin(theta), z}.Mul(radius)
	}
	pc := NewPointCloud()
	pc.SetPoints(pts, nil)
	return pc
}

// NewHelixCloud winds n points around the Y axis, coloured along its length.
func NewHelixCloud(n int, radius float64, turns float64) *PointCloud {
	pts := make([]mgl64.Vec3, n)
	cols := make([]color.RGBA, n)
	for i := range pts {
		t := float64(i) / float64(max(n-1, 1))
		a := t * turns * 2 * math.Pi
		pts[i] = mgl64.Vec3{radius * math.Cos(a), t - 0.5, radius * math.Sin(a)}
		cols[i] = EncodingTurbo.Color(t)
	}
	pc := NewPointCloud()
	pc.SetPoints(pts, cols)
	return pc
}

// NewTerrainCloud samples a Perlin height field on a square of the given
// size in the XZ plane, coloured by height.
func NewTerrainCloud(n int, size float64, seed int64) *PointCloud {
	side := max(int(math.Sqrt(float64(n))), 2)
	noise := perlin.NewPerlin(2, 2, 3, seed)

	pts := make([]mgl64.Vec3, 0, side*side)
	heights := make([]float64, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			u := float64(i)/float64(side-1) - 0.5
			v := float64(j)/float64(side-1) - 0.5
			h := noise.Noise2D(u*4, v*4) * 0.3
			pts = append(pts, mgl64.Vec3{u * size, h, v * size})
			heights = append(heights, h)
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, h := range heights {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	cols := make([]color.RGBA, len(heights))
	for i, h := range heights {
		t := 0.0
		if hi > lo {
			t = (h - lo) / (hi - lo)
		}
		cols[i] = EncodingHeat.Color(t)
	}

	pc := NewPointCloud()
	pc.SetPoints(pts, cols)
	return pc
}
