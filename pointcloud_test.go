package pointview

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCloud() *PointCloud {
	pc := NewPointCloud()
	pc.SetPoints([]mgl64.Vec3{
		{1, 2, 3},
		{-1, 0, -3},
		{0, -2, 0},
	}, []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	})
	return pc
}

func TestNewPointCloudDefaults(t *testing.T) {
	pc := NewPointCloud()
	assert.Equal(t, 0, pc.Len())
	assert.Equal(t, 2.0, pc.PointSize)
	assert.True(t, pc.UseOriginalColors)
	assert.Equal(t, EncodingTurbo, pc.Encoding)
	assert.Equal(t, 0.1, pc.Threshold)
	assertMat4(t, mgl64.Ident4(), pc.ModelMatrix())
	assert.Empty(t, pc.ResolvedColors())
}

func TestSetPointsDropsMismatchedColors(t *testing.T) {
	pc := NewPointCloud()
	pc.SetPoints([]mgl64.Vec3{{0, 0, 0}, {1, 1, 1}}, []color.RGBA{{1, 2, 3, 4}})
	assert.Equal(t, 2, pc.Len())
	assert.False(t, pc.HasColors())
}

func TestResolvedColors(t *testing.T) {
	pc := testCloud()

	orig := pc.ResolvedColors()
	require.Len(t, orig, 3)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, orig[0])

	pc.UseOriginalColors = false
	pc.Encoding = EncodingGrayscale
	pc.Threshold = 0
	pc.Invalidate()

	depth := pc.ResolvedColors()
	// |z| of 3, 3 and 0 over a range of 6
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, depth[0])
	assert.Equal(t, depth[0], depth[1])
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, depth[2])
}

func TestResolvedColorsAreCached(t *testing.T) {
	pc := testCloud()
	pc.UseOriginalColors = false

	first := pc.ResolvedColors()
	pc.Encoding = EncodingHeat
	assert.Equal(t, first, pc.ResolvedColors(), "settings take effect only after Invalidate")

	pc.Invalidate()
	assert.NotEqual(t, first, pc.ResolvedColors())
}

func TestPositionsInversion(t *testing.T) {
	pc := testCloud()
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pc.Positions()[0])

	pc.InvertY = true
	pc.InvertZ = true
	got := pc.Positions()
	assert.Equal(t, mgl64.Vec3{1, -2, -3}, got[0])
	assert.Equal(t, mgl64.Vec3{-1, 0, 3}, got[1])

	min, _ := pc.Bounds()
	assert.Equal(t, -3.0, min.Z(), "bounds use the raw positions")
}

func TestBoundsAndCentroid(t *testing.T) {
	pc := testCloud()
	min, max := pc.Bounds()
	assert.Equal(t, mgl64.Vec3{-1, -2, -3}, min)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, max)
	assertVec3(t, mgl64.Vec3{0, 0, 0}, pc.Centroid())

	empty := NewPointCloud()
	min, max = empty.Bounds()
	assert.Equal(t, mgl64.Vec3{}, min)
	assert.Equal(t, mgl64.Vec3{}, max)
	assert.Equal(t, mgl64.Vec3{}, empty.Centroid())
}

func TestPointCloudModelMatrix(t *testing.T) {
	pc := NewPointCloud()
	pc.Offset = mgl64.Vec3{0, 1, 0}
	pc.Scale = mgl64.Vec3{2, 2, 2}
	pc.Rotate = mgl64.Vec3{90, 0, 0}

	// rotate Y onto Z, double, lift by one
	assertVec3(t, mgl64.Vec3{0, 1, 2}, TransformPoint(pc.ModelMatrix(), mgl64.Vec3{0, 1, 0}))
}

func TestNewSource(t *testing.T) {
	for _, name := range []string{SourceSphere, SourceHelix, SourceTerrain} {
		t.Run(name, func(t *testing.T) {
			pc, err := NewSource(name, 100, 7)
			require.NoError(t, err)
			assert.Equal(t, 100, pc.Len())
		})
	}

	_, err := NewSource("teapot", 100, 1)
	assert.Error(t, err)
	_, err = NewSource(SourceSphere, 0, 1)
	assert.Error(t, err)
}

func TestSphereCloud(t *testing.T) {
	a := NewSphereCloud(200, 0.5, 3)
	b := NewSphereCloud(200, 0.5, 3)
	c := NewSphereCloud(200, 0.5, 4)

	assert.False(t, a.HasColors())
	for _, p := range a.Positions() {
		assert.InDelta(t, 0.5, p.Len(), 1e-9)
	}
	assert.Equal(t, a.Positions(), b.Positions())
	assert.NotEqual(t, a.Positions(), c.Positions())
}

func TestHelixCloud(t *testing.T) {
	pc := NewHelixCloud(50, 0.4, 3)
	require.True(t, pc.HasColors())
	min, max := pc.Bounds()
	assert.InDelta(t, -0.5, min.Y(), 1e-9)
	assert.InDelta(t, 0.5, max.Y(), 1e-9)
	assert.Equal(t, EncodingTurbo.Color(0), pc.ResolvedColors()[0])

	single := NewHelixCloud(1, 0.4, 3)
	assert.Equal(t, 1, single.Len())
}

func TestTerrainCloud(t *testing.T) {
	pc := NewTerrainCloud(100, 2, 1)
	assert.Equal(t, 100, pc.Len())
	assert.True(t, pc.HasColors())

	min, max := pc.Bounds()
	assert.InDelta(t, -1, min.X(), 1e-9)
	assert.InDelta(t, 1, max.X(), 1e-9)
	assert.InDelta(t, -1, min.Z(), 1e-9)
	assert.InDelta(t, 1, max.Z(), 1e-9)

	// fewer points than a 2x2 grid still gives the grid
	assert.Equal(t, 4, NewTerrainCloud(3, 2, 1).Len())
	assert.Equal(t, pc.Positions(), NewTerrainCloud(100, 2, 1).Positions())
}
