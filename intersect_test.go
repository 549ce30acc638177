package pointview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	triA = mgl64.Vec3{-1, -1, 0}
	triB = mgl64.Vec3{1, -1, 0}
	triC = mgl64.Vec3{0, 1, 0}
)

func TestRayIntersectsTriangle(t *testing.T) {
	testCases := []struct {
		name        string
		origin, dir mgl64.Vec3
		hit         bool
		point       mgl64.Vec3
	}{
		{"straight down the z axis", mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}, true, mgl64.Vec3{0, 0, 0}},
		{"reversed direction", mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}, false, mgl64.Vec3{}},
		{"from behind", mgl64.Vec3{0.2, -0.5, -3}, mgl64.Vec3{0, 0, 1}, true, mgl64.Vec3{0.2, -0.5, 0}},
		{"parallel in plane", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}, false, mgl64.Vec3{}},
		{"parallel above plane", mgl64.Vec3{-5, 0, 1}, mgl64.Vec3{1, 0, 0}, false, mgl64.Vec3{}},
		{"outside the triangle", mgl64.Vec3{0.9, 0.9, 5}, mgl64.Vec3{0, 0, -1}, false, mgl64.Vec3{}},
		{"past the apex", mgl64.Vec3{0, 1.5, 5}, mgl64.Vec3{0, 0, -1}, false, mgl64.Vec3{}},
		{"oblique", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.25, 0, -1}.Normalize(), true, mgl64.Vec3{0.25, 0, 0}},
		{"origin on triangle", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, false, mgl64.Vec3{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := RayIntersectsTriangle(tc.origin, tc.dir, triA, triB, triC)
			require.Equal(t, tc.hit, ok)
			if tc.hit {
				assertVec3(t, tc.point, p)
			}
		})
	}
}

func TestRayIntersectTriangleMethod(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 5}, Dir: mgl64.Vec3{0, 0, -1}}
	p, ok := r.IntersectTriangle(Triangle{triA, triB, triC})
	require.True(t, ok)
	assertVec3(t, r.At(5), p)
}

func TestTriangleNormalWinding(t *testing.T) {
	assertVec3(t, mgl64.Vec3{0, 0, 1}, Triangle{triA, triB, triC}.Normal())
	assertVec3(t, mgl64.Vec3{0, 0, -1}, Triangle{triA, triC, triB}.Normal())
}

func unitQuadAt(z float64) Quad {
	return NewQuad(
		mgl64.Vec3{-1, -1, z},
		mgl64.Vec3{1, -1, z},
		mgl64.Vec3{1, 1, z},
		mgl64.Vec3{-1, 1, z},
	)
}

func rectQuad(x0, y0, x1, y1, z float64) Quad {
	return NewQuad(
		mgl64.Vec3{x0, y0, z},
		mgl64.Vec3{x1, y0, z},
		mgl64.Vec3{x1, y1, z},
		mgl64.Vec3{x0, y1, z},
	)
}

func TestNewQuadSplitsOnDiagonal(t *testing.T) {
	q := unitQuadAt(0)
	assert.Equal(t, q[0][0], q[1][0])
	assert.Equal(t, q[0][2], q[1][1])
	assertVec3(t, q[0].Normal(), q[1].Normal())
}

func TestIntersectQuads(t *testing.T) {
	origin := mgl64.Vec3{0.5, 0.25, 5}
	dir := mgl64.Vec3{0, 0, -1}

	t.Run("miss", func(t *testing.T) {
		i, _ := IntersectQuads(mgl64.Vec3{5, 5, 5}, dir, []Quad{unitQuadAt(0)})
		assert.Equal(t, -1, i)
	})

	t.Run("empty", func(t *testing.T) {
		i, _ := IntersectQuads(origin, dir, nil)
		assert.Equal(t, -1, i)
	})

	t.Run("list order wins over distance", func(t *testing.T) {
		quads := []Quad{rectQuad(10, 10, 11, 11, 0), unitQuadAt(-1), unitQuadAt(0)}
		i, p := IntersectQuads(origin, dir, quads)
		assert.Equal(t, 1, i)
		assertVec3(t, mgl64.Vec3{0.5, 0.25, -1}, p)
	})

	t.Run("second triangle", func(t *testing.T) {
		// (-0.5, 0.5) lies in the (a, c, d) half
		i, p := IntersectQuads(mgl64.Vec3{-0.5, 0.5, 5}, dir, []Quad{unitQuadAt(0)})
		assert.Equal(t, 0, i)
		assertVec3(t, mgl64.Vec3{-0.5, 0.5, 0}, p)
	})
}

func TestComputeWorldIntersectionPoint(t *testing.T) {
	c := NewCameraLookAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{})
	c.SetWindowSize(200, 100)
	// the diagonal of the second quad stays clear of the pixels tested
	quads := []Quad{rectQuad(10, 10, 11, 11, 0), rectQuad(-1, -1, 2, 1, 0)}

	testCases := []struct {
		name  string
		mouse mgl64.Vec2
		want  int
	}{
		{"centre pixel", mgl64.Vec2{100, 50}, 1},
		{"slightly off centre", mgl64.Vec2{110, 45}, 1},
		{"corner", mgl64.Vec2{0, 0}, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeWorldIntersectionPoint(tc.mouse, c.Position(), c.Projection(), c.View(), c.WindowSize(), quads)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRayPlaneIntersection(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 5}
	dir := mgl64.Vec3{0, 0, -1}
	normal := mgl64.Vec3{0, 0, 1}

	// the padded denominator pulls the hit slightly past the plane
	p := RayPlaneIntersection(origin, dir, normal, mgl64.Vec3{})
	assert.InDelta(t, 0, p.Z(), 0.01)
	assert.Equal(t, 0.0, p.X())

	assert.NotPanics(t, func() {
		RayPlaneIntersection(origin, mgl64.Vec3{1, 0, 0}, normal, mgl64.Vec3{})
	})
}

func TestRayPlaneIntersect(t *testing.T) {
	normal := mgl64.Vec3{0, 1, 0}
	point := mgl64.Vec3{0, -1, 0}

	testCases := []struct {
		name        string
		origin, dir mgl64.Vec3
		hit         bool
		want        mgl64.Vec3
	}{
		{"down onto the floor", mgl64.Vec3{2, 3, 1}, mgl64.Vec3{0, -1, 0}, true, mgl64.Vec3{2, -1, 1}},
		{"from below", mgl64.Vec3{0, -4, 0}, mgl64.Vec3{0, 1, 0}, true, mgl64.Vec3{0, -1, 0}},
		{"plane behind", mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, 1, 0}, false, mgl64.Vec3{}},
		{"parallel", mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 0, 0}, false, mgl64.Vec3{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := RayPlaneIntersect(tc.origin, tc.dir, normal, point)
			require.Equal(t, tc.hit, ok)
			if ok {
				assertVec3(t, tc.want, p)
			}
		})
	}
}

func TestComputePlaneNormal(t *testing.T) {
	n := ComputePlaneNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, -3})
	assertVec3(t, mgl64.Vec3{0, 1, 0}, n)
	assert.InDelta(t, 1.0, n.Len(), float64EqualityThreshold)
}

func TestPlane(t *testing.T) {
	p := NewPlane(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, 1})
	assertVec3(t, mgl64.Vec3{0, 0, 1}, p.Normal())
	assert.InDelta(t, 2.0, p.SignedDistance(mgl64.Vec3{5, 5, 3}), float64EqualityThreshold)
	assert.InDelta(t, -1.0, p.SignedDistance(mgl64.Vec3{0, 0, 0}), float64EqualityThreshold)

	fromPoints := NewPlaneFromPoints(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 1, 1})
	assert.InDelta(t, p.D, fromPoints.D, float64EqualityThreshold)
	assertVec3(t, p.Normal(), fromPoints.Normal())

	t.Run("segment crossing", func(t *testing.T) {
		x, ok := p.SegmentIntersect(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 4})
		require.True(t, ok)
		assertVec3(t, mgl64.Vec3{0.5, 0, 1}, x)
	})

	t.Run("segment on one side", func(t *testing.T) {
		_, ok := p.SegmentIntersect(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{1, 1, 3})
		assert.False(t, ok)
	})

	t.Run("ray", func(t *testing.T) {
		x, ok := p.Intersect(Ray{Origin: mgl64.Vec3{1, 2, 5}, Dir: mgl64.Vec3{0, 0, -1}})
		require.True(t, ok)
		assertVec3(t, mgl64.Vec3{1, 2, 1}, x)
	})
}
