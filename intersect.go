package pointview

import "github.com/go-gl/mathgl/mgl64"

// TriangleEpsilon is the Möller–Trumbore tolerance for parallel rays and
// hits at the ray origin.
const TriangleEpsilon = 1e-7

// Ray is a world-space half line. Dir is expected to be unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

func (r Ray) IntersectTriangle(tri Triangle) (mgl64.Vec3, bool) {
	return RayIntersectsTriangle(r.Origin, r.Dir, tri[0], tri[1], tri[2])
}

type Triangle [3]mgl64.Vec3

func (t Triangle) Normal() mgl64.Vec3 {
	return ComputePlaneNormal(t[0], t[1], t[2])
}

// Quad is a quadrilateral split into two triangles.
type Quad [2]Triangle

// NewQuad splits the corners a, b, c, d (in winding order) into (a, b, c)
// and (a, c, d).
func NewQuad(a, b, c, d mgl64.Vec3) Quad {
	return Quad{{a, b, c}, {a, c, d}}
}

// RayIntersectsTriangle is the Möller–Trumbore test. It reports false for
// rays parallel to the triangle, for hits outside it, and for hits at or
// behind the origin.
func RayIntersectsTriangle(origin, dir, v0, v1, v2 mgl64.Vec3) (mgl64.Vec3, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -TriangleEpsilon && a < TriangleEpsilon {
		return mgl64.Vec3{}, false
	}

	f := 1 / a
	s := origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return mgl64.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return mgl64.Vec3{}, false
	}

	// the line hits the triangle; only t > epsilon is a hit for the ray
	t := f * edge2.Dot(q)
	if t <= TriangleEpsilon {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// IntersectQuads returns the index of the first quad either of whose
// triangles is hit, and the hit point. Order decides between overlapping
// quads. The index is -1 on a miss.
func IntersectQuads(origin, dir mgl64.Vec3, quads []Quad) (int, mgl64.Vec3) {
	for i, q := range quads {
		for _, tri := range q {
			if p, ok := RayIntersectsTriangle(origin, dir, tri[0], tri[1], tri[2]); ok {
				return i, p
			}
		}
	}
	return -1, mgl64.Vec3{}
}

// ComputeWorldIntersectionPoint casts a ray through mousePos from rayOrigin
// and returns the index of the first quad it hits, or -1.
func ComputeWorldIntersectionPoint(mousePos mgl64.Vec2, rayOrigin mgl64.Vec3, proj, view mgl64.Mat4, windowSize mgl64.Vec2, quads []Quad) int {
	dir := RayCast(mousePos, proj, view, windowSize, mgl64.Vec3{}, -1)
	i, _ := IntersectQuads(rayOrigin, dir, quads)
	return i
}
