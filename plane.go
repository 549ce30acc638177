package pointview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planeEpsilon is added to the denominator of RayPlaneIntersection.
const planeEpsilon = 0.001

// ParallelEpsilon is the smallest |dir·normal| RayPlaneIntersect accepts.
const ParallelEpsilon = 1e-6

// RayPlaneIntersection returns the point where the ray meets the plane
// through planePoint with the given normal. The denominator is padded with a
// small epsilon so a parallel ray gives a far away point instead of a
// division by zero; results are unreliable when |dir·normal| is near zero.
func RayPlaneIntersection(origin, dir, normal, planePoint mgl64.Vec3) mgl64.Vec3 {
	t := normal.Dot(planePoint.Sub(origin)) / (planeEpsilon + dir.Dot(normal))
	return origin.Add(dir.Mul(t))
}

// RayPlaneIntersect is the checked form of RayPlaneIntersection. It reports
// false for rays parallel to the plane and for planes behind the origin.
func RayPlaneIntersect(origin, dir, normal, planePoint mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := dir.Dot(normal)
	if math.Abs(denom) < ParallelEpsilon {
		return mgl64.Vec3{}, false
	}
	t := normal.Dot(planePoint.Sub(origin)) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// ComputePlaneNormal returns the unit normal of the plane through three
// points. Counter-clockwise points give a normal facing the viewer.
func ComputePlaneNormal(p1, p2, p3 mgl64.Vec3) mgl64.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()
}

// Plane is Ax + By + Cz + D = 0 with a unit normal (A, B, C).
type Plane struct {
	A, B, C, D float64
}

func NewPlane(normal, point mgl64.Vec3) Plane {
	n := normal.Normalize()
	return Plane{A: n.X(), B: n.Y(), C: n.Z(), D: -n.Dot(point)}
}

func NewPlaneFromPoints(p1, p2, p3 mgl64.Vec3) Plane {
	return NewPlane(ComputePlaneNormal(p1, p2, p3), p1)
}

func (p Plane) Normal() mgl64.Vec3 {
	return mgl64.Vec3{p.A, p.B, p.C}
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(v mgl64.Vec3) float64 {
	return p.A*v.X() + p.B*v.Y() + p.C*v.Z() + p.D
}

// SegmentIntersect returns the point where segment a-b crosses the plane.
// It reports false when both ends lie strictly on the same side.
func (p Plane) SegmentIntersect(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)
	if (da > 0 && db > 0) || (da < 0 && db < 0) {
		return mgl64.Vec3{}, false
	}
	denom := da - db
	if denom == 0 {
		return a, true
	}
	t := da / denom
	return a.Add(b.Sub(a).Mul(t)), true
}

// Intersect intersects the plane with a ray using RayPlaneIntersect.
func (p Plane) Intersect(r Ray) (mgl64.Vec3, bool) {
	n := p.Normal()
	return RayPlaneIntersect(r.Origin, r.Dir, n, n.Mul(-p.D))
}
