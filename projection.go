package pointview

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

func (k ProjectionKind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("ProjectionKind(%d)", int(k))
}

// ParseProjectionKind accepts the names produced by String.
func ParseProjectionKind(s string) (ProjectionKind, error) {
	switch s {
	case "perspective", "":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection kind %q", s)
}

const (
	FovMin     = 1.0
	FovMax     = 180.0
	NearMin    = 1e-4
	DefaultFov = 45.0
	// DefaultNear and DefaultFar bound the depth range of a new camera.
	DefaultNear = 0.01
	DefaultFar  = 1000.0
)

// projectionParams is the parameter half of the projection variant.
type projectionParams struct {
	kind   ProjectionKind
	fovY   float64 // degrees
	near   float64
	far    float64
	aspect float64
	// distance from the eye to the pivot, sizes the orthographic box
	distance float64
}

func (p projectionParams) matrix() mgl64.Mat4 {
	switch p.kind {
	case Orthographic:
		halfH := p.distance * math.Tan(mgl64.DegToRad(p.fovY)/2)
		if halfH <= 0 {
			halfH = 1
		}
		halfW := halfH * p.aspect
		return mgl64.Ortho(-halfW, halfW, -halfH, halfH, -p.far, p.far)
	default:
		return mgl64.Perspective(mgl64.DegToRad(p.fovY), p.aspect, p.near, p.far)
	}
}
