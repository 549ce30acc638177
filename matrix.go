package pointview

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// TransformPoint applies m to p as a position (w = 1) and drops w without
// dividing by it.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies m to d as a direction (w = 0), so the
// translation column of m has no effect.
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// translationOf returns the translation column of m.
func translationOf(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
}

// ModelMatrix builds translate * scale * rotX * rotY * rotZ with the
// rotation angles given in degrees.
func ModelMatrix(offset, scale, rotateDeg mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.Translate3D(offset.X(), offset.Y(), offset.Z())
	m = m.Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rotateDeg.X())))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rotateDeg.Y())))
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(rotateDeg.Z())))
	return m
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FormatMat4 prints m row by row, which is easier to read in logs than the
// column-major slice.
func FormatMat4(m mgl64.Mat4) string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m.At(row, col)))
		}
	}
	return sb.String()
}
