package pointview

import "github.com/go-gl/mathgl/mgl64"

// Forward pipeline: world -> eye -> clip -> NDC -> screen.

func WorldToEye(v mgl64.Vec3, view mgl64.Mat4) mgl64.Vec4 {
	return view.Mul4x1(v.Vec4(1))
}

func EyeToClip(v mgl64.Vec4, proj mgl64.Mat4) mgl64.Vec4 {
	return proj.Mul4x1(v)
}

// ClipToNDC is the perspective divide.
func ClipToNDC(v mgl64.Vec4) mgl64.Vec3 {
	return v.Vec3().Mul(1 / v.W())
}

// NDCToScreen maps NDC x,y to pixels. Screen y grows downwards.
func NDCToScreen(ndc mgl64.Vec3, windowSize mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		(ndc.X() + 1) / 2 * windowSize.X(),
		(1 - ndc.Y()) / 2 * windowSize.Y(),
	}
}

func WorldToScreen(world mgl64.Vec3, proj, view mgl64.Mat4, windowSize mgl64.Vec2) mgl64.Vec2 {
	eye := WorldToEye(world, view)
	clip := EyeToClip(eye, proj)
	ndc := ClipToNDC(clip)
	return NDCToScreen(ndc, windowSize)
}

// Inverse pipeline: screen -> NDC -> clip -> eye -> world. The eye and world
// results are directions (w = 0), not positions.

// ScreenToNDC maps pixels to NDC and attaches the depth z.
func ScreenToNDC(screen, windowSize mgl64.Vec2, z float64) mgl64.Vec3 {
	return mgl64.Vec3{
		2*screen.X()/windowSize.X() - 1,
		-2*screen.Y()/windowSize.Y() + 1,
		z,
	}
}

func NDCToClip(ndc mgl64.Vec3) mgl64.Vec4 {
	return ndc.Vec4(1)
}

// ClipToEye applies the inverse projection and zeroes w.
func ClipToEye(clip mgl64.Vec4, proj mgl64.Mat4) mgl64.Vec4 {
	eye := proj.Inv().Mul4x1(clip)
	return eye.Vec3().Vec4(0)
}

// EyeToWorld applies the inverse view to a direction.
func EyeToWorld(eye mgl64.Vec4, view mgl64.Mat4) mgl64.Vec3 {
	return view.Inv().Mul4x1(eye).Vec3()
}

// ScreenToWorld unprojects a screen point at NDC depth z into a world-space
// direction and subtracts originWorld from it.
func ScreenToWorld(screen mgl64.Vec2, proj, view mgl64.Mat4, windowSize mgl64.Vec2, originWorld mgl64.Vec3, z float64) mgl64.Vec3 {
	ndc := ScreenToNDC(screen, windowSize, z)
	eye := ClipToEye(NDCToClip(ndc), proj)
	world := EyeToWorld(eye, view)
	return world.Sub(originWorld)
}

func NDCToWorld(ndc mgl64.Vec3, proj, view mgl64.Mat4) mgl64.Vec3 {
	eye := ClipToEye(NDCToClip(ndc), proj)
	return EyeToWorld(eye, view).Normalize()
}

// RayCast returns the unit direction of the pick ray through a screen point.
func RayCast(screen mgl64.Vec2, proj, view mgl64.Mat4, windowSize mgl64.Vec2, originWorld mgl64.Vec3, z float64) mgl64.Vec3 {
	return ScreenToWorld(screen, proj, view, windowSize, originWorld, z).Normalize()
}
