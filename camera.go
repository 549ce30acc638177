package pointview

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// ZoomCoefficient scales a scroll amount into a translation along the view
// axis. Scroll amounts follow the angle-delta convention of 120 units per
// wheel notch.
const ZoomCoefficient = 0.001

// WorldUp is the default up vector for NewCameraLookAt.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Camera is an arcball camera. The view matrix is always
//
//	distanceTranslation * rotation(orientation) * centerTranslation
//
// and is re-derived by Update after every mutation. A Camera is not safe for
// concurrent use; it belongs to the goroutine that runs the render loop.
type Camera struct {
	// construction parameters, kept only for Reset
	eye, center, up mgl64.Vec3

	orientation         mgl64.Quat
	centerTranslation   mgl64.Mat4
	distanceTranslation mgl64.Mat4

	view       mgl64.Mat4
	invView    mgl64.Mat4
	projection mgl64.Mat4

	kind   ProjectionKind
	fovY   float64
	near   float64
	far    float64
	aspect float64

	windowWidth  int
	windowHeight int

	zoomCoefficient float64
	prevMouse       mgl64.Vec2

	observers []*cameraObserver
	notifying bool
}

type cameraObserver struct {
	fn        func(CameraSnapshot)
	cancelled bool
}

// CameraSnapshot is a read-only copy of the camera state taken after an
// Update.
type CameraSnapshot struct {
	View           mgl64.Mat4
	Projection     mgl64.Mat4
	ProjectionView mgl64.Mat4
	Orientation    mgl64.Quat
	Kind           ProjectionKind
	FovY           float64
	Near           float64
	Far            float64
	Aspect         float64
	WindowWidth    int
	WindowHeight   int
	Position       mgl64.Vec3
	Center         mgl64.Vec3
	Dir            mgl64.Vec3
	Distance       float64
}

// NewCameraLookAt is NewCamera with WorldUp.
func NewCameraLookAt(eye, center mgl64.Vec3) *Camera {
	return NewCamera(eye, center, WorldUp)
}

// NewCamera builds a camera at eye looking at center. eye and center must
// differ and up must not be parallel to center-eye, otherwise the orientation
// is NaN.
func NewCamera(eye, center, up mgl64.Vec3) *Camera {
	c := &Camera{
		eye:             eye,
		center:          center,
		up:              up,
		kind:            Perspective,
		fovY:            DefaultFov,
		near:            DefaultNear,
		far:             DefaultFar,
		aspect:          1,
		windowWidth:     1,
		windowHeight:    1,
		zoomCoefficient: ZoomCoefficient,
	}
	c.lookAt()
	c.Update()
	return c
}

func (c *Camera) lookAt() {
	dir := c.center.Sub(c.eye)
	forward := dir.Normalize()
	right := forward.Cross(c.up.Normalize()).Normalize()
	up := right.Cross(forward).Normalize()

	// rows are the camera axes, so the matrix takes world directions into
	// camera space; the camera looks down -forward
	rot := mgl64.Mat3FromRows(right, up, forward.Mul(-1)).Mat4()
	c.orientation = mgl64.Mat4ToQuat(rot).Normalize()

	c.centerTranslation = mgl64.Translate3D(-c.center.X(), -c.center.Y(), -c.center.Z())
	c.distanceTranslation = mgl64.Translate3D(0, 0, -dir.Len())
}

// Reset restores the orientation, pivot and distance given at construction.
// Projection settings and the window size are kept.
func (c *Camera) Reset() {
	c.lookAt()
	c.prevMouse = mgl64.Vec2{}
	c.Update()
}

// TransformMouse maps pixel coordinates to [-1,1]x[-1,1] with y pointing up.
func (c *Camera) TransformMouse(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{
		x*2/float64(c.windowWidth) - 1,
		1 - 2*y/float64(c.windowHeight),
	}
}

// ScreenToArcball projects p onto the unit arcball sphere. Points outside
// the unit circle are pulled onto its rim (z = 0).
func ScreenToArcball(p mgl64.Vec2) mgl64.Quat {
	dist := p.Dot(p)
	if dist <= 1 {
		return mgl64.Quat{W: 0, V: mgl64.Vec3{p.X(), p.Y(), math.Sqrt(1 - dist)}}
	}
	proj := p.Normalize()
	return mgl64.Quat{W: 0, V: mgl64.Vec3{proj.X(), proj.Y(), 0}}
}

func clampNDC(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{mgl64.Clamp(p.X(), -1, 1), mgl64.Clamp(p.Y(), -1, 1)}
}

// Rotate turns the camera by the arcball rotation that carries prev onto
// cur. Both positions are in normalized device coordinates and are clamped
// to [-1,1].
func (c *Camera) Rotate(prev, cur mgl64.Vec2) {
	qCur := ScreenToArcball(clampNDC(cur))
	qPrev := ScreenToArcball(clampNDC(prev))

	// cur*conj(prev) is -(cur*prev): the same rotation, without flipping the
	// sign of the orientation on every event. Left-multiplying applies it in
	// camera space whatever the current orientation is.
	c.orientation = qCur.Mul(qPrev.Conjugate()).Mul(c.orientation).Normalize()
	c.Update()
}

// Pan moves the pivot by a mouse delta in normalized device coordinates. The
// delta is scaled by the distance to the pivot so the scene follows the
// cursor at any depth.
func (c *Camera) Pan(delta mgl64.Vec2) {
	zoomAmount := math.Abs(c.distanceTranslation.At(2, 3))
	motion := TransformDirection(c.invView, mgl64.Vec3{delta.X() * zoomAmount, delta.Y() * zoomAmount, 0})

	c.centerTranslation = mgl64.Translate3D(motion.X(), motion.Y(), motion.Z()).Mul4(c.centerTranslation)
	c.Update()
}

// Zoom dollies along the view axis. Positive amounts move the camera closer.
func (c *Camera) Zoom(amount float64) {
	c.distanceTranslation = mgl64.Translate3D(0, 0, amount*c.zoomCoefficient).Mul4(c.distanceTranslation)
	c.Update()
}

// Update recomputes the projection and view matrices and notifies observers.
func (c *Camera) Update() {
	c.aspect = float64(c.windowWidth) / float64(c.windowHeight)
	c.projection = projectionParams{
		kind:     c.kind,
		fovY:     c.fovY,
		near:     c.near,
		far:      c.far,
		aspect:   c.aspect,
		distance: c.Distance(),
	}.matrix()

	c.view = c.distanceTranslation.Mul4(c.orientation.Mat4()).Mul4(c.centerTranslation)
	c.invView = c.view.Inv()

	if len(c.observers) == 0 || c.notifying {
		return
	}
	c.notifying = true
	defer func() { c.notifying = false }()

	snap := c.Snapshot()
	// cancel replaces c.observers, so this slice stays intact while ranging
	for _, o := range c.observers {
		if !o.cancelled {
			o.fn(snap)
		}
	}
}

// OnUpdate registers fn to be called after every Update. The returned
// function removes the registration and may be called from inside fn.
// Setters called from an observer update the camera without notifying
// again.
func (c *Camera) OnUpdate(fn func(CameraSnapshot)) (cancel func()) {
	obs := &cameraObserver{fn: fn}
	c.observers = append(c.observers, obs)
	return func() {
		if obs.cancelled {
			return
		}
		obs.cancelled = true
		c.observers = slices.DeleteFunc(slices.Clone(c.observers), func(o *cameraObserver) bool {
			return o == obs
		})
	}
}

// Dir is the world-space viewing direction.
func (c *Camera) Dir() mgl64.Vec3 {
	return TransformDirection(c.invView, mgl64.Vec3{0, 0, -1}).Normalize()
}

// Position is the eye in world space.
func (c *Camera) Position() mgl64.Vec3 {
	return TransformPoint(c.invView, mgl64.Vec3{})
}

// Center is the point the camera orbits around. It follows panning.
func (c *Camera) Center() mgl64.Vec3 {
	return translationOf(c.centerTranslation).Mul(-1)
}

// Distance is the eye to pivot distance along the view axis.
func (c *Camera) Distance() float64 {
	return math.Abs(c.distanceTranslation.At(2, 3))
}

// SetCenter moves the pivot to p, keeping orientation and distance.
func (c *Camera) SetCenter(p mgl64.Vec3) {
	c.centerTranslation = mgl64.Translate3D(-p.X(), -p.Y(), -p.Z())
	c.Update()
}

// Orientation is the arcball rotation.
func (c *Camera) Orientation() mgl64.Quat { return c.orientation }

// CenterTranslation moves the pivot to the origin.
func (c *Camera) CenterTranslation() mgl64.Mat4 { return c.centerTranslation }

// DistanceTranslation pushes the scene away along -z.
func (c *Camera) DistanceTranslation() mgl64.Mat4 { return c.distanceTranslation }

// View is the world to eye matrix.
func (c *Camera) View() mgl64.Mat4 { return c.view }

// Projection is the eye to clip matrix.
func (c *Camera) Projection() mgl64.Mat4 { return c.projection }

// ProjectionView is Projection * View.
func (c *Camera) ProjectionView() mgl64.Mat4 { return c.projection.Mul4(c.view) }

// ProjectionKind reports perspective or orthographic.
func (c *Camera) ProjectionKind() ProjectionKind { return c.kind }

// FieldOfView is the vertical field of view in degrees.
func (c *Camera) FieldOfView() float64 { return c.fovY }

// ClippingPlanes returns the near and far distances.
func (c *Camera) ClippingPlanes() (near, far float64) { return c.near, c.far }

// AspectRatio is width over height of the window.
func (c *Camera) AspectRatio() float64 { return c.aspect }

// ZoomCoefficient scales wheel amounts in Zoom.
func (c *Camera) ZoomCoefficient() float64 { return c.zoomCoefficient }

// PrevMouse is the last cursor position in normalized device coordinates.
func (c *Camera) PrevMouse() mgl64.Vec2 { return c.prevMouse }

// SetPrevMouse records the cursor position used by the next Rotate.
func (c *Camera) SetPrevMouse(p mgl64.Vec2) { c.prevMouse = p }

// WindowSize is the viewport size in pixels.
func (c *Camera) WindowSize() mgl64.Vec2 {
	return mgl64.Vec2{float64(c.windowWidth), float64(c.windowHeight)}
}

// SetWindowSize records the viewport size in pixels. Sizes below one pixel
// are raised to one.
func (c *Camera) SetWindowSize(width, height int) {
	c.windowWidth = max(width, 1)
	c.windowHeight = max(height, 1)
	c.Update()
}

// SetProjectionKind switches between perspective and orthographic.
func (c *Camera) SetProjectionKind(kind ProjectionKind) {
	c.kind = kind
	c.Update()
}

// SetFieldOfView sets the vertical field of view in degrees, clamped to
// [FovMin, FovMax].
func (c *Camera) SetFieldOfView(deg float64) {
	c.fovY = mgl64.Clamp(deg, FovMin, FovMax)
	c.Update()
}

// SetClippingPlanes sets the depth range. near is raised to NearMin and far
// is pushed past near when needed.
func (c *Camera) SetClippingPlanes(near, far float64) {
	c.near = max(near, NearMin)
	c.far = max(far, c.near+NearMin)
	c.Update()
}

// SetZoomCoefficient sets the scale applied to Zoom amounts. It does not
// move the camera.
func (c *Camera) SetZoomCoefficient(k float64) {
	c.zoomCoefficient = k
}

// Snapshot copies the current state for observers.
func (c *Camera) Snapshot() CameraSnapshot {
	return CameraSnapshot{
		View:           c.view,
		Projection:     c.projection,
		ProjectionView: c.ProjectionView(),
		Orientation:    c.orientation,
		Kind:           c.kind,
		FovY:           c.fovY,
		Near:           c.near,
		Far:            c.far,
		Aspect:         c.aspect,
		WindowWidth:    c.windowWidth,
		WindowHeight:   c.windowHeight,
		Position:       c.Position(),
		Center:         c.Center(),
		Dir:            c.Dir(),
		Distance:       c.Distance(),
	}
}

// PickRay unprojects the pixel (x, y) through the near and far planes. It is
// valid for both projection kinds.
func (c *Camera) PickRay(x, y float64) Ray {
	ndc := c.TransformMouse(x, y)
	inv := c.ProjectionView().Inv()

	near := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 1, 1})
	nearW := near.Vec3().Mul(1 / near.W())
	farW := far.Vec3().Mul(1 / far.W())

	return Ray{Origin: nearW, Dir: farW.Sub(nearW).Normalize()}
}

// UniformSetter receives matrices for a shader program or any other sink.
type UniformSetter interface {
	SetUniformMat4(name string, m mgl64.Mat4)
}

// Uniforms are the standard per-draw matrices.
type Uniforms struct {
	Model      mgl64.Mat4
	ModelView  mgl64.Mat4
	Projection mgl64.Mat4
	MVP        mgl64.Mat4
}

func (c *Camera) StandardUniforms(model mgl64.Mat4) Uniforms {
	modelView := c.view.Mul4(model)
	return Uniforms{
		Model:      model,
		ModelView:  modelView,
		Projection: c.projection,
		MVP:        c.projection.Mul4(modelView),
	}
}

// SetStandardUniforms pushes model_matrix, model_view_matrix,
// projection_matrix and mvp to u. A nil setter is ignored.
func (c *Camera) SetStandardUniforms(u UniformSetter, model mgl64.Mat4) {
	if u == nil {
		return
	}
	std := c.StandardUniforms(model)
	u.SetUniformMat4("model_matrix", std.Model)
	u.SetUniformMat4("model_view_matrix", std.ModelView)
	u.SetUniformMat4("projection_matrix", std.Projection)
	u.SetUniformMat4("mvp", std.MVP)
}
