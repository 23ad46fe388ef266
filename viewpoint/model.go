package viewpoint

import (
	"math"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelViewpoint owns the model orientation: polar camera position, per-axis
// scale, a persistent user matrix and the rotation of a drag in progress.
type ModelViewpoint struct {
	id           core.NodeID
	position     core.PolarCoord
	scale        mgl32.Vec3
	userMatrix   mgl32.Mat4
	mouseMatrix  mgl32.Mat4
	interactive  bool
	scaleChanged bool
}

func NewModelViewpoint(id core.NodeID, position core.PolarCoord, scale mgl32.Vec3, interactive bool) *ModelViewpoint {
	return &ModelViewpoint{
		id:          id,
		position:    position,
		scale:       scale,
		userMatrix:  mgl32.Ident4(),
		mouseMatrix: mgl32.Ident4(),
		interactive: interactive,
	}
}

func (v *ModelViewpoint) ID() core.NodeID     { return v.id }
func (v *ModelViewpoint) TypeID() core.TypeID { return core.TypeModelViewpoint }

func (v *ModelViewpoint) Clone(id core.NodeID) *ModelViewpoint {
	c := *v
	c.id = id
	return &c
}

func (v *ModelViewpoint) Position() core.PolarCoord     { return v.position }
func (v *ModelViewpoint) SetPosition(p core.PolarCoord) { v.position = p }

func (v *ModelViewpoint) Scale() mgl32.Vec3 { return v.scale }

func (v *ModelViewpoint) SetScale(s mgl32.Vec3) {
	if s != v.scale {
		v.scaleChanged = true
	}
	v.scale = s
}

// ScaleChanged reports whether the scale moved since the last rendered frame.
func (v *ModelViewpoint) ScaleChanged() bool { return v.scaleChanged }
func (v *ModelViewpoint) ClearScaleChanged() { v.scaleChanged = false }

func (v *ModelViewpoint) UserMatrix() mgl32.Mat4     { return v.userMatrix }
func (v *ModelViewpoint) SetUserMatrix(m mgl32.Mat4) { v.userMatrix = m }
func (v *ModelViewpoint) MouseMatrix() mgl32.Mat4    { return v.mouseMatrix }

func (v *ModelViewpoint) Interactive() bool     { return v.interactive }
func (v *ModelViewpoint) SetInteractive(b bool) { v.interactive = b }

// Orientation is mouse · user · Rx(phi) · Ry(-theta).
func (v *ModelViewpoint) Orientation() mgl32.Mat4 {
	return v.mouseMatrix.
		Mul4(v.userMatrix).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(v.position.Phi))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-v.position.Theta)))
}

// Transformation is the model contribution for a scene centred on center:
// orientation, then scale, then moving center to the origin.
func (v *ModelViewpoint) Transformation(center mgl32.Vec3) mgl32.Mat4 {
	return v.Orientation().
		Mul4(mgl32.Scale3D(v.scale.X(), v.scale.Y(), v.scale.Z())).
		Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
}

// UpdateMouseMatrix sets the in-progress rotation to the one carrying base
// onto current. Parallel vectors give the identity.
func (v *ModelViewpoint) UpdateMouseMatrix(base, current mgl32.Vec3) {
	v.mouseMatrix = rotationBetween(base, current)
}

// MergeMouseMatrix folds the in-progress rotation into the user matrix.
func (v *ModelViewpoint) MergeMouseMatrix() {
	v.userMatrix = v.mouseMatrix.Mul4(v.userMatrix)
	v.mouseMatrix = mgl32.Ident4()
}

// MouseOneAxis rotates about a model-space axis by the horizontal angle
// swept from base to current.
func (v *ModelViewpoint) MouseOneAxis(base, current, axis mgl32.Vec3) {
	angle := float32(math.Atan2(float64(current.X()), float64(current.Z())) -
		math.Atan2(float64(base.X()), float64(base.Z())))
	if axis.Len() < 1e-6 {
		v.mouseMatrix = mgl32.Ident4()
		return
	}
	rot := mgl32.HomogRotate3D(angle, axis.Normalize())
	v.mouseMatrix = v.userMatrix.Mul4(rot).Mul4(v.userMatrix.Inv())
}

func rotationBetween(a, b mgl32.Vec3) mgl32.Mat4 {
	la, lb := a.Len(), b.Len()
	if la < 1e-6 || lb < 1e-6 {
		return mgl32.Ident4()
	}
	axis := a.Cross(b)
	if axis.Len() < 1e-6 {
		return mgl32.Ident4()
	}
	cos := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	angle := float32(math.Acos(float64(cos)))
	return mgl32.HomogRotate3D(angle, axis.Normalize())
}

// RotationAngle returns the rotation angle in radians of the rotation part
// of m.
func RotationAngle(m mgl32.Mat4) float32 {
	trace := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	cos := mgl32.Clamp((trace-1)/2, -1, 1)
	return float32(math.Acos(float64(cos)))
}
