package viewpoint

import (
	"math"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinFOV = 0
	MaxFOV = 179

	// Field-of-view angles below this render orthographically.
	orthoFOV = 1
)

// Frustum is the viewing volume enclosing the framed sphere, before zoom.
type Frustum struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
	Distance    float32
	Ortho       bool
}

// enclose fits a frustum with the given field of view around a sphere of
// radius r seen from distance r/sin(fov/2).
func enclose(r, fov float32, rect core.Rect2) Frustum {
	f := Frustum{Ortho: fov < orthoFOV}
	if f.Ortho {
		fov = orthoFOV
	}
	half := float64(mgl32.DegToRad(fov)) / 2
	s := float32(math.Sin(half))
	t := float32(math.Tan(half))

	f.Distance = r / s
	f.Near = f.Distance - r
	f.Far = f.Near + 2*r
	hlen := t * f.Near

	aspect := rect.Aspect()
	if aspect >= 1 {
		f.Left, f.Right = -hlen*aspect, hlen*aspect
		f.Bottom, f.Top = -hlen, hlen
	} else {
		f.Left, f.Right = -hlen, hlen
		f.Bottom, f.Top = -hlen/aspect, hlen/aspect
	}
	return f
}

// UserViewpoint owns the projection: field of view, zoom and an optional
// user projection applied after the computed frustum.
type UserViewpoint struct {
	id             core.NodeID
	fov            float32
	zoom           float32
	userProjection mgl32.Mat4
	frustum        Frustum
}

func NewUserViewpoint(id core.NodeID, fov, zoom float32) *UserViewpoint {
	v := &UserViewpoint{
		id:             id,
		zoom:           zoom,
		userProjection: mgl32.Ident4(),
	}
	v.SetFOV(fov)
	return v
}

func (v *UserViewpoint) ID() core.NodeID     { return v.id }
func (v *UserViewpoint) TypeID() core.TypeID { return core.TypeUserViewpoint }

// Clone copies the viewpoint state under a new id.
func (v *UserViewpoint) Clone(id core.NodeID) *UserViewpoint {
	c := *v
	c.id = id
	return &c
}

func (v *UserViewpoint) FOV() float32 { return v.fov }

// SetFOV clamps to [MinFOV, MaxFOV].
func (v *UserViewpoint) SetFOV(fov float32) {
	v.fov = mgl32.Clamp(fov, MinFOV, MaxFOV)
}

func (v *UserViewpoint) Zoom() float32        { return v.zoom }
func (v *UserViewpoint) SetZoom(zoom float32) { v.zoom = zoom }

func (v *UserViewpoint) UserProjection() mgl32.Mat4     { return v.userProjection }
func (v *UserViewpoint) SetUserProjection(m mgl32.Mat4) { v.userProjection = m }

// Frustum returns the frustum computed by the last Projection call.
func (v *UserViewpoint) Frustum() Frustum { return v.frustum }

// Projection computes the projection matrix framing sphere in a viewport of
// the given size.
func (v *UserViewpoint) Projection(rect core.Rect2, sphere core.Sphere) mgl32.Mat4 {
	f := enclose(sphere.Radius, v.fov, rect)
	v.frustum = f

	l, r := f.Left*v.zoom, f.Right*v.zoom
	b, t := f.Bottom*v.zoom, f.Top*v.zoom

	var proj mgl32.Mat4
	if f.Ortho {
		k := f.Distance / f.Near
		proj = mgl32.Ortho(l*k, r*k, b*k, t*k, f.Near, f.Far)
	} else {
		proj = mgl32.Frustum(l, r, b, t, f.Near, f.Far)
	}
	return v.userProjection.Mul4(proj)
}

// Viewer places the eye on the +Z axis at the frustum distance.
func (v *UserViewpoint) Viewer() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -v.frustum.Distance)
}
