package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABox is an axis-aligned bounding box. A box with Min > Max on any axis is
// invalid; the zero value is a valid point box at the origin, so use
// EmptyAABox to start an accumulation.
type AABox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

var inf = float32(math.Inf(1))

func EmptyAABox() AABox {
	return AABox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func NewAABox(a, b mgl32.Vec3) AABox {
	box := EmptyAABox()
	box.Extend(a)
	box.Extend(b)
	return box
}

func (b *AABox) Invalidate() {
	*b = EmptyAABox()
}

func (b AABox) IsValid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

// Extend grows the box to include v.
func (b *AABox) Extend(v mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], v[i])
		b.Max[i] = max(b.Max[i], v[i])
	}
}

// Union grows the box to include o. Invalid boxes contribute nothing.
func (b *AABox) Union(o AABox) {
	if !o.IsValid() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Intersect shrinks the box to its overlap with o. The result is invalid when
// the boxes are disjoint.
func (b *AABox) Intersect(o AABox) {
	for i := 0; i < 3; i++ {
		b.Min[i] = max(b.Min[i], o.Min[i])
		b.Max[i] = min(b.Max[i], o.Max[i])
	}
}

func (b AABox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether o lies entirely inside b.
func (b AABox) Contains(o AABox) bool {
	if !b.IsValid() || !o.IsValid() {
		return false
	}
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform returns the conservative box enclosing the eight transformed
// corners of b.
func (b AABox) Transform(m mgl32.Mat4) AABox {
	if !b.IsValid() {
		return b
	}
	corners := [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
	out := EmptyAABox()
	for _, c := range corners {
		out.Extend(m.Mul4x1(c.Vec4(1.0)).Vec3())
	}
	return out
}
