package core

import "github.com/go-gl/mathgl/mgl32"

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// UnitSphere is the framing volume used when there is nothing to frame.
func UnitSphere() Sphere {
	return Sphere{Radius: 1}
}

// SphereFromBox encloses box after scaling its extent per axis. The centre
// is the unscaled box centre; the model transform applies scale around it.
func SphereFromBox(box AABox, scale mgl32.Vec3) Sphere {
	size := box.Size()
	scaled := mgl32.Vec3{size.X() * scale.X(), size.Y() * scale.Y(), size.Z() * scale.Z()}
	return Sphere{
		Center: box.Center(),
		Radius: scaled.Len() * 0.5,
	}
}
