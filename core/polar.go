package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PolarCoord is a camera position on the viewing sphere, in degrees.
// Theta is the azimuth, Phi the elevation.
type PolarCoord struct {
	Theta float32
	Phi   float32
}

func (p PolarCoord) Add(o PolarCoord) PolarCoord {
	return PolarCoord{p.Theta + o.Theta, p.Phi + o.Phi}
}

func (p PolarCoord) Sub(o PolarCoord) PolarCoord {
	return PolarCoord{p.Theta - o.Theta, p.Phi - o.Phi}
}

// ScreenToPolar maps a viewport pixel to polar angles. Offsets from the
// viewport centre are clamped to half the shorter side so the arcsine stays
// defined.
func ScreenToPolar(width, height, x, y int) PolarCoord {
	r := float32(min(width, height)) * 0.5
	if r <= 0 {
		return PolarCoord{}
	}
	dx := mgl32.Clamp(float32(x)-float32(width)*0.5, -r, r)
	dy := mgl32.Clamp(float32(y)-float32(height)*0.5, -r, r)
	return PolarCoord{
		Theta: mgl32.RadToDeg(float32(math.Asin(float64(dx / r)))),
		Phi:   mgl32.RadToDeg(float32(math.Asin(float64(dy / r)))),
	}
}

// ScreenToVector maps a viewport pixel onto the unit hemisphere facing the
// viewer. The viewport centre maps to +Z; the distance from the centre,
// normalized by half the longer side, falls off over a quarter turn so the
// corners land on the silhouette (z = 0) and nothing goes behind it.
func ScreenToVector(width, height, x, y int) mgl32.Vec3 {
	radius := float32(max(width, height)) * 0.5
	if radius <= 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	px := (float32(x) - float32(width)*0.5) / radius
	py := (float32(y) - float32(height)*0.5) / radius

	l := float32(math.Sqrt(float64(px*px + py*py)))
	if l > 1.0e-6 {
		px /= l
		py /= l
	}

	maxLen := float32(math.Sqrt2)
	l = min(l, maxLen)
	angle := (maxLen - l) / maxLen * math.Pi / 2
	z := float32(math.Sin(float64(angle)))

	l = float32(math.Sqrt(float64(max(0, 1-z*z))))
	return mgl32.Vec3{px * l, py * l, z}
}
