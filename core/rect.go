package core

// Rect2 is a pixel rectangle with its origin at the bottom left.
type Rect2 struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether pixel (x, y) lies inside the rectangle.
func (r Rect2) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

// Sub returns the pixel rectangle covering the fractional rectangle
// (fx, fy, fw, fh) of r.
func (r Rect2) Sub(fx, fy, fw, fh float64) Rect2 {
	return Rect2{
		X:      int(float64(r.X) + fx*float64(r.Width)),
		Y:      int(float64(r.Y) + fy*float64(r.Height)),
		Width:  int(float64(r.Width) * fw),
		Height: int(float64(r.Height) * fh),
	}
}

func (r Rect2) Aspect() float32 {
	if r.Height == 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}
