package components

// Bounds is the size of a drawing surface in pixels.
type Bounds struct {
	Width  float64
	Height float64
}

// NewBounds converts integer viewport dimensions, treating negatives as zero.
func NewBounds(w, h int) Bounds {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Bounds{Width: float64(w), Height: float64(h)}
}

// Area returns Width*Height.
func (b Bounds) Area() float64 {
	return b.Width * b.Height
}

// Empty reports whether the surface has not been laid out yet.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether (x, y) lies inside [0,W]x[0,H].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}
