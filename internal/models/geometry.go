package models

// Rect is a surface rectangle in pixels. A zero height hides the surface.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Hidden reports whether the rectangle has no visible area
func (r Rect) Hidden() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate one past the right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return !r.Hidden() && x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Size is a window or viewport size in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
