// Package geom provides the rectangle arithmetic used by marquee selection.
package geom

// Point is a position in either page or content coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. W and H are never negative for rects
// produced by this package.
type Rect struct {
	X, Y, W, H float64
}

// FromCorners builds a normalized Rect from two opposite corners in any order.
func FromCorners(x1, y1, x2, y2 float64) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate returns the rect shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Overlaps reports axis-aligned bounding-box intersection: two rects overlap
// unless one is entirely left of, right of, above, or below the other.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() < o.X || o.Right() < r.X {
		return false
	}
	if r.Bottom() < o.Y || o.Bottom() < r.Y {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the rect (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
