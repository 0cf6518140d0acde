package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/vecmath"
)

// Transform maps p from the from rectangle to the to rectangle by keeping
// its fractional position along each axis. The extent of to is taken as an
// absolute value, so an inverted target range is not mirrored.
func Transform(p vecmath.Vector2, from, to vecmath.Rect) vecmath.Vector2 {
	xPct := (p.X - from.Min.X) / (from.Max.X - from.Min.X)
	yPct := (p.Y - from.Min.Y) / (from.Max.Y - from.Min.Y)
	return vecmath.Vector2{
		X: xPct*math.Abs(to.Max.X-to.Min.X) + to.Min.X,
		Y: yPct*math.Abs(to.Max.Y-to.Min.Y) + to.Min.Y,
	}
}

// ToScreen maps a world point to sub-pixel coordinates of a w×h pixel
// screen whose y axis points down. ok is false when the point falls
// outside the screen.
func ToScreen(p vecmath.Vector2, view vecmath.Rect, w, h int) (x, y int, ok bool) {
	screen := vecmath.NewRect(0, float64(w-1), 0, float64(h-1))
	s := Transform(p, view, screen)
	if math.IsNaN(s.X) || math.IsNaN(s.Y) {
		return 0, 0, false
	}
	x = int(math.Round(s.X))
	y = h - 1 - int(math.Round(s.Y))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// FitAspect grows r along one axis so that width/height equals aspect,
// keeping its center.
func FitAspect(r vecmath.Rect, aspect float64) vecmath.Rect {
	w, h := r.Width(), r.Height()
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	if w/h < aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	return vecmath.NewRect(cx-w/2, cx+w/2, cy-h/2, cy+h/2)
}

// Zoom scales r about its center; factors below one zoom in.
func Zoom(r vecmath.Rect, factor float64) vecmath.Rect {
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	hw, hh := r.Width()*factor/2, r.Height()*factor/2
	return vecmath.NewRect(cx-hw, cx+hw, cy-hh, cy+hh)
}

// Pan moves r by the given fractions of its width and height.
func Pan(r vecmath.Rect, fx, fy float64) vecmath.Rect {
	dx, dy := r.Width()*fx, r.Height()*fy
	return vecmath.NewRect(r.Min.X+dx, r.Max.X+dx, r.Min.Y+dy, r.Max.Y+dy)
}

// CenterOn moves r so that its center is c.
func CenterOn(r vecmath.Rect, c vecmath.Vector2) vecmath.Rect {
	hw, hh := r.Width()/2, r.Height()/2
	return vecmath.NewRect(c.X-hw, c.X+hw, c.Y-hh, c.Y+hh)
}
