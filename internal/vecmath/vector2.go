package vecmath

import "math"

// Vector2 is a 2-D vector with value semantics.
type Vector2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Zero2 is the origin.
var Zero2 = Vector2{}

// NewVector2 builds a vector from up to two components, zero-filling the rest.
func NewVector2(components ...float64) (Vector2, error) {
	if len(components) > 2 {
		return Vector2{}, incorrect(len(components), 2)
	}
	var v Vector2
	for i, c := range components {
		_ = v.Set(i, c)
	}
	return v, nil
}

func (v Vector2) Dim() int { return 2 }

// At returns the component at offset i.
func (v Vector2) At(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	}
	return 0, &IndexError{Index: i, Dim: 2}
}

// Set writes the component at offset i.
func (v *Vector2) Set(i int, val float64) error {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		return &IndexError{Index: i, Dim: 2}
	}
	return nil
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Neg() Vector2            { return Vector2{-v.X, -v.Y} }
func (v Vector2) Dot(o Vector2) float64   { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3-D cross product of v and o.
func (v Vector2) Cross(o Vector2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vector2) NormSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vector2) Norm() float64        { return math.Sqrt(v.NormSquared()) }

// Normalise divides v by its norm in place. A zero vector becomes NaN.
func (v *Vector2) Normalise() {
	n := v.Norm()
	v.X /= n
	v.Y /= n
}

// Normalised returns a unit copy of v. A zero vector yields NaN components.
func (v Vector2) Normalised() Vector2 {
	v.Normalise()
	return v
}

// AngleBetween returns the angle in radians between v and o.
func (v Vector2) AngleBetween(o Vector2) float64 {
	return math.Acos(clampUnit(v.Dot(o) / (v.Norm() * o.Norm())))
}

func (v Vector2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// VecN returns a dynamic copy of v.
func (v Vector2) VecN() VecN { return VecN{v.X, v.Y} }

// Vector2FromVecN converts a dynamic vector of dimension at most 2.
func Vector2FromVecN(n VecN) (Vector2, error) {
	return NewVector2(n...)
}

func clampUnit(c float64) float64 {
	// rounding can push |cos| just past 1 for parallel vectors
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
