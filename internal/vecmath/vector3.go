package vecmath

import "math"

// Vector3 is a 3-D vector with value semantics.
type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// NewVector3 builds a vector from up to three components, zero-filling the rest.
func NewVector3(components ...float64) (Vector3, error) {
	if len(components) > 3 {
		return Vector3{}, incorrect(len(components), 3)
	}
	var v Vector3
	for i, c := range components {
		_ = v.Set(i, c)
	}
	return v, nil
}

func (v Vector3) Dim() int { return 3 }

func (v Vector3) At(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	}
	return 0, &IndexError{Index: i, Dim: 3}
}

func (v *Vector3) Set(i int, val float64) error {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		return &IndexError{Index: i, Dim: 3}
	}
	return nil
}

func (v Vector3) Add(o Vector3) Vector3   { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3   { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Dot(o Vector3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) NormSquared() float64 { return v.Dot(v) }
func (v Vector3) Norm() float64        { return math.Sqrt(v.NormSquared()) }

// Normalise divides v by its norm in place. A zero vector becomes NaN.
func (v *Vector3) Normalise() {
	n := v.Norm()
	v.X /= n
	v.Y /= n
	v.Z /= n
}

func (v Vector3) Normalised() Vector3 {
	v.Normalise()
	return v
}

func (v Vector3) AngleBetween(o Vector3) float64 {
	return math.Acos(clampUnit(v.Dot(o) / (v.Norm() * o.Norm())))
}

func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector3) VecN() VecN { return VecN{v.X, v.Y, v.Z} }

func Vector3FromVecN(n VecN) (Vector3, error) {
	return NewVector3(n...)
}
