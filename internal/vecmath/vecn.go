package vecmath

import "math"

// VecN is a vector whose dimension is its length.
type VecN []float64

func (v VecN) Clone() VecN {
	c := make(VecN, len(v))
	copy(c, v)
	return c
}

func (v VecN) Dim() int { return len(v) }

func (v VecN) IsValid() bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

func (v VecN) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v VecN) Add(other VecN) (VecN, error) {
	if len(v) != len(other) {
		return nil, mismatch(len(v), len(other))
	}
	result := make(VecN, len(v))
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result, nil
}

func (v VecN) Sub(other VecN) (VecN, error) {
	if len(v) != len(other) {
		return nil, mismatch(len(v), len(other))
	}
	result := make(VecN, len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result, nil
}

func (v VecN) Scale(factor float64) VecN {
	result := make(VecN, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// DotProduct returns a·b. Vectors must share a dimension.
func DotProduct(a, b VecN) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// AngleBetween returns acos(a·b / (|a||b|)).
func AngleBetween(a, b VecN) (float64, error) {
	dot, err := DotProduct(a, b)
	if err != nil {
		return 0, err
	}
	return math.Acos(clampUnit(dot / (a.Norm() * b.Norm()))), nil
}
