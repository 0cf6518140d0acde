package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/vecmath"
)

// Softening is the Plummer softening length in simulation units.
const Softening = 0.01

// Potential returns G·ma·mb / r, unsoftened. Coincident bodies give 0.
func Potential(a, b Body, g float64) float64 {
	r := b.position.Sub(a.position).Norm()
	if r == 0 {
		return 0
	}
	return g * a.mass * b.mass / r
}

// Force returns the unsoftened force magnitude G·ma·mb / r². Coincident
// bodies give 0.
func Force(a, b Body, g float64) float64 {
	r2 := b.position.Sub(a.position).NormSquared()
	if r2 == 0 {
		return 0
	}
	return g * a.mass * b.mass / r2
}

// SoftenedForce returns the Plummer-softened magnitude
// G·ma·mb·r / (r² + eps²)^1.5, which tends to Force as eps → 0 and to zero
// as r → 0.
func SoftenedForce(a, b Body, g, eps float64) float64 {
	r := b.position.Sub(a.position).Norm()
	return softenedMagnitude(g*a.mass*b.mass, r, eps)
}

func softenedMagnitude(gmm, r, eps float64) float64 {
	return gmm * r / math.Pow(r*r+eps*eps, 1.5)
}

// ForceExertedBy returns the acceleration other imparts on b: the attraction
// towards other, scaled by the (optionally softened) force over b's mass.
func (b Body) ForceExertedBy(other Body, g float64, soften bool) vecmath.Vector2 {
	return b.AccelerationFrom(other, b.position, g, soften)
}

// AccelerationFrom is ForceExertedBy evaluated as if b were at pos.
// Coincident positions contribute nothing.
func (b Body) AccelerationFrom(other Body, pos vecmath.Vector2, g float64, soften bool) vecmath.Vector2 {
	d := other.position.Sub(pos)
	r := d.Norm()
	if r == 0 {
		return vecmath.Vector2{}
	}
	// one square root per pair: the unit vector reuses r
	unit := d.Scale(1 / r)

	gmm := g * b.mass * other.mass
	var f float64
	if soften {
		f = softenedMagnitude(gmm, r, Softening)
	} else {
		f = gmm / (r * r)
	}
	return unit.Scale(f / b.mass)
}

// CircularVelocity returns the velocity that puts orbiter on a circular,
// counter-clockwise orbit around central, treating central as fixed.
func CircularVelocity(central, orbiter Body, g float64) vecmath.Vector2 {
	d := orbiter.position.Sub(central.position)
	r := d.Norm()
	if r == 0 {
		return central.velocity
	}
	speed := math.Sqrt(g * central.mass / r)
	tangent := vecmath.Vector2{X: -d.Y / r, Y: d.X / r}
	return central.velocity.Add(tangent.Scale(speed))
}
