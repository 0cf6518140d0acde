package integrators

import "github.com/san-kum/gravsim/internal/vecmath"

// Leapfrog is the drift-kick-drift scheme. It is symplectic, so energy
// errors stay bounded over many orbits at a fixed dt.
type Leapfrog struct{}

func NewLeapfrog() Leapfrog {
	return Leapfrog{}
}

// Predict returns the half-step drift p + ½·dt·v.
func (Leapfrog) Predict(p, v vecmath.Vector2, dt float64) vecmath.Vector2 {
	return p.Add(v.Scale(0.5 * dt))
}

// Step drifts half a step, kicks with the acceleration there, then drifts
// the remaining half with the new velocity.
func (l Leapfrog) Step(p, v vecmath.Vector2, dt float64, accel AccelFunc) (vecmath.Vector2, vecmath.Vector2, vecmath.Vector2) {
	half := l.Predict(p, v, dt)
	a := accel(half)
	vNew := v.Add(a.Scale(dt))
	pNew := half.Add(vNew.Scale(0.5 * dt))
	return pNew, vNew, a
}
