package integrators

import "github.com/san-kum/gravsim/internal/vecmath"

// Euler is the semi-implicit Euler scheme: the position uses the new velocity.
type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

func (Euler) Predict(p, _ vecmath.Vector2, _ float64) vecmath.Vector2 {
	return p
}

// Step applies v' = v + a·dt, p' = p + v'·dt.
func (Euler) Step(p, v vecmath.Vector2, dt float64, accel AccelFunc) (vecmath.Vector2, vecmath.Vector2, vecmath.Vector2) {
	a := accel(p)
	vNew := v.Add(a.Scale(dt))
	pNew := p.Add(vNew.Scale(dt))
	return pNew, vNew, a
}

// Taylor extends Euler with the second order position term.
type Taylor struct{}

func NewTaylor() Taylor {
	return Taylor{}
}

func (Taylor) Predict(p, _ vecmath.Vector2, _ float64) vecmath.Vector2 {
	return p
}

// Step applies v' = v + a·dt, p' = p + v'·dt + ½·a·dt².
func (Taylor) Step(p, v vecmath.Vector2, dt float64, accel AccelFunc) (vecmath.Vector2, vecmath.Vector2, vecmath.Vector2) {
	a := accel(p)
	vNew := v.Add(a.Scale(dt))
	pNew := p.Add(vNew.Scale(dt)).Add(a.Scale(0.5 * dt * dt))
	return pNew, vNew, a
}
