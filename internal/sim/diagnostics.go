package sim

import (
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// KineticEnergy returns Σ ½·m·|v|².
func (s *Simulation) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.bodies {
		ke += b.KineticEnergy()
	}
	return ke
}

// PotentialEnergy returns -Σ G·mi·mj / rij over unordered pairs, unsoftened.
func (s *Simulation) PotentialEnergy() float64 {
	pe := 0.0
	for i := range s.bodies {
		for j := i + 1; j < len(s.bodies); j++ {
			pe -= physics.Potential(s.bodies[i], s.bodies[j], s.g)
		}
	}
	return pe
}

// Energy returns the total mechanical energy, counting each pair once.
func (s *Simulation) Energy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// PairwiseEnergy sums the potential over ordered pairs, so every pair is
// counted twice. Kept for comparison with recordings made that way.
func (s *Simulation) PairwiseEnergy() float64 {
	return s.KineticEnergy() + 2*s.PotentialEnergy()
}

// AngularMomentum returns Σ m·(r × v) about the origin (the z component).
func (s *Simulation) AngularMomentum() float64 {
	l := 0.0
	for _, b := range s.bodies {
		l += b.Mass() * b.Position().Cross(b.Velocity())
	}
	return l
}

// Momentum returns Σ m·v.
func (s *Simulation) Momentum() vecmath.Vector2 {
	var p vecmath.Vector2
	for _, b := range s.bodies {
		p = p.Add(b.Velocity().Scale(b.Mass()))
	}
	return p
}

// CenterOfMass returns Σ m·p / Σ m.
func (s *Simulation) CenterOfMass() (vecmath.Vector2, error) {
	var com vecmath.Vector2
	total := 0.0
	for _, b := range s.bodies {
		total += b.Mass()
		com = com.Add(b.Position().Scale(b.Mass()))
	}
	if total == 0 {
		return vecmath.Vector2{}, ErrNoMass
	}
	return com.Scale(1 / total), nil
}

// TotalMass returns Σ m.
func (s *Simulation) TotalMass() float64 {
	total := 0.0
	for _, b := range s.bodies {
		total += b.Mass()
	}
	return total
}

// firstDiverged returns the id of the first body holding NaN or Inf.
func (s *Simulation) firstDiverged() (int, bool) {
	for _, b := range s.bodies {
		if !b.IsFinite() {
			return b.ID(), true
		}
	}
	return 0, false
}
