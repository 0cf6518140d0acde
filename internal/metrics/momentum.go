package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// AngularMomentumDrift reports the largest relative change of the total
// angular momentum. Systems with zero initial angular momentum report the
// largest absolute change instead.
type AngularMomentumDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{name: "angular_momentum_drift"}
}

func (a *AngularMomentumDrift) Name() string { return a.name }

func (a *AngularMomentumDrift) Observe(s *sim.Simulation) {
	l := s.AngularMomentum()
	if a.samples == 0 {
		a.initial = l
	}
	a.samples++

	drift := math.Abs(l - a.initial)
	if a.initial != 0 {
		drift /= math.Abs(a.initial)
	}
	a.maxDrift = math.Max(a.maxDrift, drift)
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}

// CenterOfMassDrift reports the farthest the center of mass has moved from
// where it was at the first observed tick.
type CenterOfMassDrift struct {
	name    string
	initial vecmath.Vector2
	maxDist float64
	samples int
}

func NewCenterOfMassDrift() *CenterOfMassDrift {
	return &CenterOfMassDrift{name: "com_drift"}
}

func (c *CenterOfMassDrift) Name() string { return c.name }

func (c *CenterOfMassDrift) Observe(s *sim.Simulation) {
	com, err := s.CenterOfMass()
	if err != nil {
		return
	}
	if c.samples == 0 {
		c.initial = com
	}
	c.samples++
	c.maxDist = math.Max(c.maxDist, com.Sub(c.initial).Norm())
}

func (c *CenterOfMassDrift) Value() float64 { return c.maxDist }

func (c *CenterOfMassDrift) Reset() {
	c.initial = vecmath.Vector2{}
	c.maxDist = 0
	c.samples = 0
}
