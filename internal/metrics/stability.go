package metrics

import (
	"github.com/san-kum/gravsim/internal/sim"
)

// Stability is the fraction of observed ticks on which every body stayed
// within threshold of the origin and held a finite state.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sm *sim.Simulation) {
	s.samples++
	for _, b := range sm.Bodies() {
		if !b.IsFinite() || b.Position().Norm() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Standard returns the metrics recorded for every CLI run. The stability
// radius is the larger half extent of the simulation bounds times ten.
func Standard(s *sim.Simulation) []sim.Metric {
	b := s.Bounds()
	radius := 10 * max(b.Width(), b.Height()) / 2
	return []sim.Metric{
		NewEnergyDrift(),
		NewAngularMomentumDrift(),
		NewCenterOfMassDrift(),
		NewStability(radius),
	}
}
