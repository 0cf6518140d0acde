package sim

import (
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/vecmath"
)

const (
	DefaultG  = 1.0
	DefaultDt = 0.001
)

// DefaultBounds is the display region a new simulation reports.
var DefaultBounds = vecmath.NewRect(-3, 3, -3, 3)

type Option func(*Simulation)

func WithG(g float64) Option {
	return func(s *Simulation) { s.g = g }
}

// WithScaledG derives G from unit scales, see physics.ScaledG.
func WithScaledG(massScale, timeScale, lengthScale float64) Option {
	return func(s *Simulation) { s.g = physics.ScaledG(massScale, timeScale, lengthScale) }
}

func WithDt(dt float64) Option {
	return func(s *Simulation) { s.dt = dt }
}

func WithMethod(m integrators.Method) Option {
	return func(s *Simulation) { s.method = m }
}

func WithOrdering(o Ordering) Option {
	return func(s *Simulation) { s.ordering = o }
}

func WithSoften(soften bool) Option {
	return func(s *Simulation) { s.soften = soften }
}

// WithWorkers splits synchronous force sums across n goroutines.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.workers = n }
}

func WithBounds(r vecmath.Rect) Option {
	return func(s *Simulation) { s.bounds = r }
}
