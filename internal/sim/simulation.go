package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// Simulation owns a set of bodies and advances them under mutual gravity.
// It is not safe for concurrent use.
type Simulation struct {
	bodies []physics.Body
	nextID int

	g        float64
	dt       float64
	paused   bool
	soften   bool
	method   integrators.Method
	ordering Ordering
	workers  int
	bounds   vecmath.Rect

	steps int
	time  float64

	metrics   []Metric
	observers []Observer

	// per-tick scratch, reused across Update calls
	snapshot []physics.Body
	pending  []stepResult
}

type stepResult struct {
	pos, vel, acc vecmath.Vector2
}

// New returns a running simulation with G = 1, dt = 0.001, softening on,
// leapfrog integration and synchronous ordering unless options say otherwise.
func New(opts ...Option) *Simulation {
	s := &Simulation{
		bodies:   make([]physics.Body, 0),
		g:        DefaultG,
		dt:       DefaultDt,
		soften:   true,
		method:   integrators.MethodLeapfrog,
		ordering: Synchronous,
		workers:  1,
		bounds:   DefaultBounds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddBody appends a body with the next id and returns that id. Position and
// velocity default to zero; both are recorded as the body's initial state.
func (s *Simulation) AddBody(mass, radius float64, opts ...physics.Option) int {
	id := s.nextID
	s.nextID++
	s.bodies = append(s.bodies, physics.NewBody(id, mass, radius, opts...))
	return id
}

// AddBodies adds every spec in order. All specs are validated first, so a
// bad spec adds nothing.
func (s *Simulation) AddBodies(specs []physics.BodySpec) ([]int, error) {
	all := make([][]physics.Option, len(specs))
	for i, spec := range specs {
		opts, err := spec.Options()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		all[i] = opts
	}

	ids := make([]int, len(specs))
	for i, spec := range specs {
		ids[i] = s.AddBody(spec.Mass, spec.Radius, all[i]...)
	}
	return ids, nil
}

func (s *Simulation) BodyCount() int { return len(s.bodies) }

// Bodies returns a copy of the bodies in insertion order.
func (s *Simulation) Bodies() []physics.Body {
	out := make([]physics.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Body returns a copy of the body with the given id.
func (s *Simulation) Body(id int) (physics.Body, bool) {
	for _, b := range s.bodies {
		if b.ID() == id {
			return b, true
		}
	}
	return physics.Body{}, false
}

// Update advances every non-static body by one time step. It does nothing
// while the simulation is paused.
func (s *Simulation) Update() {
	if s.paused {
		return
	}

	integ := s.method.Integrator()
	switch s.ordering {
	case Sequential:
		s.updateSequential(integ)
	default:
		s.updateSynchronous(integ)
	}

	s.steps++
	s.time += s.dt
}

func (s *Simulation) updateSequential(integ integrators.Integrator) {
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Static() {
			continue
		}
		self := *b
		pos, vel, acc := integ.Step(b.Position(), b.Velocity(), s.dt, func(at vecmath.Vector2) vecmath.Vector2 {
			return s.accelerationOn(self, at, s.bodies)
		})
		b.SetPosition(pos)
		b.SetVelocity(vel)
		b.SetAcceleration(acc)
	}
}

func (s *Simulation) updateSynchronous(integ integrators.Integrator) {
	n := len(s.bodies)
	if cap(s.snapshot) < n {
		s.snapshot = make([]physics.Body, n)
		s.pending = make([]stepResult, n)
	}
	snap := s.snapshot[:n]
	pending := s.pending[:n]

	copy(snap, s.bodies)
	for i := range snap {
		if !snap[i].Static() {
			snap[i].SetPosition(integ.Predict(snap[i].Position(), snap[i].Velocity(), s.dt))
		}
	}

	s.forEach(n, func(i int) {
		b := s.bodies[i]
		if b.Static() {
			return
		}
		pos, vel, acc := integ.Step(b.Position(), b.Velocity(), s.dt, func(at vecmath.Vector2) vecmath.Vector2 {
			return s.accelerationOn(b, at, snap)
		})
		pending[i] = stepResult{pos: pos, vel: vel, acc: acc}
	})

	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Static() {
			continue
		}
		b.SetPosition(pending[i].pos)
		b.SetVelocity(pending[i].vel)
		b.SetAcceleration(pending[i].acc)
	}
}

// accelerationOn sums the pull of every source except body itself, matched
// by id, with body placed at `at`.
func (s *Simulation) accelerationOn(body physics.Body, at vecmath.Vector2, sources []physics.Body) vecmath.Vector2 {
	var total vecmath.Vector2
	for j := range sources {
		if sources[j].ID() == body.ID() {
			continue
		}
		total = total.Add(body.AccelerationFrom(sources[j], at, s.g, s.soften))
	}
	return total
}

// TotalAcceleration returns the current acceleration on the body with the
// given id from all other bodies.
func (s *Simulation) TotalAcceleration(id int) (vecmath.Vector2, bool) {
	b, ok := s.Body(id)
	if !ok {
		return vecmath.Vector2{}, false
	}
	return s.accelerationOn(b, b.Position(), s.bodies), true
}

// Reset restores every body's initial position and velocity and rewinds the
// step counter. Accelerations, pause state and settings are kept.
func (s *Simulation) Reset() {
	for i := range s.bodies {
		s.bodies[i].Reset()
	}
	s.steps = 0
	s.time = 0
}

// Pause toggles between running and paused.
func (s *Simulation) Pause()         { s.paused = !s.paused }
func (s *Simulation) IsPaused() bool { return s.paused }

func (s *Simulation) G() float64     { return s.g }
func (s *Simulation) SetG(g float64) { s.g = g }

// SetScaledG derives G from unit scales, see physics.ScaledG.
func (s *Simulation) SetScaledG(massScale, timeScale, lengthScale float64) {
	s.g = physics.ScaledG(massScale, timeScale, lengthScale)
}

func (s *Simulation) Soften() bool          { return s.soften }
func (s *Simulation) SetSoften(soften bool) { s.soften = soften }

func (s *Simulation) Dt() float64      { return s.dt }
func (s *Simulation) SetDt(dt float64) { s.dt = dt }

func (s *Simulation) Method() integrators.Method     { return s.method }
func (s *Simulation) SetMethod(m integrators.Method) { s.method = m }

func (s *Simulation) Ordering() Ordering     { return s.ordering }
func (s *Simulation) SetOrdering(o Ordering) { s.ordering = o }

func (s *Simulation) Workers() int { return s.workers }

func (s *Simulation) Bounds() vecmath.Rect     { return s.bounds }
func (s *Simulation) SetBounds(r vecmath.Rect) { s.bounds = r }

// Steps returns the number of ticks advanced since construction or Reset.
func (s *Simulation) Steps() int { return s.steps }

// Time returns the simulated time since construction or Reset.
func (s *Simulation) Time() float64 { return s.time }

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }
