package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/vecmath"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(s *Simulation)
	Value() float64
	Reset()
}

// Observer is notified after every tick of a run.
type Observer interface {
	OnStep(s *Simulation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Simulation)

func (f ObserverFunc) OnStep(s *Simulation) { f(s) }

type RunConfig struct {
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Steps:         10000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

func (c RunConfig) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("%w: sample interval must be at least 1, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	return nil
}

// BodyState is the recorded kinematic state of one body.
type BodyState struct {
	ID       int             `json:"id"`
	Position vecmath.Vector2 `json:"position"`
	Velocity vecmath.Vector2 `json:"velocity"`
}

// Frame is one sample of a run.
type Frame struct {
	Step   int         `json:"step"`
	Time   float64     `json:"time"`
	Energy float64     `json:"energy"`
	Bodies []BodyState `json:"bodies"`
}

type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Frame captures the current state of s.
func (s *Simulation) Frame() Frame {
	f := Frame{
		Step:   s.steps,
		Time:   s.time,
		Energy: s.Energy(),
		Bodies: make([]BodyState, len(s.bodies)),
	}
	for i, b := range s.bodies {
		f.Bodies[i] = BodyState{ID: b.ID(), Position: b.Position(), Velocity: b.Velocity()}
	}
	return f
}
