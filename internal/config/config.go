package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

const (
	DefaultSteps       = 10000
	DefaultSampleEvery = 10
	DefaultBound       = 3.0
)

var (
	ErrInvalidScenario = errors.New("config: invalid scenario")
	ErrUnknownPreset   = errors.New("config: unknown preset")
)

// Units selects physical scales for G. When all three are set, G is
// derived with physics.ScaledG and the explicit G field is ignored.
type Units struct {
	Mass   float64 `yaml:"mass,omitempty" json:"mass,omitempty"`
	Time   float64 `yaml:"time,omitempty" json:"time,omitempty"`
	Length float64 `yaml:"length,omitempty" json:"length,omitempty"`
}

func (u Units) set() bool {
	return u.Mass != 0 && u.Time != 0 && u.Length != 0
}

type Bounds struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	YMin float64 `yaml:"y_min" json:"y_min"`
	YMax float64 `yaml:"y_max" json:"y_max"`
}

func (b Bounds) Rect() vecmath.Rect {
	return vecmath.NewRect(b.XMin, b.XMax, b.YMin, b.YMax)
}

// Scenario is a complete simulation setup as stored in YAML.
type Scenario struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	G           float64 `yaml:"g" json:"g"`
	Units       Units   `yaml:"units,omitempty" json:"units,omitempty"`
	Dt          float64 `yaml:"dt" json:"dt"`
	Steps       int     `yaml:"steps" json:"steps"`
	SampleEvery int     `yaml:"sample_every" json:"sample_every"`
	Method      string  `yaml:"method" json:"method"`
	Ordering    string  `yaml:"ordering" json:"ordering"`
	Soften      bool    `yaml:"soften" json:"soften"`
	Workers     int     `yaml:"workers,omitempty" json:"workers,omitempty"`
	Bounds      Bounds  `yaml:"bounds" json:"bounds"`

	// AutoOrbit replaces the velocity of every body but the heaviest with
	// the velocity of a circular orbit around it.
	AutoOrbit bool               `yaml:"auto_orbit,omitempty" json:"auto_orbit,omitempty"`
	Bodies    []physics.BodySpec `yaml:"bodies" json:"bodies"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "custom",
		G:           sim.DefaultG,
		Dt:          sim.DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Method:      integrators.MethodLeapfrog.String(),
		Ordering:    sim.Synchronous.String(),
		Soften:      true,
		Workers:     1,
		Bounds:      Bounds{XMin: -DefaultBound, XMax: DefaultBound, YMin: -DefaultBound, YMax: DefaultBound},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings and every body. Errors wrap ErrInvalidScenario,
// integrators.ErrUnknownMethod or sim.ErrUnknownOrdering.
func (s *Scenario) Validate() error {
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidScenario, s.Dt)
	}
	if s.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidScenario, s.Steps)
	}
	if s.SampleEvery < 1 {
		return fmt.Errorf("%w: sample_every must be at least 1, got %d", ErrInvalidScenario, s.SampleEvery)
	}
	if s.Bounds.XMin >= s.Bounds.XMax || s.Bounds.YMin >= s.Bounds.YMax {
		return fmt.Errorf("%w: empty bounds %+v", ErrInvalidScenario, s.Bounds)
	}
	if _, err := integrators.ParseMethod(s.Method); err != nil {
		return err
	}
	if _, err := sim.ParseOrdering(s.Ordering); err != nil {
		return err
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidScenario)
	}
	for i, b := range s.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("%w: body %d (%s): mass must be positive, got %g", ErrInvalidScenario, i, b.Name, b.Mass)
		}
		if b.Radius < 0 {
			return fmt.Errorf("%w: body %d (%s): negative radius", ErrInvalidScenario, i, b.Name)
		}
		if b.Color != "" {
			if _, err := physics.ParseColor(b.Color); err != nil {
				return fmt.Errorf("%w: body %d: %v", ErrInvalidScenario, i, err)
			}
		}
	}
	return nil
}

// EffectiveG is the gravitational constant the scenario simulates with.
func (s *Scenario) EffectiveG() float64 {
	if s.Units.set() {
		return physics.ScaledG(s.Units.Mass, s.Units.Time, s.Units.Length)
	}
	return s.G
}

// Build validates the scenario and returns a simulation holding its bodies.
func (s *Scenario) Build() (*sim.Simulation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	method, _ := integrators.ParseMethod(s.Method)
	ordering, _ := sim.ParseOrdering(s.Ordering)

	g := s.EffectiveG()
	sm := sim.New(
		sim.WithG(g),
		sim.WithDt(s.Dt),
		sim.WithMethod(method),
		sim.WithOrdering(ordering),
		sim.WithSoften(s.Soften),
		sim.WithWorkers(max(s.Workers, 1)),
		sim.WithBounds(s.Bounds.Rect()),
	)

	specs := s.Bodies
	if s.AutoOrbit {
		specs = orbitAround(specs, g)
	}
	if _, err := sm.AddBodies(specs); err != nil {
		return nil, err
	}
	return sm, nil
}

func (s *Scenario) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		Steps:         s.Steps,
		SampleEvery:   s.SampleEvery,
		ValidateState: true,
	}
}

// Clone returns a deep copy.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies = append([]physics.BodySpec(nil), s.Bodies...)
	return &c
}

// orbitAround returns a copy of specs in which every body except the
// heaviest moves on a circular orbit around it.
func orbitAround(specs []physics.BodySpec, g float64) []physics.BodySpec {
	out := append([]physics.BodySpec(nil), specs...)
	if len(out) < 2 {
		return out
	}

	heaviest := 0
	for i, b := range out {
		if b.Mass > out[heaviest].Mass {
			heaviest = i
		}
	}
	c := out[heaviest]
	central := physics.NewBody(-1, c.Mass, c.Radius, physics.WithPosition(c.Position), physics.WithVelocity(c.Velocity))

	for i := range out {
		if i == heaviest || out[i].Static {
			continue
		}
		orbiter := physics.NewBody(-1, out[i].Mass, out[i].Radius, physics.WithPosition(out[i].Position))
		out[i].Velocity = physics.CircularVelocity(central, orbiter, g)
	}
	return out
}

// Normalise lower-cases the method and ordering names so saved files are
// stable regardless of how the flags were typed.
func (s *Scenario) Normalise() {
	s.Method = strings.ToLower(strings.TrimSpace(s.Method))
	s.Ordering = strings.ToLower(strings.TrimSpace(s.Ordering))
}
