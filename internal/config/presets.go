package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/vecmath"
)

func v2(x, y float64) vecmath.Vector2 { return vecmath.Vector2{X: x, Y: y} }

func preset(name, description string, fn func(s *Scenario)) *Scenario {
	s := DefaultScenario()
	s.Name = name
	s.Description = description
	fn(s)
	return s
}

var Presets = map[string]*Scenario{
	"orbit": preset("orbit", "test mass on a circular orbit around a static heavy body", func(s *Scenario) {
		s.Soften = false
		s.Steps = 5000
		s.Bodies = []physics.BodySpec{
			{Name: "sun", Mass: 1000, Radius: 0.1, Color: "#ffd700", Static: true},
			{Name: "planet", Mass: 1, Radius: 0.03, Position: v2(1, 0), Velocity: v2(0, math.Sqrt(1000)), Color: "#4169e1"},
		}
	}),
	"binary": preset("binary", "two equal masses in a circular mutual orbit", func(s *Scenario) {
		v := math.Sqrt(0.5)
		s.Soften = false
		s.Steps = 20000
		s.Bounds = Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
		s.Bodies = []physics.BodySpec{
			{Name: "a", Mass: 1, Radius: 0.05, Position: v2(-0.5, 0), Velocity: v2(0, -v), Color: "#ff6347"},
			{Name: "b", Mass: 1, Radius: 0.05, Position: v2(0.5, 0), Velocity: v2(0, v), Color: "#00ced1"},
		}
	}),
	"figure8": preset("figure8", "three equal masses chasing each other along a figure eight", func(s *Scenario) {
		s.Soften = false
		s.Steps = 6326
		s.Bounds = Bounds{XMin: -1.5, XMax: 1.5, YMin: -1, YMax: 1}
		s.Bodies = []physics.BodySpec{
			{Name: "a", Mass: 1, Radius: 0.03, Position: v2(-0.97000436, 0.24308753), Velocity: v2(0.466203685, 0.43236573), Color: "#ff6347"},
			{Name: "b", Mass: 1, Radius: 0.03, Position: v2(0.97000436, -0.24308753), Velocity: v2(0.466203685, 0.43236573), Color: "#7cfc00"},
			{Name: "c", Mass: 1, Radius: 0.03, Position: v2(0, 0), Velocity: v2(-0.93240737, -0.86473146), Color: "#1e90ff"},
		}
	}),
	"solar": preset("solar", "sun and inner planets in solar mass, year and astronomical unit", func(s *Scenario) {
		s.G = 0
		s.Units = Units{Mass: physics.SolarMass, Time: physics.Year, Length: physics.AstronomicalUnit}
		s.Dt = 0.0005
		s.Steps = 4000
		s.Soften = false
		s.AutoOrbit = true
		s.Bounds = Bounds{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
		s.Bodies = []physics.BodySpec{
			{Name: "sun", Mass: 1, Radius: 0.05, Color: "#ffd700"},
			{Name: "mercury", Mass: 1.66e-7, Radius: 0.01, Position: v2(0.387, 0), Color: "#a9a9a9"},
			{Name: "venus", Mass: 2.45e-6, Radius: 0.02, Position: v2(0, 0.723), Color: "#f5deb3"},
			{Name: "earth", Mass: 3.0e-6, Radius: 0.02, Position: v2(-1, 0), Color: "#1e90ff"},
			{Name: "mars", Mass: 3.2e-7, Radius: 0.015, Position: v2(0, -1.524), Color: "#cd5c5c"},
		}
	}),
	"cluster": preset("cluster", "ring of light bodies orbiting a heavy core", func(s *Scenario) {
		s.AutoOrbit = true
		s.Steps = 10000
		s.Workers = 4
		s.Bodies = ring(48, 100)
	}),
}

// ring lays out n light bodies on three interleaved rings around a core.
func ring(n int, coreMass float64) []physics.BodySpec {
	bodies := []physics.BodySpec{{Name: "core", Mass: coreMass, Radius: 0.1, Color: "#ffffff"}}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		r := 1 + 0.4*float64(i%3)
		hue := 360 * float64(i) / float64(n)
		bodies = append(bodies, physics.BodySpec{
			Name:     fmt.Sprintf("b%02d", i),
			Mass:     0.01,
			Radius:   0.02,
			Position: v2(r*math.Cos(angle), r*math.Sin(angle)),
			Color:    colorful.Hsv(hue, 0.7, 0.95).Clamped().Hex(),
		})
	}
	return bodies
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Scenario, error) {
	sc, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return sc.Clone(), nil
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
