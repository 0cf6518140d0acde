package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

func vec(x, y float64) vecmath.Vector2 { return vecmath.Vector2{X: x, Y: y} }

// binary places two unit masses in a circular mutual orbit of separation 1.
func binary(opts ...sim.Option) *sim.Simulation {
	s := sim.New(append([]sim.Option{sim.WithSoften(false), sim.WithDt(0.01)}, opts...)...)
	v := math.Sqrt(0.5)
	s.AddBody(1, 0.05, physics.WithPosition(vec(-0.5, 0)), physics.WithVelocity(vec(0, -v)))
	s.AddBody(1, 0.05, physics.WithPosition(vec(0.5, 0)), physics.WithVelocity(vec(0, v)))
	return s
}

// cluster builds n bodies on a ring with small tangential velocities.
func cluster(n int, opts ...sim.Option) *sim.Simulation {
	s := sim.New(opts...)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		r := 1 + 0.1*float64(i%3)
		s.AddBody(1+float64(i%4), 0.02,
			physics.WithPosition(vec(r*math.Cos(angle), r*math.Sin(angle))),
			physics.WithVelocity(vec(-0.5*math.Sin(angle), 0.5*math.Cos(angle))),
		)
	}
	return s
}

// maxDrift steps s and returns the largest relative energy error seen.
func maxDrift(s *sim.Simulation, steps int) float64 {
	e0 := s.Energy()
	worst := 0.0
	for i := 0; i < steps; i++ {
		s.Update()
		worst = math.Max(worst, math.Abs(s.Energy()-e0)/math.Abs(e0))
	}
	return worst
}

var _ = Describe("Simulation", func() {
	Describe("defaults", func() {
		It("starts running with leapfrog, softening and synchronous ordering", func() {
			s := sim.New()
			Expect(s.IsPaused()).To(BeFalse())
			Expect(s.G()).To(Equal(sim.DefaultG))
			Expect(s.Dt()).To(Equal(sim.DefaultDt))
			Expect(s.Soften()).To(BeTrue())
			Expect(s.Method()).To(Equal(integrators.MethodLeapfrog))
			Expect(s.Ordering()).To(Equal(sim.Synchronous))
			Expect(s.Bounds()).To(Equal(sim.DefaultBounds))
			Expect(s.BodyCount()).To(BeZero())
		})
	})

	Describe("body registration", func() {
		It("assigns ids 0..k-1 in insertion order", func() {
			s := sim.New()
			for i := 0; i < 5; i++ {
				Expect(s.AddBody(1, 1)).To(Equal(i))
			}
			Expect(s.BodyCount()).To(Equal(5))
			for i, b := range s.Bodies() {
				Expect(b.ID()).To(Equal(i))
			}
		})

		It("continues the id sequence across AddBodies", func() {
			s := sim.New()
			s.AddBody(1, 1)
			ids, err := s.AddBodies([]physics.BodySpec{
				{Mass: 2, Radius: 1, Position: vec(1, 0)},
				{Mass: 3, Radius: 1, Position: vec(2, 0), Color: "#00ff00", Static: true},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]int{1, 2}))
			Expect(s.BodyCount()).To(Equal(3))

			b, ok := s.Body(2)
			Expect(ok).To(BeTrue())
			Expect(b.Static()).To(BeTrue())
			Expect(b.Mass()).To(Equal(3.0))
			Expect(b.InitialPosition()).To(Equal(vec(2, 0)))
		})

		It("adds nothing when a spec is invalid", func() {
			s := sim.New()
			_, err := s.AddBodies([]physics.BodySpec{{Mass: 1}, {Mass: 1, Color: "nope"}})
			Expect(err).To(HaveOccurred())
			Expect(s.BodyCount()).To(BeZero())
		})

		It("defaults position and velocity to zero", func() {
			s := sim.New()
			s.AddBody(1, 1)
			b := s.Bodies()[0]
			Expect(b.Position()).To(Equal(vecmath.Vector2{}))
			Expect(b.Velocity()).To(Equal(vecmath.Vector2{}))
			Expect(b.Static()).To(BeFalse())
		})

		It("hands out copies", func() {
			s := binary()
			bodies := s.Bodies()
			bodies[0].SetPosition(vec(100, 100))
			Expect(s.Bodies()[0].Position()).To(Equal(vec(-0.5, 0)))
		})
	})

	Describe("static bodies", func() {
		It("never move regardless of the pull on them", func() {
			s := sim.New(sim.WithDt(0.01))
			s.AddBody(1, 1, physics.WithPosition(vec(0, 0)), physics.WithVelocity(vec(3, 1)), physics.AsStatic())
			s.AddBody(1e6, 1, physics.WithPosition(vec(0.1, 0)))

			for i := 0; i < 500; i++ {
				s.Update()
			}
			b := s.Bodies()[0]
			Expect(b.Position()).To(Equal(vec(0, 0)))
			Expect(b.Velocity()).To(Equal(vec(3, 1)))
		})
	})

	Describe("reset", func() {
		It("restores the values supplied at insertion", func() {
			s := cluster(6)
			before := s.Bodies()
			for i := 0; i < 250; i++ {
				s.Update()
			}
			Expect(s.Bodies()[0].Position()).NotTo(Equal(before[0].Position()))

			s.Reset()
			after := s.Bodies()
			for i := range before {
				Expect(after[i].Position()).To(Equal(before[i].Position()))
				Expect(after[i].Velocity()).To(Equal(before[i].Velocity()))
			}
			Expect(s.Steps()).To(BeZero())
			Expect(s.Time()).To(BeZero())

			s.Reset()
			Expect(s.Bodies()).To(Equal(after))
		})

		It("keeps pause state and time step", func() {
			s := binary(sim.WithDt(0.02))
			s.Pause()
			s.Reset()
			Expect(s.IsPaused()).To(BeTrue())
			Expect(s.Dt()).To(Equal(0.02))
		})
	})

	Describe("pause", func() {
		It("gates Update", func() {
			s := cluster(4)
			s.Pause()
			Expect(s.IsPaused()).To(BeTrue())

			before := s.Bodies()
			for i := 0; i < 10; i++ {
				s.Update()
			}
			Expect(s.Bodies()).To(Equal(before))
			Expect(s.Steps()).To(BeZero())
		})

		It("toggles back after two calls", func() {
			s := sim.New()
			s.Pause()
			s.Pause()
			Expect(s.IsPaused()).To(BeFalse())
		})
	})

	Describe("gravitational constant", func() {
		It("derives G from unit scales", func() {
			s := sim.New()
			s.SetScaledG(physics.SolarMass, physics.Year, physics.AstronomicalUnit)
			Expect(s.G()).To(BeNumerically("~", 4*math.Pi*math.Pi, 0.05))

			s.SetG(2.5)
			Expect(s.G()).To(Equal(2.5))
		})
	})

	Describe("integration", func() {
		It("keeps a test mass on a circular orbit around a static mass", func() {
			s := sim.New(sim.WithG(1), sim.WithDt(0.001), sim.WithSoften(false))
			s.AddBody(1000, 0.1, physics.AsStatic())
			s.AddBody(1, 0.01, physics.WithPosition(vec(1, 0)), physics.WithVelocity(vec(0, math.Sqrt(1000))))

			for i := 0; i < 1000; i++ {
				s.Update()
				r := s.Bodies()[1].Position().Norm()
				Expect(r).To(BeNumerically("~", 1.0, 0.01))
			}
		})

		It("conserves energy of a binary better with leapfrog than with euler", func() {
			period := 2 * math.Pi * 0.5 / math.Sqrt(0.5)
			steps := int(10 * period / 0.01)

			leapfrog := maxDrift(binary(sim.WithMethod(integrators.MethodLeapfrog)), steps)
			euler := maxDrift(binary(sim.WithMethod(integrators.MethodEuler)), steps)

			Expect(leapfrog).To(BeNumerically("<", 1e-6))
			Expect(euler).To(BeNumerically(">", 10*leapfrog))
		})

		It("caches the acceleration for every method", func() {
			for _, m := range integrators.Methods() {
				s := binary(sim.WithMethod(m))
				s.Update()
				for _, b := range s.Bodies() {
					Expect(b.Acceleration().Norm()).To(BeNumerically(">", 0), "method %v", m)
				}
			}
		})

		It("conserves momentum of an isolated system", func() {
			s := cluster(8, sim.WithDt(0.001))
			p0 := s.Momentum()
			for i := 0; i < 200; i++ {
				s.Update()
			}
			p := s.Momentum()
			Expect(p.X).To(BeNumerically("~", p0.X, 1e-9))
			Expect(p.Y).To(BeNumerically("~", p0.Y, 1e-9))
		})

		It("advances step count and time", func() {
			s := binary()
			s.Update()
			s.Update()
			Expect(s.Steps()).To(Equal(2))
			Expect(s.Time()).To(BeNumerically("~", 0.02, 1e-15))
		})
	})

	Describe("ordering", func() {
		It("is insertion-order independent when synchronous", func() {
			forward := cluster(5)
			bodies := forward.Bodies()

			reversed := sim.New()
			for i := len(bodies) - 1; i >= 0; i-- {
				b := bodies[i]
				reversed.AddBody(b.Mass(), b.Radius(), physics.WithPosition(b.Position()), physics.WithVelocity(b.Velocity()))
			}

			for i := 0; i < 50; i++ {
				forward.Update()
				reversed.Update()
			}

			f := forward.Bodies()
			r := reversed.Bodies()
			for i := range f {
				mirror := r[len(r)-1-i]
				Expect(mirror.Position().X).To(BeNumerically("~", f[i].Position().X, 1e-12))
				Expect(mirror.Position().Y).To(BeNumerically("~", f[i].Position().Y, 1e-12))
			}
		})

		It("lets later bodies see earlier updates when sequential", func() {
			s := binary(sim.WithOrdering(sim.Sequential), sim.WithDt(0.1))
			b0, b1 := s.Bodies()[0], s.Bodies()[1]
			s.Update()

			dt := 0.1
			step := func(self, other physics.Body) (vecmath.Vector2, vecmath.Vector2) {
				half := self.Position().Add(self.Velocity().Scale(0.5 * dt))
				a := self.AccelerationFrom(other, half, 1, false)
				v := self.Velocity().Add(a.Scale(dt))
				return half.Add(v.Scale(0.5 * dt)), v
			}

			p0, v0 := step(b0, b1)
			moved := physics.NewBody(b0.ID(), b0.Mass(), b0.Radius(), physics.WithPosition(p0), physics.WithVelocity(v0))
			p1, v1 := step(b1, moved)

			got := s.Bodies()
			Expect(got[0].Position()).To(Equal(p0))
			Expect(got[0].Velocity()).To(Equal(v0))
			Expect(got[1].Position()).To(Equal(p1))
			Expect(got[1].Velocity()).To(Equal(v1))
		})

		It("gives bit-identical results with worker fan-out", func() {
			serial := cluster(64, sim.WithWorkers(1))
			parallel := cluster(64, sim.WithWorkers(4))
			for i := 0; i < 20; i++ {
				serial.Update()
				parallel.Update()
			}
			Expect(parallel.Bodies()).To(Equal(serial.Bodies()))
		})
	})
})
