package physics

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// DefaultColor is white.
var DefaultColor = vecmath.Vector3{X: 1, Y: 1, Z: 1}

// Body is a point mass. The id is fixed at construction; everything else
// except the initial state may change as the simulation advances.
type Body struct {
	id     int
	mass   float64
	radius float64
	static bool
	color  vecmath.Vector3

	position     vecmath.Vector2
	velocity     vecmath.Vector2
	acceleration vecmath.Vector2

	initialPosition vecmath.Vector2
	initialVelocity vecmath.Vector2
}

type Option func(*Body)

func WithPosition(p vecmath.Vector2) Option {
	return func(b *Body) { b.position = p }
}

func WithVelocity(v vecmath.Vector2) Option {
	return func(b *Body) { b.velocity = v }
}

// WithColor sets the RGB color, components in [0, 1].
func WithColor(c vecmath.Vector3) Option {
	return func(b *Body) { b.color = c }
}

// AsStatic pins the body in place; it still attracts the others.
func AsStatic() Option {
	return func(b *Body) { b.static = true }
}

// NewBody builds a body at rest at the origin unless options say otherwise.
// The position and velocity after options are recorded as the initial state.
func NewBody(id int, mass, radius float64, opts ...Option) Body {
	b := Body{
		id:     id,
		mass:   mass,
		radius: radius,
		color:  DefaultColor,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.initialPosition = b.position
	b.initialVelocity = b.velocity
	return b
}

func (b Body) ID() int                          { return b.id }
func (b Body) Mass() float64                    { return b.mass }
func (b Body) Radius() float64                  { return b.radius }
func (b Body) Static() bool                     { return b.static }
func (b Body) Color() vecmath.Vector3           { return b.color }
func (b Body) Position() vecmath.Vector2        { return b.position }
func (b Body) Velocity() vecmath.Vector2        { return b.velocity }
func (b Body) Acceleration() vecmath.Vector2    { return b.acceleration }
func (b Body) InitialPosition() vecmath.Vector2 { return b.initialPosition }
func (b Body) InitialVelocity() vecmath.Vector2 { return b.initialVelocity }

func (b *Body) SetPosition(p vecmath.Vector2)     { b.position = p }
func (b *Body) SetVelocity(v vecmath.Vector2)     { b.velocity = v }
func (b *Body) SetAcceleration(a vecmath.Vector2) { b.acceleration = a }

// Reset restores the initial position and velocity. Acceleration is kept.
func (b *Body) Reset() {
	b.position = b.initialPosition
	b.velocity = b.initialVelocity
}

// IsFinite reports whether position and velocity hold no NaN or Inf.
func (b Body) IsFinite() bool {
	return b.position.IsFinite() && b.velocity.IsFinite()
}

// KineticEnergy returns ½·m·|v|².
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.velocity.NormSquared()
}

// Colorful returns the body color for rendering.
func (b Body) Colorful() colorful.Color {
	return colorful.Color{R: b.color.X, G: b.color.Y, B: b.color.Z}.Clamped()
}

func (b Body) String() string {
	return fmt.Sprintf("body %d (m=%g, p=(%.4g, %.4g), v=(%.4g, %.4g))",
		b.id, b.mass, b.position.X, b.position.Y, b.velocity.X, b.velocity.Y)
}

// BodySpec describes a body before it receives an id.
type BodySpec struct {
	Name     string          `yaml:"name,omitempty" json:"name,omitempty"`
	Mass     float64         `yaml:"mass" json:"mass"`
	Radius   float64         `yaml:"radius" json:"radius"`
	Position vecmath.Vector2 `yaml:"position" json:"position"`
	Velocity vecmath.Vector2 `yaml:"velocity" json:"velocity"`
	Color    string          `yaml:"color,omitempty" json:"color,omitempty"`
	Static   bool            `yaml:"static,omitempty" json:"static,omitempty"`
}

// Options converts the spec into body options. Color must be empty or a
// #rrggbb hex string.
func (s BodySpec) Options() ([]Option, error) {
	opts := []Option{WithPosition(s.Position), WithVelocity(s.Velocity)}
	if s.Color != "" {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithColor(c))
	}
	if s.Static {
		opts = append(opts, AsStatic())
	}
	return opts, nil
}

// ParseColor parses a #rrggbb hex string into RGB components in [0, 1].
func ParseColor(hex string) (vecmath.Vector3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return vecmath.Vector3{}, fmt.Errorf("physics: color %q: %w", hex, err)
	}
	return vecmath.Vector3{X: c.R, Y: c.G, Z: c.B}, nil
}

// HexColor formats RGB components as #rrggbb.
func HexColor(c vecmath.Vector3) string {
	return colorful.Color{R: c.X, G: c.Y, B: c.Z}.Clamped().Hex()
}
