package integrators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/gravsim/internal/vecmath"
)

var ErrUnknownMethod = errors.New("integrators: unknown method")

// AccelFunc returns the acceleration on the body being stepped as if it sat at pos.
type AccelFunc func(pos vecmath.Vector2) vecmath.Vector2

// Integrator advances one body by one time step.
type Integrator interface {
	// Predict returns the position at which Step will evaluate forces.
	Predict(p, v vecmath.Vector2, dt float64) vecmath.Vector2
	// Step returns the new position and velocity, and the acceleration used.
	Step(p, v vecmath.Vector2, dt float64, accel AccelFunc) (pos, vel, acc vecmath.Vector2)
}

// Method selects an integration scheme. The zero value is MethodLeapfrog.
type Method int

const (
	MethodLeapfrog Method = iota
	MethodEuler
	MethodTaylor
)

var methodNames = map[Method]string{
	MethodLeapfrog: "leapfrog",
	MethodEuler:    "euler",
	MethodTaylor:   "taylor",
}

// Methods lists every scheme in a stable order.
func Methods() []Method {
	return []Method{MethodLeapfrog, MethodEuler, MethodTaylor}
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod accepts a method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Integrator returns the stepper for m. Unknown values fall back to leapfrog.
func (m Method) Integrator() Integrator {
	switch m {
	case MethodEuler:
		return Euler{}
	case MethodTaylor:
		return Taylor{}
	default:
		return Leapfrog{}
	}
}
