package sim

import (
	"fmt"
	"strings"
)

// Ordering controls which positions the force sums of one tick observe.
type Ordering int

const (
	// Synchronous evaluates every force of a tick from one snapshot:
	// pre-step positions for Euler and Taylor, half-drifted positions for
	// leapfrog. Results do not depend on insertion order.
	Synchronous Ordering = iota

	// Sequential advances bodies one at a time in id order; later bodies
	// see the already advanced positions of earlier ones.
	Sequential
)

func (o Ordering) String() string {
	switch o {
	case Synchronous:
		return "synchronous"
	case Sequential:
		return "sequential"
	}
	return fmt.Sprintf("ordering(%d)", int(o))
}

func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "synchronous", "sync":
		return Synchronous, nil
	case "sequential", "seq":
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrdering, s)
}

func (o Ordering) MarshalText() ([]byte, error) {
	if o != Synchronous && o != Sequential {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrdering, int(o))
	}
	return []byte(o.String()), nil
}

func (o *Ordering) UnmarshalText(text []byte) error {
	parsed, err := ParseOrdering(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
