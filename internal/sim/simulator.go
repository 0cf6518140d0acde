package sim

import (
	"context"
	"math"
)

// Run advances the simulation cfg.Steps ticks, sampling a Frame every
// cfg.SampleEvery ticks and feeding the registered metrics and observers.
// The initial state is always the first frame and the first metric
// observation. Cancelling ctx stops the run between ticks and returns the
// partial result, with drift and metrics filled in, alongside ctx.Err().
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if s.paused {
		return nil, ErrPaused
	}

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Steps/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s)
	}

	result.Frames = append(result.Frames, s.Frame())
	initialEnergy := s.Energy()

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy)
			return result, ctx.Err()
		default:
		}

		s.Update()
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s)
		}
		for _, obs := range s.observers {
			obs.OnStep(s)
		}

		if cfg.ValidateState {
			if id, diverged := s.firstDiverged(); diverged {
				err := &SimError{Step: s.steps, Time: s.time, BodyID: id, Wrapped: ErrUnstable}
				result.Errors = append(result.Errors, err)
				break
			}
		}

		if (i+1)%cfg.SampleEvery == 0 {
			result.Frames = append(result.Frames, s.Frame())
		}
	}

	s.finish(result, initialEnergy)
	return result, nil
}

// finish records the final energy drift and metric values.
func (s *Simulation) finish(result *Result, initialEnergy float64) {
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
