package sim

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/vecmath"
)

type countingMetric struct {
	n int
}

func (m *countingMetric) Name() string         { return "count" }
func (m *countingMetric) Observe(_ *Simulation) { m.n++ }
func (m *countingMetric) Value() float64       { return float64(m.n) }
func (m *countingMetric) Reset()               { m.n = 0 }

func TestRun(t *testing.T) {
	s := newBinary()
	s.SetDt(0.01)

	metric := &countingMetric{n: 42}
	s.AddMetric(metric)

	observed := 0
	s.AddObserver(ObserverFunc(func(*Simulation) { observed++ }))

	res, err := s.Run(context.Background(), RunConfig{Steps: 100, SampleEvery: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.StepsTaken != 100 {
		t.Errorf("StepsTaken = %d, want 100", res.StepsTaken)
	}
	if len(res.Frames) != 11 {
		t.Fatalf("len(Frames) = %d, want 11", len(res.Frames))
	}
	if res.Frames[0].Step != 0 || res.Frames[10].Step != 100 {
		t.Errorf("frame steps = %d..%d, want 0..100", res.Frames[0].Step, res.Frames[10].Step)
	}
	if math.Abs(res.Frames[10].Time-1.0) > 1e-12 {
		t.Errorf("last frame time = %v, want 1", res.Frames[10].Time)
	}
	if len(res.Frames[3].Bodies) != 2 {
		t.Errorf("frame holds %d bodies, want 2", len(res.Frames[3].Bodies))
	}
	if res.Metrics["count"] != 101 {
		t.Errorf("metric = %v, want 101 (reset, initial state, 100 ticks)", res.Metrics["count"])
	}
	if observed != 100 {
		t.Errorf("observer called %d times, want 100", observed)
	}
	if res.EnergyDrift > 1e-6 {
		t.Errorf("EnergyDrift = %v, want < 1e-6", res.EnergyDrift)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %v, want none", res.Errors)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero steps", RunConfig{Steps: 0, SampleEvery: 1}},
		{"negative steps", RunConfig{Steps: -5, SampleEvery: 1}},
		{"zero sample interval", RunConfig{Steps: 10, SampleEvery: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBinary().Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRunPaused(t *testing.T) {
	s := newBinary()
	s.Pause()
	if _, err := s.Run(context.Background(), DefaultRunConfig()); !errors.Is(err, ErrPaused) {
		t.Errorf("Run() error = %v, want ErrPaused", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newBinary().Run(ctx, DefaultRunConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if res == nil || res.StepsTaken != 0 || len(res.Frames) != 1 {
		t.Errorf("partial result = %+v, want initial frame only", res)
	}
}

func TestRunCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newBinary()
	s.SetDt(0.01)
	s.AddMetric(&countingMetric{})
	s.AddObserver(ObserverFunc(func(s *Simulation) {
		if s.Steps() == 5 {
			cancel()
		}
	}))

	e0 := s.Energy()
	res, err := s.Run(ctx, RunConfig{Steps: 100, SampleEvery: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if res.StepsTaken != 5 {
		t.Errorf("StepsTaken = %d, want 5", res.StepsTaken)
	}
	if res.Metrics["count"] != 6 {
		t.Errorf("metric = %v, want 6 on an interrupted run", res.Metrics["count"])
	}

	want := math.Abs(s.Energy()-e0) / math.Abs(e0)
	if res.EnergyDrift != want {
		t.Errorf("EnergyDrift = %v, want %v", res.EnergyDrift, want)
	}
}

func TestRunCoincidentBodies(t *testing.T) {
	s := New()
	s.AddBody(1, 0.1, physics.WithPosition(vecmath.Vector2{X: 1}))
	s.AddBody(1, 0.1, physics.WithPosition(vecmath.Vector2{X: 1}))

	res, err := s.Run(context.Background(), RunConfig{Steps: 10, SampleEvery: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, fr := range res.Frames {
		if fr.Energy != 0 {
			t.Fatalf("step %d energy = %v, want 0", fr.Step, fr.Energy)
		}
	}
	if res.EnergyDrift != 0 || len(res.Errors) != 0 {
		t.Errorf("drift = %v, errors = %v, want 0 and none", res.EnergyDrift, res.Errors)
	}
}

func TestRunDivergence(t *testing.T) {
	s := New()
	s.AddBody(math.NaN(), 1)
	s.AddBody(1, 1, physics.WithPosition(vecmath.Vector2{X: 1}))

	res, err := s.Run(context.Background(), RunConfig{Steps: 50, SampleEvery: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.StepsTaken != 1 {
		t.Errorf("StepsTaken = %d, want 1", res.StepsTaken)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", res.Errors)
	}

	var simErr *SimError
	if !errors.As(res.Errors[0], &simErr) {
		t.Fatalf("error %T is not *SimError", res.Errors[0])
	}
	if simErr.Step != 1 || simErr.BodyID != 0 {
		t.Errorf("SimError = %+v, want step 1 body 0", simErr)
	}
	if !errors.Is(res.Errors[0], ErrUnstable) {
		t.Error("SimError does not wrap ErrUnstable")
	}
}

func TestSimErrorMessage(t *testing.T) {
	err := &SimError{Step: 3, Time: 0.5, BodyID: 2, Wrapped: ErrUnstable}
	want := "step 3 (t=0.5000) body 2: sim: body state diverged (NaN or Inf)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		in      string
		want    Ordering
		wantErr bool
	}{
		{"synchronous", Synchronous, false},
		{"SYNC", Synchronous, false},
		{" sequential ", Sequential, false},
		{"seq", Sequential, false},
		{"random", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrdering(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrdering(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownOrdering) {
				t.Errorf("error = %v, want ErrUnknownOrdering", err)
			}
			if got != tt.want {
				t.Errorf("ParseOrdering(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	var o Ordering
	if err := o.UnmarshalText([]byte("sequential")); err != nil || o != Sequential {
		t.Errorf("UnmarshalText = %v, %v", o, err)
	}
	if _, err := Ordering(9).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown ordering")
	}
}

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8} {
		s := New(WithWorkers(workers))
		const n = 200
		var seen [n]int32
		s.forEach(n, func(i int) { atomic.AddInt32(&seen[i], 1) })
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, c)
			}
		}
	}
}

func TestRunAll(t *testing.T) {
	sims := []*Simulation{newBinary(), newBinary(), newBinary()}
	cfg := RunConfig{Steps: 20, SampleEvery: 5}

	results, err := RunAll(context.Background(), sims, cfg)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, r := range results {
		if r.StepsTaken != 20 || len(r.Frames) != 5 {
			t.Errorf("result %d: steps %d frames %d", i, r.StepsTaken, len(r.Frames))
		}
	}

	sims[1].Pause()
	if _, err := RunAll(context.Background(), sims, cfg); !errors.Is(err, ErrPaused) {
		t.Errorf("RunAll() error = %v, want ErrPaused", err)
	}
}
