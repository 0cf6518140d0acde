package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Step: 0, Time: 0, Energy: -0.5, Bodies: []sim.BodyState{
				{ID: 0, Position: vecmath.Vector2{X: -0.5}, Velocity: vecmath.Vector2{Y: -0.7071067811865476}},
				{ID: 1, Position: vecmath.Vector2{X: 0.5}, Velocity: vecmath.Vector2{Y: 0.7071067811865476}},
			}},
			{Step: 10, Time: 0.1, Energy: -0.4999999, Bodies: []sim.BodyState{
				{ID: 0, Position: vecmath.Vector2{X: -0.49, Y: -0.07}, Velocity: vecmath.Vector2{X: 0.05, Y: -0.7}},
				{ID: 1, Position: vecmath.Vector2{X: 0.49, Y: 0.07}, Velocity: vecmath.Vector2{X: -0.05, Y: 0.7}},
			}},
		},
		Metrics:     map[string]float64{"energy_drift": 2e-7},
		EnergyDrift: 2e-7,
		StepsTaken:  10,
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Scenario: "binary",
		G:        1,
		Dt:       0.01,
		Steps:    10,
		Method:   "leapfrog",
		Ordering: "synchronous",
		Bodies: []BodyInfo{
			{ID: 0, Name: "a", Mass: 1, Radius: 0.05, Color: "#ff6347"},
			{ID: 1, Name: "b", Mass: 1, Radius: 0.05, Color: "#00ced1"},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := testResult()
	runID, err := st.Save(testMeta(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "binary_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.StepsTaken != 10 || meta.EnergyDrift != 2e-7 {
		t.Errorf("result fields not recorded: %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 2e-7 {
		t.Errorf("expected metric 2e-7, got %v", meta.Metrics["energy_drift"])
	}
	if diff := cmp.Diff(testMeta().Bodies, meta.Bodies); diff != "" {
		t.Errorf("bodies mismatch (-want +got):\n%s", diff)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if diff := cmp.Diff(result.Frames, frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreRecordsErrors(t *testing.T) {
	st := New(t.TempDir())
	result := testResult()
	result.Errors = []error{&sim.SimError{Step: 3, BodyID: 1, Wrapped: sim.ErrUnstable}}

	runID, err := st.Save(testMeta(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, _ := st.Load(runID)
	if len(meta.Errors) != 1 || !strings.Contains(meta.Errors[0], "diverged") {
		t.Errorf("errors not recorded: %v", meta.Errors)
	}
}

func TestStoreDivergedRun(t *testing.T) {
	st := New(t.TempDir())
	result := testResult()
	result.EnergyDrift = math.NaN()
	result.Metrics["stability"] = math.Inf(1)

	runID, err := st.Save(testMeta(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}

	if meta.EnergyDrift != 0 {
		t.Errorf("EnergyDrift = %v, want 0", meta.EnergyDrift)
	}
	if diff := cmp.Diff(map[string]float64{"energy_drift": 2e-7}, meta.Metrics); diff != "" {
		t.Errorf("metrics (-want +got):\n%s", diff)
	}
	want := []string{"energy_drift: not finite", "stability: not finite"}
	if diff := cmp.Diff(want, meta.Errors); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	os.Mkdir(filepath.Join(tmpDir, "junk"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "states.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(runID, &buf); err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	want := "step,time,energy,b0_x,b0_y,b0_vx,b0_vy,b1_x,b1_y,b1_vx,b1_vy"
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export json failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Metadata.ID != runID || len(data.Frames) != 2 {
		t.Errorf("unexpected export: id %s, %d frames", data.Metadata.ID, len(data.Frames))
	}
	if data.Frames[1].Bodies[1].Position.Y != 0.07 {
		t.Errorf("position not exported: %+v", data.Frames[1].Bodies[1])
	}
}

func TestExportJSONCoincidentBodies(t *testing.T) {
	s := sim.New()
	s.AddBody(1, 0.1, physics.WithPosition(vecmath.Vector2{X: 1}))
	s.AddBody(1, 0.1, physics.WithPosition(vecmath.Vector2{X: 1}))

	result, err := s.Run(context.Background(), sim.RunConfig{Steps: 10, SampleEvery: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st := New(t.TempDir())
	runID, err := st.Save(testMeta(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Frames) != 11 || data.Frames[10].Energy != 0 {
		t.Errorf("unexpected export: %+v", data.Frames)
	}
}

func TestLoadFramesMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runDir := filepath.Join(tmpDir, "broken")
	os.MkdirAll(runDir, 0755)
	os.WriteFile(filepath.Join(runDir, "states.csv"), []byte("step,time,energy,b0_x\n0,0,0,1\n"), 0644)

	if _, err := st.LoadFrames("broken"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}

	if _, err := st.LoadFrames("missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
