package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

var ErrMalformed = errors.New("storage: malformed states file")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// BodyInfo is the static description of one recorded body.
type BodyInfo struct {
	ID     int     `json:"id"`
	Name   string  `json:"name,omitempty"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Static bool    `json:"static,omitempty"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	StepsTaken  int                `json:"steps_taken"`
	SampleEvery int                `json:"sample_every"`
	Method      string             `json:"method"`
	Ordering    string             `json:"ordering"`
	Soften      bool               `json:"soften"`
	Bodies      []BodyInfo         `json:"bodies"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

// Save writes meta and the frames of result under a fresh run id, which is
// returned. ID, Timestamp and the result-derived fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Scenario, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.StepsTaken = result.StepsTaken
	for _, e := range result.Errors {
		meta.Errors = append(meta.Errors, e.Error())
	}

	// JSON has no NaN or Inf; a diverged run keeps its finite values only.
	if finite(result.EnergyDrift) {
		meta.EnergyDrift = result.EnergyDrift
	} else {
		meta.Errors = append(meta.Errors, "energy_drift: not finite")
	}
	meta.Metrics = make(map[string]float64, len(result.Metrics))
	for name, v := range result.Metrics {
		if !finite(v) {
			meta.Errors = append(meta.Errors, name+": not finite")
			continue
		}
		meta.Metrics[name] = v
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeStates stores one row per frame: step, time, energy, then x, y, vx,
// vy for every body in id order.
func writeStates(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"step", "time", "energy"}
	if len(frames) > 0 {
		for _, b := range frames[0].Bodies {
			for _, col := range []string{"x", "y", "vx", "vy"} {
				header = append(header, fmt.Sprintf("b%d_%s", b.ID, col))
			}
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := []string{strconv.Itoa(fr.Step), formatFloat(fr.Time), formatFloat(fr.Energy)}
		for _, b := range fr.Bodies {
			row = append(row,
				formatFloat(b.Position.X), formatFloat(b.Position.Y),
				formatFloat(b.Velocity.X), formatFloat(b.Velocity.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", metaPath, err)
	}

	return &meta, nil
}

// LoadFrames reads back the frames written by Save.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(s.statesPath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}

	ids, err := bodyIDs(records[0])
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		fr, err := parseFrame(record, ids)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, line+1, err)
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func (s *Store) statesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "states.csv")
}

func bodyIDs(header []string) ([]int, error) {
	if len(header) < 3 || (len(header)-3)%4 != 0 {
		return nil, fmt.Errorf("%w: header has %d columns", ErrMalformed, len(header))
	}
	ids := make([]int, 0, (len(header)-3)/4)
	for c := 3; c < len(header); c += 4 {
		name := strings.TrimSuffix(strings.TrimPrefix(header[c], "b"), "_x")
		id, err := strconv.Atoi(name)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q", ErrMalformed, header[c])
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseFrame(record []string, ids []int) (sim.Frame, error) {
	var fr sim.Frame

	step, err := strconv.Atoi(record[0])
	if err != nil {
		return fr, err
	}
	vals := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
			return fr, err
		}
	}

	fr.Step = step
	fr.Time = vals[0]
	fr.Energy = vals[1]
	fr.Bodies = make([]sim.BodyState, len(ids))
	for i, id := range ids {
		v := vals[2+4*i:]
		fr.Bodies[i] = sim.BodyState{
			ID:       id,
			Position: vecmath.Vector2{X: v[0], Y: v[1]},
			Velocity: vecmath.Vector2{X: v[2], Y: v[3]},
		}
	}
	return fr, nil
}
