package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Frames   []sim.Frame `json:"frames"`
}

// ExportJSON writes a stored run's metadata and frames as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Metadata: *meta, Frames: frames})
}

// ExportCSV copies a stored run's states file to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	f, err := os.Open(s.statesPath(runID))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
