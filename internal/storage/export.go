package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/softgrid/internal/softbody"
)

// ExportData is the flat JSON shape consumed by external tooling.
type ExportData struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Frames    int                `json:"frames"`
	Times     []float64          `json:"times"`
	Forces    [][3]float64       `json:"forces"`
	Positions [][][3]float64     `json:"positions"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON loads a stored run and writes it to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, forces, times, err := s.LoadPositions(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:        meta.ID,
		Name:      meta.Name,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Rows:      meta.Rows,
		Cols:      meta.Cols,
		Frames:    len(frames),
		Times:     times,
		Forces:    make([][3]float64, len(forces)),
		Positions: make([][][3]float64, len(frames)),
		Metrics:   meta.Metrics,
	}

	for i, f := range forces {
		data.Forces[i] = flatten(f)
	}
	for i, frame := range frames {
		data.Positions[i] = make([][3]float64, len(frame))
		for j, p := range frame {
			data.Positions[i][j] = flatten(p)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile is ExportJSON targeting a file path.
func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}

func flatten(v softbody.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
