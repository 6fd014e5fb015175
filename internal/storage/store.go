package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/softgrid/internal/sim"
	"github.com/san-kum/softgrid/internal/softbody"
)

// Store persists simulation runs under a data directory: one subdirectory
// per run holding metadata.json and positions.csv. The store only ever
// consumes finished results; it never touches live physics state.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Stiffness float64            `json:"stiffness"`
	Damping   float64            `json:"damping"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Positions) == 0 {
		return runID, nil
	}

	header := []string{"time", "fx", "fy", "fz"}
	for i := range result.Positions[0] {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	fmtF := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

	for i, frame := range result.Positions {
		row := []string{fmtF(result.Times[i])}

		var f softbody.Vec3
		if i < len(result.Forces) {
			f = result.Forces[i]
		}
		row = append(row, fmtF(f.X), fmtF(f.Y), fmtF(f.Z))

		for _, p := range frame {
			row = append(row, fmtF(p.X), fmtF(p.Y), fmtF(p.Z))
		}

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPositions reads a run's trajectory back: per frame the node positions
// in row-major order, the sampled external force, and the timestamps.
func (s *Store) LoadPositions(runID string) ([][]softbody.Vec3, []softbody.Vec3, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return [][]softbody.Vec3{}, []softbody.Vec3{}, []float64{}, nil
	}

	frames := make([][]softbody.Vec3, 0, len(records)-1)
	forces := make([]softbody.Vec3, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 4 || (len(record)-4)%3 != 0 {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		times = append(times, vals[0])
		forces = append(forces, softbody.Vec3{X: vals[1], Y: vals[2], Z: vals[3]})

		frame := make([]softbody.Vec3, 0, (len(vals)-4)/3)
		for i := 4; i+2 < len(vals); i += 3 {
			frame = append(frame, softbody.Vec3{X: vals[i], Y: vals[i+1], Z: vals[i+2]})
		}
		frames = append(frames, frame)
	}

	return frames, forces, times, nil
}
