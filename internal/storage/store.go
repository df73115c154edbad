package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var axes = [dynamo.MaxDim]string{"x", "y", "z"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Scheme       string             `json:"scheme"`
	Dimensions   int                `json:"dimensions"`
	G            float64            `json:"g"`
	Dt           float64            `json:"dt"`
	Steps        int                `json:"steps"`
	SubSteps     int                `json:"sub_steps"`
	SampleEvery  int                `json:"sample_every"`
	Host         string             `json:"host"`
	HostMass     float64            `json:"host_mass"`
	HostPosition []float64          `json:"host_position"`
	Bodies       []string           `json:"bodies"`
	Samples      int                `json:"samples"`
	StepsTaken   int                `json:"steps_taken"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes meta and the result's trajectory into a new run directory and
// returns the run ID. ID, Timestamp, Bodies and Samples are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if result == nil || result.Trajectory == nil {
		return "", errors.New("storage: nothing to save")
	}
	if meta.Name == "" {
		meta.Name = "run"
	}

	runID, runDir, err := s.newRunDir(meta.Name)
	if err != nil {
		return "", err
	}

	tr := result.Trajectory
	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Bodies = tr.Names
	meta.Dimensions = tr.Dim
	meta.Samples = tr.Len()
	meta.StepsTaken = result.StepsTaken
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, tr); err != nil {
		return "", fmt.Errorf("write trajectory: %w", err)
	}
	return runID, nil
}

func (s *Store) newRunDir(name string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", sanitize(name), time.Now().Unix())
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
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

// WriteCSV writes one row per sample: time followed by every body's
// coordinates, with columns named <body>.x, <body>.y and <body>.z.
func WriteCSV(w io.Writer, tr *sim.Trajectory) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 1+len(tr.Names)*tr.Dim)
	header = append(header, "time")
	for _, name := range tr.Names {
		for d := 0; d < tr.Dim; d++ {
			header = append(header, name+"."+axes[d])
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, t := range tr.Times {
		row = row[:0]
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for b := range tr.Names {
			for _, v := range tr.Positions[b][i] {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads the trajectory of a saved run back from its CSV.
func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return tr, nil
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (*sim.Trajectory, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("missing header")
	}

	names, dim, err := parseHeader(records[0])
	if err != nil {
		return nil, err
	}

	tr := sim.NewTrajectory(names, dim, len(records)-1)
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			vals[j] = v
		}

		tr.Times = append(tr.Times, vals[0])
		for b := range names {
			start := 1 + b*dim
			tr.Positions[b] = append(tr.Positions[b], dynamo.Vector(vals[start:start+dim]).Clone())
		}
	}
	return tr, nil
}

func parseHeader(header []string) ([]string, int, error) {
	if len(header) < 2 || header[0] != "time" {
		return nil, 0, fmt.Errorf("unexpected header %v", header)
	}

	var names []string
	dim := 0
	for i, col := range header[1:] {
		dot := strings.LastIndex(col, ".")
		if dot < 0 {
			return nil, 0, fmt.Errorf("column %q has no axis", col)
		}
		name, axis := col[:dot], col[dot+1:]
		if axis == axes[0] {
			names = append(names, name)
		}
		if len(names) == 1 && i < dynamo.MaxDim && axis == axes[i] {
			dim = i + 1
		}
	}

	if dim < 2 || len(names)*dim != len(header)-1 {
		return nil, 0, fmt.Errorf("malformed header %v", header)
	}
	return names, dim, nil
}
