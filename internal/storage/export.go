package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/orbitsim/internal/sim"
)

// ExportData is the JSON form of a run. Positions are indexed
// [body][sample][axis], aligned with Bodies and Times.
type ExportData struct {
	Name       string             `json:"name"`
	Scheme     string             `json:"scheme"`
	Dimensions int                `json:"dimensions"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Samples    int                `json:"samples"`
	Bodies     []string           `json:"bodies"`
	Times      []float64          `json:"times"`
	Positions  [][][]float64      `json:"positions"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

func NewExportData(meta RunMetadata, tr *sim.Trajectory) ExportData {
	data := ExportData{
		Name:       meta.Name,
		Scheme:     meta.Scheme,
		Dimensions: tr.Dim,
		Dt:         meta.Dt,
		Steps:      meta.Steps,
		Samples:    tr.Len(),
		Bodies:     tr.Names,
		Times:      tr.Times,
		Positions:  make([][][]float64, len(tr.Positions)),
		Metrics:    meta.Metrics,
	}

	for i, path := range tr.Positions {
		data.Positions[i] = make([][]float64, len(path))
		for j, p := range path {
			data.Positions[i][j] = p
		}
	}
	return data
}

func ExportJSON(path string, meta RunMetadata, tr *sim.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, tr)
}

func WriteJSON(w io.Writer, meta RunMetadata, tr *sim.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, tr))
}
