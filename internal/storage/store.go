// Package storage persists simulation runs on disk so past results can be
// listed, reloaded, and exported without re-tracing.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/optiray/optiray/internal/model"
)

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
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Timestamp      time.Time            `json:"timestamp"`
	ComponentCount model.ComponentCount `json:"componentCount"`
	TotalRays      int                  `json:"totalRays"`
	SweepPoints    int                  `json:"sweepPoints"`
	Warnings       int                  `json:"warnings"`
}

// Save writes one run: metadata.json, the full result.json, and sweep.csv
// with one row per sampled wavelength. Returns the generated run id.
func (s *Store) Save(name string, result *model.SimulationResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Name:           name,
		Timestamp:      time.Now(),
		ComponentCount: result.Statistics.ComponentCount,
		TotalRays:      result.Statistics.TotalRays,
		SweepPoints:    len(result.FrequencySweep),
		Warnings:       len(result.Warnings),
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "result.json"), result); err != nil {
		return "", err
	}
	if err := writeSweepCSV(filepath.Join(runDir, "sweep.csv"), result.FrequencySweep); err != nil {
		return "", err
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadResult(runID string) (*model.SimulationResult, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "result.json"))
	if err != nil {
		return nil, err
	}

	var result model.SimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSweepCSV emits one row per wavelength. Detector columns are sorted by
// detector id so every row lines up.
func writeSweepCSV(path string, entries []model.SweepEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(entries) == 0 {
		return w.Write([]string{"wavelength_nm", "frequency_thz", "total_intensity"})
	}

	detectors := make([]string, 0, len(entries[0].PerDetectorIntensity))
	for id := range entries[0].PerDetectorIntensity {
		detectors = append(detectors, id)
	}
	sort.Strings(detectors)

	header := []string{"wavelength_nm", "frequency_thz", "total_intensity"}
	for _, id := range detectors {
		header = append(header, "detector_"+id)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatFloat(e.WavelengthNm, 'f', 3, 64),
			strconv.FormatFloat(e.FrequencyTHz, 'f', 3, 64),
			strconv.FormatFloat(e.TotalIntensity, 'f', 6, 64),
		}
		for _, id := range detectors {
			row = append(row, strconv.FormatFloat(e.PerDetectorIntensity[id], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
