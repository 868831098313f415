package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Model      string             `json:"model"`
	Stepper    string             `json:"stepper"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Controls   []float64          `json:"controls"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run, metadata and trajectory, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, controls, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Model:      meta.Model,
		Stepper:    meta.Stepper,
		Controller: meta.Controller,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      meta.Steps,
		Times:      times,
		States:     make([][]float64, len(states)),
		Controls:   controls,
		Metrics:    meta.Metrics,
	}
	for i, st := range states {
		data.States[i] = st
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
