package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var (
	// ErrRunNotFound indicates a run id with no metadata on disk.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrInvalidRunID indicates an id that is not a single directory name.
	ErrInvalidRunID = errors.New("storage: invalid run id")
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Stepper     string             `json:"stepper"`
	Controller  string             `json:"controller"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Run describes what produced a result; Save stamps it with an id and time.
type Run struct {
	Model      string
	Stepper    string
	Controller string
	Dt         float64
	Duration   float64
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run id.
func (s *Store) Save(run Run, result *dynamo.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", run.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       run.Model,
		Timestamp:   now,
		Dt:          run.Dt,
		Duration:    run.Duration,
		Stepper:     run.Stepper,
		Controller:  run.Controller,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// runDir resolves runID inside the base directory. Ids that would leave it
// are rejected.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// writeStates writes one row per recorded state: time, x0..xn-1, u. The
// input column holds the input applied during the step that starts at that
// row, so the last row has none.
func writeStates(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if len(result.States) > 0 {
		header := []string{"time"}
		for i := range result.States[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		header = append(header, "u")
		if err := w.Write(header); err != nil {
			return err
		}

		for i := range result.States {
			row := []string{strconv.FormatFloat(result.Times[i], 'g', -1, 64)}
			for _, val := range result.States[i] {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
			if i < len(result.Controls) {
				row = append(row, strconv.FormatFloat(result.Controls[i], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns all readable runs, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	metaPath := filepath.Join(dir, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", metaPath, err)
	}
	return &meta, nil
}

// LoadStates reads back the states, times and inputs of a run.
func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, []float64, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	csvPath := filepath.Join(dir, statesFile)
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read %s: %w", csvPath, err)
	}

	if len(records) < 2 {
		return []dynamo.State{}, []float64{}, []float64{}, nil
	}

	n := len(records[0]) - 2
	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)
	controls := make([]float64, 0, len(records)-2)

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			if field == "" && j == len(record)-1 {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%s line %d: %w", csvPath, line+2, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		states = append(states, dynamo.State(vals[1:1+n]))
		if record[len(record)-1] != "" {
			controls = append(controls, vals[len(vals)-1])
		}
	}

	return states, times, controls, nil
}
