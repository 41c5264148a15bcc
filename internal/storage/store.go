package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/splitbox/internal/frame"
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
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Lifetime     float64            `json:"lifetime"`
	SpawnDivisor float64            `json:"spawn_divisor"`
	FadeAlpha    float64            `json:"fade_alpha"`
	Dt           float64            `json:"dt"`
	Frames       int                `json:"frames"`
	BoxOrigin    [3]float64         `json:"box_origin"`
	BoxExtents   [3]float64         `json:"box_extents"`
	Counters     frame.Counters     `json:"counters"`
	Metrics      map[string]float64 `json:"metrics"`
}

var header = []string{"time", "nodes", "leaves", "depth", "vertices", "replaced", "lost"}

// Save writes meta and records under a fresh run directory and returns its id.
// meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, records []Record) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, "frames.csv"), func(w io.Writer) error {
		return WriteCSV(w, records)
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// writeFile creates path, fills it with write and reports the first error,
// including the one from Close.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", filepath.Base(path), cerr)
		}
	}()
	return write(f)
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadFrames(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("frames.csv line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, fmt.Errorf("expected %d fields, got %d", len(header), len(row))
	}
	var rec Record
	var err error
	if rec.Time, err = strconv.ParseFloat(row[0], 64); err != nil {
		return rec, err
	}
	ints := []*int{&rec.Nodes, &rec.Leaves, &rec.Depth, &rec.Vertices}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(row[i+1]); err != nil {
			return rec, err
		}
	}
	if rec.Replaced, err = strconv.ParseBool(row[5]); err != nil {
		return rec, err
	}
	if rec.Lost, err = strconv.ParseBool(row[6]); err != nil {
		return rec, err
	}
	return rec, nil
}
