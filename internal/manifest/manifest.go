// Package manifest records the outcome of a generation run as YAML next to
// the data, so a partially loaded dataset is never mistaken for a complete
// one.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/seeder"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

type Status string

const (
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

type Manifest struct {
	RunID      string            `yaml:"run_id"`
	Status     Status            `yaml:"status"`
	Error      string            `yaml:"error,omitempty"`
	Provider   string            `yaml:"provider"`
	Seed       int64             `yaml:"seed"`
	StartedAt  time.Time         `yaml:"started_at"`
	FinishedAt time.Time         `yaml:"finished_at"`
	Parameters config.Generation `yaml:"parameters"`
	Tables     []Table           `yaml:"tables"`
	Duplicates Duplicates        `yaml:"duplicates"`
}

type Table struct {
	Name    string `yaml:"name"`
	Rows    int64  `yaml:"rows"`
	Batches int    `yaml:"batches"`
	Digest  string `yaml:"digest"`
	Partial bool   `yaml:"partial,omitempty"`
}

type Duplicates struct {
	BaseCustomers int `yaml:"base_customers"`
	Exact         int `yaml:"exact_contact"`
	Fuzzy         int `yaml:"fuzzy_name"`
	FuzzyTypo     int `yaml:"fuzzy_name_typo"`
	Demoted       int `yaml:"demoted,omitempty"`
}

// New builds the manifest of a run. The run is complete only when it returned
// no error and no table is partial.
func New(cfg *config.Config, report *seeder.Report, runErr error) *Manifest {
	m := &Manifest{
		RunID:      ulid.Make().String(),
		Status:     StatusComplete,
		Provider:   cfg.Database.Provider,
		Seed:       cfg.Generation.Seed,
		Parameters: cfg.Generation,
	}
	if runErr != nil {
		m.Status = StatusFailed
		m.Error = runErr.Error()
	}
	if report == nil {
		m.Status = StatusFailed
		return m
	}

	if !report.EndDate.IsZero() {
		m.Parameters.StartDate = report.StartDate.Format(time.DateOnly)
		m.Parameters.EndDate = report.EndDate.Format(time.DateOnly)
	}
	m.StartedAt = report.Started.UTC()
	m.FinishedAt = report.Finished.UTC()
	m.Duplicates = Duplicates{
		BaseCustomers: report.BaseCustomers,
		Exact:         report.Duplicates.Exact,
		Fuzzy:         report.Duplicates.Fuzzy,
		FuzzyTypo:     report.Duplicates.FuzzyTypo,
		Demoted:       report.Duplicates.Demoted,
	}
	for _, name := range report.Order {
		st := report.Tables[name]
		if st.Partial {
			m.Status = StatusFailed
		}
		m.Tables = append(m.Tables, Table{
			Name:    name,
			Rows:    st.Rows,
			Batches: st.Batches,
			Digest:  st.Digest,
			Partial: st.Partial,
		})
	}
	return m
}

// Write stores the manifest at path, replacing any previous one atomically.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move manifest into place: %w", err)
	}
	return nil
}

func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Compare checks loaded row counts against the manifest. Tables missing from
// counts are not checked.
func (m *Manifest) Compare(counts map[string]int64) []string {
	var out []string
	if m.Status != StatusComplete {
		out = append(out, fmt.Sprintf("run %s did not complete (status %s)", m.RunID, m.Status))
	}
	for _, t := range m.Tables {
		got, ok := counts[t.Name]
		if !ok {
			continue
		}
		if got != t.Rows {
			out = append(out, fmt.Sprintf("%s has %d rows, run %s loaded %d", t.Name, got, m.RunID, t.Rows))
		}
	}
	return out
}
