package manifest

import (
	"encoding/json"
	"os"
	"time"

	"github.com/eerla/pybenders-sub000/internal/fileutil"
	"github.com/eerla/pybenders-sub000/internal/services"
)

// Outcome records one job's terminal result. Exactly one of OutputPath and
// Error is set.
type Outcome struct {
	Succeeded  bool   `json:"succeeded"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Results is the batch outcome envelope written next to the scene manifest
// once every submitted job has resolved.
type Results struct {
	Subject     string             `json:"subject"`
	RunID       string             `json:"run_id"`
	CompletedAt time.Time          `json:"completed_at"`
	Succeeded   int                `json:"succeeded"`
	Failed      int                `json:"failed"`
	Results     map[string]Outcome `json:"results"`
}

// NewResults prepares an empty envelope for the given batch.
func NewResults(subject, runID string) *Results {
	return &Results{
		Subject: subject,
		RunID:   runID,
		Results: make(map[string]Outcome),
	}
}

// Record stores one job outcome and updates the success/failure tallies.
func (r *Results) Record(questionID string, outcome Outcome) {
	if r.Results == nil {
		r.Results = make(map[string]Outcome)
	}
	r.Results[questionID] = outcome
	if outcome.Succeeded {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// WriteResults publishes the envelope atomically so the downstream
// publisher never reads a half-written manifest.
func WriteResults(path string, results *Results) error {
	if results.CompletedAt.IsZero() {
		results.CompletedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "manifest", "write results", "encode results", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return services.Wrap(nil, "manifest", "write results", "write "+path, err)
	}
	return nil
}

// ReadResults loads a previously written results manifest.
func ReadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(nil, "manifest", "read results", "read "+path, err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "read results", "parse "+path, err)
	}
	return &results, nil
}
