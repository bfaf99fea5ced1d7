package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HistoryEntry is one line in the benchmark history file, kept small so
// runs stay comparable over time.
type HistoryEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	Samples     int       `json:"samples"`
	TP          int       `json:"tp"`
	FP          int       `json:"fp"`
	FN          int       `json:"fn"`
	Precision   float64   `json:"precision"`
	Recall      float64   `json:"recall"`
	F1          float64   `json:"f1"`
	TotalTokens int       `json:"total_tokens"`
	CostUSD     float64   `json:"cost_usd"`
}

func historyEntry(run *RunResult) HistoryEntry {
	return HistoryEntry{
		Timestamp:   run.Timestamp,
		Provider:    run.Provider,
		Model:       run.Model,
		Samples:     run.Aggregate.SampleCount,
		TP:          run.Aggregate.TP,
		FP:          run.Aggregate.FP,
		FN:          run.Aggregate.FN,
		Precision:   run.Aggregate.Precision,
		Recall:      run.Aggregate.Recall,
		F1:          run.Aggregate.F1,
		TotalTokens: run.TotalUsage.TotalTokens,
		CostUSD:     run.EstimatedCost,
	}
}

// AppendHistory appends one JSON line for the run to path, creating the
// file and its directory as needed.
func AppendHistory(path string, run *RunResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	line, err := json.Marshal(historyEntry(run))
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}

// LoadHistory reads every entry from a history file. A missing file is an
// empty history, not an error.
func LoadHistory(path string) ([]HistoryEntry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []HistoryEntry
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e HistoryEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
