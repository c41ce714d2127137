// journal/journal.go
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"auto_hedge_go/hedge"
	"auto_hedge_go/market"
)

// Record is one evaluation's audit entry: what the engine decided and what
// the host executed. The journal is write-only; the engine never reads it
// back, it exists purely for after-the-fact review.
type Record struct {
	BatchID       string                   `json:"batch_id"`
	Time          time.Time                `json:"time"`
	TotalValue    float64                  `json:"total_value"`
	HighWaterMark float64                  `json:"high_water_mark"`
	Drawdown      float64                  `json:"drawdown"`
	Adjustments   []hedge.TargetAdjustment `json:"adjustments"`
	Fills         []market.Fill            `json:"fills"`
}

// Writer appends evaluation records to a JSON file, rewriting the file
// atomically (tmp + rename) on every append.
type Writer struct {
	mu       sync.Mutex
	filePath string
	records  []Record
}

// NewWriter creates a journal writer, loading any records a previous run
// left in the file so new entries append after them.
func NewWriter(filePath string) (*Writer, error) {
	w := &Writer{filePath: filePath, records: make([]Record, 0)}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return nil, fmt.Errorf("failed to load existing journal: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &w.records); err != nil {
			return nil, fmt.Errorf("failed to parse existing journal: %w", err)
		}
	}
	return w, nil
}

// Append adds one record and persists the journal.
func (w *Writer) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = append(w.records, rec)
	return w.save()
}

// Len returns the number of journaled evaluations.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}

// save writes the full journal atomically. Caller holds the lock.
func (w *Writer) save() error {
	data, err := json.MarshalIndent(w.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	tmpFilePath := w.filePath + ".tmp"
	if err := os.WriteFile(tmpFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary journal file: %w", err)
	}
	return os.Rename(tmpFilePath, w.filePath)
}
