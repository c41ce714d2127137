package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"auto_hedge_go/hedge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_AppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "journal.json")

	w, err := NewWriter(path)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())

	rec := Record{
		BatchID:       "batch-1",
		Time:          time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		TotalValue:    850000,
		HighWaterMark: 1000000,
		Drawdown:      -0.15,
		Adjustments: []hedge.TargetAdjustment{
			{ContractID: "p90", Underlying: "SPY", Quantity: 37, Reason: hedge.ReasonOpen},
		},
	}
	require.NoError(t, w.Append(rec))
	assert.Equal(t, 1, w.Len())

	// A second writer picks up where the first left off.
	w2, err := NewWriter(path)
	require.NoError(t, err)
	assert.Equal(t, 1, w2.Len())

	require.NoError(t, w2.Append(Record{BatchID: "batch-2", Time: rec.Time.Add(24 * time.Hour)}))
	assert.Equal(t, 2, w2.Len())

	// No stray temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_RejectsCorruptJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := NewWriter(path)
	assert.Error(t, err)
}
