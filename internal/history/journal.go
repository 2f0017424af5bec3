// Package history owns the bounded trade journal.
package history

import (
	"sync"

	"chartpilot/internal/models"
)

// DefaultCapacity is the journal size cap; the oldest record is evicted
// once the cap is reached.
const DefaultCapacity = 100

// Journal is a fixed-capacity, FIFO-evicted trade log. Appends are atomic
// and readers always get an isolated copy, so concurrent analysis cycles
// can share one journal under exclusive-write/shared-read discipline.
type Journal struct {
	mu       sync.RWMutex
	capacity int
	records  []models.TradeRecord
}

// NewJournal creates a journal with the given capacity (DefaultCapacity
// when zero or negative).
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		capacity: capacity,
		records:  make([]models.TradeRecord, 0, capacity),
	}
}

// Append adds a record, evicting the oldest when the journal is full.
func (j *Journal) Append(rec models.TradeRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.records) >= j.capacity {
		overflow := len(j.records) - j.capacity + 1
		j.records = append(j.records[:0], j.records[overflow:]...)
	}
	j.records = append(j.records, rec)
}

// CloseLatestOpen settles the most recent open trade with its realized pip
// outcome. It reports whether an open trade was found.
func (j *Journal) CloseLatestOpen(rewardPips float64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := len(j.records) - 1; i >= 0; i-- {
		if j.records[i].Status == models.TradeOpen {
			j.records[i].Status = models.TradeClosed
			j.records[i].RewardPips = rewardPips
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the journal, oldest first.
func (j *Journal) Snapshot() []models.TradeRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]models.TradeRecord, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the number of records.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.records)
}
