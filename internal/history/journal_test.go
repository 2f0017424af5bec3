package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"chartpilot/internal/models"
)

func record(pair string) models.TradeRecord {
	return models.TradeRecord{
		CurrencyPair: pair,
		Action:       models.ActionOpen,
		Direction:    models.DirectionBuy,
		Status:       models.TradeOpen,
		PositionSize: 1.0,
	}
}

func TestJournalDefaultCapacity(t *testing.T) {
	if j := NewJournal(0); j.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", j.capacity, DefaultCapacity)
	}
	if j := NewJournal(-5); j.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", j.capacity, DefaultCapacity)
	}
}

func TestJournalEvictsOldestAtCap(t *testing.T) {
	j := NewJournal(DefaultCapacity)
	for i := 0; i < DefaultCapacity+1; i++ {
		j.Append(record(fmt.Sprintf("PAIR%03d", i)))
	}

	if j.Len() != DefaultCapacity {
		t.Fatalf("len = %d, want %d after overflow", j.Len(), DefaultCapacity)
	}

	snap := j.Snapshot()
	if snap[0].CurrencyPair != "PAIR001" {
		t.Errorf("oldest = %s, want PAIR001 (PAIR000 evicted)", snap[0].CurrencyPair)
	}
	if snap[len(snap)-1].CurrencyPair != fmt.Sprintf("PAIR%03d", DefaultCapacity) {
		t.Errorf("newest = %s, want the last appended record", snap[len(snap)-1].CurrencyPair)
	}
}

func TestJournalCloseLatestOpen(t *testing.T) {
	j := NewJournal(10)

	if j.CloseLatestOpen(5) {
		t.Error("expected no open trade in an empty journal")
	}

	first := record("EURUSD")
	j.Append(first)
	second := record("EURUSD")
	j.Append(second)

	if !j.CloseLatestOpen(-4) {
		t.Fatal("expected an open trade to settle")
	}

	snap := j.Snapshot()
	if snap[0].Status != models.TradeOpen {
		t.Error("older open trade should be untouched")
	}
	if snap[1].Status != models.TradeClosed || snap[1].RewardPips != -4 {
		t.Errorf("latest = %s/%v, want closed/-4", snap[1].Status, snap[1].RewardPips)
	}
}

func TestJournalSnapshotIsolated(t *testing.T) {
	j := NewJournal(10)
	j.Append(record("EURUSD"))

	snap := j.Snapshot()
	snap[0].RewardPips = 99

	if j.Snapshot()[0].RewardPips != 0 {
		t.Error("mutating a snapshot leaked into the journal")
	}
}

func TestJournalConcurrentAppends(t *testing.T) {
	j := NewJournal(50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				j.Append(record("EURUSD"))
				_ = j.Snapshot()
			}
		}()
	}
	wg.Wait()

	if j.Len() != 50 {
		t.Errorf("len = %d, want capacity 50 after concurrent overflow", j.Len())
	}
}

func TestJournalLengthNeverExceedsCapacityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("len <= capacity after any number of appends", prop.ForAll(
		func(capacity, appends int) bool {
			j := NewJournal(capacity)
			for i := 0; i < appends; i++ {
				j.Append(record("EURUSD"))
			}
			want := appends
			if appends > capacity {
				want = capacity
			}
			return j.Len() == want
		},
		gen.IntRange(1, 120),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
