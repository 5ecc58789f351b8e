package aggregator

import (
	"context"
	"sync"

	"github.com/atikulmunna/logreport/internal/model"
	"github.com/atikulmunna/logreport/internal/report"
)

// Stats holds a point-in-time snapshot of aggregated counters.
type Stats struct {
	LevelCounts map[model.Level]int64 `json:"level_counts"`
}

// Aggregator is the single writer for a Report: every record read from the
// channel is added from the Start goroutine only.
type Aggregator struct {
	mu          sync.RWMutex
	levelCounts map[model.Level]int64
	report      report.Report
	records     <-chan model.Record
}

// New creates an Aggregator that feeds records into rep.
func New(records <-chan model.Record, rep report.Report) *Aggregator {
	return &Aggregator{
		levelCounts: make(map[model.Level]int64),
		report:      rep,
		records:     records,
	}
}

// Snapshot returns the current per-level totals. Every level is present,
// unseen ones with a zero count.
func (a *Aggregator) Snapshot() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	counts := make(map[model.Level]int64, len(model.Levels))
	for _, l := range model.Levels {
		counts[l] = a.levelCounts[l]
	}
	return Stats{LevelCounts: counts}
}

// Start consumes records until the channel is closed or the context is
// cancelled. It returns nil once the channel is drained and the context
// error if it stopped early.
func (a *Aggregator) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec, ok := <-a.records:
			if !ok {
				return nil
			}
			a.record(rec)
		}
	}
}

func (a *Aggregator) record(rec model.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.report.Add(rec)
	a.levelCounts[rec.Level]++
}
