package hub

import (
	"context"
	"sync"

	"github.com/atikulmunna/logreport/internal/model"
	"github.com/atikulmunna/logreport/internal/parser"
)

const recordBuffer = 1024

// Hub receives raw lines, parses them on a pool of workers, and forwards
// matching records. Lines that do not match are counted and dropped.
type Hub struct {
	parser  parser.Parser
	input   <-chan model.RawLine
	out     chan model.Record
	workers int

	mu          sync.RWMutex
	matched     int64
	skipped     int64
	interrupted bool
}

// New creates a Hub that reads from the input channel and parses with the given parser.
// workers below 1 is treated as 1.
func New(input <-chan model.RawLine, p parser.Parser, workers int) *Hub {
	if workers < 1 {
		workers = 1
	}
	return &Hub{
		parser:  p,
		input:   input,
		out:     make(chan model.Record, recordBuffer),
		workers: workers,
	}
}

// Records returns the channel of parsed records. It is closed when Start returns.
func (h *Hub) Records() <-chan model.Record {
	return h.out
}

// Matched returns the number of lines that produced a record.
func (h *Hub) Matched() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.matched
}

// Skipped returns the number of lines that did not match.
func (h *Hub) Skipped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.skipped
}

// Start runs the workers until the input channel is drained or the context
// is cancelled. It returns the context error if any worker stopped early.
func (h *Hub) Start(ctx context.Context) error {
	defer close(h.out)

	var wg sync.WaitGroup
	for i := 0; i < h.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.work(ctx)
		}()
	}
	wg.Wait()

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.interrupted {
		return ctx.Err()
	}
	return nil
}

func (h *Hub) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.interrupt()
			return
		case raw, ok := <-h.input:
			if !ok {
				return
			}
			rec, matched := h.parser.Parse(raw.Text)
			h.count(matched)
			if !matched {
				continue
			}
			select {
			case h.out <- rec:
			case <-ctx.Done():
				h.interrupt()
				return
			}
		}
	}
}

func (h *Hub) count(matched bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if matched {
		h.matched++
	} else {
		h.skipped++
	}
}

func (h *Hub) interrupt() {
	h.mu.Lock()
	h.interrupted = true
	h.mu.Unlock()
}
