// Package analyzer runs the read → parse → aggregate pipeline over a batch
// of log files and produces one rendered report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/atikulmunna/logreport/internal/aggregator"
	"github.com/atikulmunna/logreport/internal/hub"
	"github.com/atikulmunna/logreport/internal/model"
	"github.com/atikulmunna/logreport/internal/parser"
	"github.com/atikulmunna/logreport/internal/reader"
	"github.com/atikulmunna/logreport/internal/report"
)

// Options tunes a Generate call. The zero value is valid.
type Options struct {
	// Workers is the number of parse goroutines. Values below 1 mean 1.
	Workers int
	Logger  logr.Logger
	// Parser overrides the default request-line parser.
	Parser parser.Parser
}

// Stats describes the work done for one report.
type Stats struct {
	FilesRead    int   `json:"files_read"`
	FilesFailed  int   `json:"files_failed"`
	LinesRead    int   `json:"lines_read"`
	LinesMatched int64 `json:"lines_matched"`
	LinesSkipped int64 `json:"lines_skipped"`
	// LevelCounts totals matched records per level across all paths.
	LevelCounts map[model.Level]int64 `json:"level_counts"`
	Elapsed     time.Duration         `json:"elapsed_ns"`
}

// Result is the outcome of a successful Generate call.
type Result struct {
	Report report.Report `json:"-"`
	Text   string        `json:"-"`
	Stats  Stats         `json:"stats"`
}

// Generate builds the report named reportName from paths.
//
// An unknown report name fails with a *report.UnknownReportError before any
// file is opened. Files that cannot be read are logged and skipped.
func Generate(ctx context.Context, paths []string, reportName string, opts Options) (*Result, error) {
	rep, err := report.Lookup(reportName)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	p := opts.Parser
	if p == nil {
		p = parser.NewRequestParser()
	}

	start := time.Now()
	logger.V(1).Info("generating report", "report", reportName, "files", len(paths), "workers", opts.Workers)

	r := reader.New(paths, logger)
	h := hub.New(r.Lines(), p, opts.Workers)
	agg := aggregator.New(h.Records(), rep)

	readErr := make(chan error, 1)
	hubErr := make(chan error, 1)
	go func() { readErr <- r.Start(ctx) }()
	go func() { hubErr <- h.Start(ctx) }()
	aggErr := agg.Start(ctx)

	// Only a stage that stopped early invalidates the report; a cancellation
	// arriving after everything was merged does not.
	if err := errors.Join(<-readErr, <-hubErr, aggErr); err != nil {
		return nil, fmt.Errorf("report generation interrupted: %w", err)
	}

	rs := r.Stats()
	res := &Result{
		Report: rep,
		Text:   rep.Render(),
		Stats: Stats{
			FilesRead:    rs.FilesRead,
			FilesFailed:  rs.FilesFailed,
			LinesRead:    rs.Lines,
			LinesMatched: h.Matched(),
			LinesSkipped: h.Skipped(),
			LevelCounts:  agg.Snapshot().LevelCounts,
			Elapsed:      time.Since(start),
		},
	}

	logger.V(1).Info("report generated",
		"report", reportName,
		"requests", rep.Total(),
		"linesRead", res.Stats.LinesRead,
		"linesSkipped", res.Stats.LinesSkipped,
		"filesFailed", res.Stats.FilesFailed,
	)
	return res, nil
}
