package reader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/atikulmunna/logreport/internal/model"
)

// maxLineSize bounds the buffered part of a line. Longer lines are
// dropped and emitted as empty lines, which never match.
const maxLineSize = 1 << 20

// ErrInvalidUTF8 is returned for files that are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Stats counts what a Reader has processed.
type Stats struct {
	FilesRead   int `json:"files_read"`
	FilesFailed int `json:"files_failed"`
	Lines       int `json:"lines"`
}

// Reader reads log files in order and emits each line as a RawLine.
// A file that cannot be opened or read is logged and skipped.
type Reader struct {
	mu    sync.Mutex
	paths []string
	out   chan model.RawLine
	log   logr.Logger
	stats Stats
}

// New creates a Reader for the given files.
func New(paths []string, logger logr.Logger) *Reader {
	return &Reader{
		paths: paths,
		out:   make(chan model.RawLine, 512),
		log:   logger.WithName("reader"),
	}
}

// Lines returns the channel where raw log lines are sent.
func (r *Reader) Lines() <-chan model.RawLine {
	return r.out
}

// Stats returns a copy of the current counters.
func (r *Reader) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Start reads every file and closes the Lines channel when done.
// Blocks until all files are read or the context is cancelled; in the
// latter case it returns the context error.
func (r *Reader) Start(ctx context.Context) error {
	defer close(r.out)

	for _, path := range r.paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.readFile(ctx, path)
		switch {
		case err == nil:
			r.update(func(s *Stats) { s.FilesRead++ })
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			r.log.Error(err, "skipping file", "path", path)
			r.update(func(s *Stats) { s.FilesFailed++ })
		}
	}
	return nil
}

// readFile emits every line of path. Lines sent before a read error
// are kept.
func (r *Reader) readFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	r.log.V(1).Info("reading file", "path", path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	split := &lineSplitter{max: maxLineSize}
	scanner.Split(split.split)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if !utf8.ValidString(text) {
			return fmt.Errorf("read error on %s line %d: %w", path, lineNo, ErrInvalidUTF8)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case r.out <- model.RawLine{Text: text, Source: path}:
		}
		r.update(func(s *Stats) { s.Lines++ })
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read error on %s: %w", path, err)
	}
	return nil
}

func (r *Reader) update(fn func(*Stats)) {
	r.mu.Lock()
	fn(&r.stats)
	r.mu.Unlock()
}

// lineSplitter is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a
// lone "\r". A line that outgrows max is discarded up to its terminator
// and yields an empty token instead of failing the scan.
type lineSplitter struct {
	max        int
	discarding bool
}

func (s *lineSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		// Need one more byte to tell "\r" from "\r\n".
		if data[i] == '\r' && i+1 == len(data) && !atEOF && len(data) < s.max {
			return 0, nil, nil
		}
		advance := i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		}
		return advance, s.token(data[:i]), nil
	}

	if atEOF {
		return len(data), s.token(data), nil
	}
	if len(data) >= s.max {
		s.discarding = true
		return len(data), nil, nil
	}
	return 0, nil, nil
}

func (s *lineSplitter) token(line []byte) []byte {
	if s.discarding {
		s.discarding = false
		return line[:0]
	}
	return line
}
