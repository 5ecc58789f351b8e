package parser

import (
	"regexp"
	"strings"

	"github.com/atikulmunna/logreport/internal/model"
)

// Parser extracts a request Record from a raw log line.
// The boolean result is false when the line is not a request log entry.
type Parser interface {
	Parse(raw string) (model.Record, bool)
}

// marker identifies Django request-log lines.
const marker = "django.requests:"

// ---------------------------------------------------------------------------
// Request Parser (django.requests lines)
// ---------------------------------------------------------------------------

// RequestParser recognizes lines of the form:
//
//	[timestamp...] LEVEL django.requests: "METHOD /path HTTP/x.y" status size
//
// Any number of whitespace-separated tokens may precede the level, so both
// "2024-04-29 10:00:00,123" and "2024-04-29T10:00:00.123Z" timestamps work.
type RequestParser struct {
	re *regexp.Regexp
}

func NewRequestParser() *RequestParser {
	return &RequestParser{
		re: regexp.MustCompile(`^\s*(?:\S+\s+)*?(DEBUG|INFO|WARNING|ERROR|CRITICAL)\s+django\.requests:\s+"(?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\s+(/\S*)`),
	}
}

func (p *RequestParser) Parse(raw string) (model.Record, bool) {
	// Cheap rejection before running the regex.
	if !strings.Contains(raw, marker) {
		return model.Record{}, false
	}

	matches := p.re.FindStringSubmatch(raw)
	if matches == nil {
		return model.Record{}, false
	}

	level, ok := model.ParseLevel(matches[1])
	if !ok {
		return model.Record{}, false
	}

	return model.Record{Level: level, Path: matches[2]}, true
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var defaultParser = NewRequestParser()

// Extract parses a line with the shared RequestParser.
func Extract(line string) (model.Record, bool) {
	return defaultParser.Parse(line)
}
