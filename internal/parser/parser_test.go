package parser

import (
	"fmt"
	"testing"

	"github.com/atikulmunna/logreport/internal/model"
)

func TestRequestParser(t *testing.T) {
	p := NewRequestParser()

	rec, ok := p.Parse(`2024-04-29 10:00:00,123 INFO django.requests: "GET /api/v1/users/ HTTP/1.1" 200 1234`)
	if !ok {
		t.Fatal("expected line to match")
	}
	if rec.Level != model.LevelInfo {
		t.Errorf("expected level INFO, got %s", rec.Level)
	}
	if rec.Path != "/api/v1/users/" {
		t.Errorf("expected path '/api/v1/users/', got %q", rec.Path)
	}
}

func TestRequestParserISOTimestamp(t *testing.T) {
	p := NewRequestParser()

	rec, ok := p.Parse(`2024-04-29T10:00:00.123Z INFO django.requests: "GET /api/v1/users/ HTTP/1.1" 200 1234`)
	if !ok {
		t.Fatal("expected line to match")
	}
	if rec.Level != model.LevelInfo || rec.Path != "/api/v1/users/" {
		t.Errorf("expected (INFO, /api/v1/users/), got (%s, %s)", rec.Level, rec.Path)
	}
}

func TestRequestParserNoTimestamp(t *testing.T) {
	p := NewRequestParser()

	rec, ok := p.Parse(`ERROR django.requests: "POST /login/ HTTP/1.1" 500 0`)
	if !ok {
		t.Fatal("expected line without timestamp to match")
	}
	if rec.Level != model.LevelError || rec.Path != "/login/" {
		t.Errorf("expected (ERROR, /login/), got (%s, %s)", rec.Level, rec.Path)
	}
}

func TestRequestParserLevels(t *testing.T) {
	p := NewRequestParser()

	for _, level := range model.Levels {
		line := fmt.Sprintf(`2024-04-29 10:00:00,123 %s django.requests: "GET /api/v1/users/ HTTP/1.1" 200 1234`, level)
		rec, ok := p.Parse(line)
		if !ok {
			t.Errorf("%s: expected match", level)
			continue
		}
		if rec.Level != level {
			t.Errorf("expected level %s, got %s", level, rec.Level)
		}
	}
}

func TestRequestParserMethods(t *testing.T) {
	p := NewRequestParser()

	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		line := fmt.Sprintf(`2024-04-29 10:00:00,123 INFO django.requests: "%s /api/v1/users/ HTTP/1.1" 200 1234`, method)
		rec, ok := p.Parse(line)
		if !ok {
			t.Errorf("%s: expected match", method)
			continue
		}
		if rec.Path != "/api/v1/users/" {
			t.Errorf("%s: expected path '/api/v1/users/', got %q", method, rec.Path)
		}
	}
}

func TestRequestParserHandlers(t *testing.T) {
	p := NewRequestParser()

	for _, handler := range []string{"/api/v1/users/", "/api/v1/auth/login/", "/admin/dashboard/", "/api/v1/products/123", "/", "/search?q=a&b=1"} {
		line := fmt.Sprintf(`2024-04-29 10:00:00,123 INFO django.requests: "GET %s HTTP/1.1" 200 1234`, handler)
		rec, ok := p.Parse(line)
		if !ok {
			t.Errorf("%s: expected match", handler)
			continue
		}
		if rec.Path != handler {
			t.Errorf("expected path %q, got %q", handler, rec.Path)
		}
	}
}

func TestRequestParserTrailingNewline(t *testing.T) {
	p := NewRequestParser()

	rec, ok := p.Parse("2024-04-29 10:00:00,123 WARNING django.requests: \"GET /x\n")
	if !ok {
		t.Fatal("expected match")
	}
	if rec.Path != "/x" {
		t.Errorf("expected path '/x' without newline, got %q", rec.Path)
	}
}

func TestRequestParserNoMatch(t *testing.T) {
	p := NewRequestParser()

	lines := []string{
		"",
		"   ",
		"Invalid log line format",
		`2024-04-29 10:00:00,123 INFO django.db: Database query executed in 0.5s`,
		`2024-04-29 10:00:00,123 INFO django.requests: "TRACE /api/ HTTP/1.1" 200 1`,
		`2024-04-29 10:00:00,123 INFO django.requests: "GET api/ HTTP/1.1" 200 1`,
		`2024-04-29 10:00:00,123 INFO django.requests: GET /api/ HTTP/1.1 200 1`,
		`2024-04-29 10:00:00,123 INFO django.requests:`,
		`2024-04-29 10:00:00,123 FATAL django.requests: "GET /api/ HTTP/1.1" 500 1`,
		`2024-04-29 10:00:00,123 info django.requests: "GET /api/ HTTP/1.1" 200 1`,
		`2024-04-29 10:00:00,123 XINFO django.requests: "GET /api/ HTTP/1.1" 200 1`,
		"\x00\xff\xfe django.requests: \x01",
	}

	for _, line := range lines {
		if rec, ok := p.Parse(line); ok {
			t.Errorf("expected no match for %q, got %+v", line, rec)
		}
	}
}

func TestExtract(t *testing.T) {
	line := `2024-04-29 10:00:00,123 CRITICAL django.requests: "DELETE /x HTTP/1.1" 500 0`

	first, ok1 := Extract(line)
	second, ok2 := Extract(line)

	if !ok1 || !ok2 {
		t.Fatal("expected both calls to match")
	}
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
	if first.Level != model.LevelCritical || first.Path != "/x" {
		t.Errorf("expected (CRITICAL, /x), got (%s, %s)", first.Level, first.Path)
	}
}
