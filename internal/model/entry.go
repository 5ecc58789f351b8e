package model

// Level is a log severity recognized by the request log format.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Levels lists every severity in report column order.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

// ParseLevel returns the Level named by s. Matching is exact and case-sensitive.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Record is a single request extracted from a log line.
type Record struct {
	Level Level  `json:"level"`
	Path  string `json:"path"` // request path, always starts with "/"
}

// RawLine is an unparsed line read from a log file.
type RawLine struct {
	Text   string `json:"text"`
	Source string `json:"source"` // originating file path
}
