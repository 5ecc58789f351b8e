// Package files turns command-line arguments into an ordered list of
// readable log files.
package files

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Reasons reported by PathError.
const (
	ReasonNotFound = "not found"
	ReasonNotFile  = "not a regular file"
)

// PathError reports an argument that does not name a readable log file.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// Resolve validates plain paths and expands glob patterns, preserving the
// order arguments were given in. Patterns may use ** to match recursively.
func Resolve(args []string) ([]string, error) {
	var out []string

	for _, arg := range args {
		if !isPattern(arg) {
			if err := checkFile(arg); err != nil {
				return nil, err
			}
			out = append(out, arg)
			continue
		}

		matches, err := expandGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, &PathError{Path: arg, Reason: ReasonNotFound}
		}
		out = append(out, matches...)
	}

	return out, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PathError{Path: path, Reason: ReasonNotFound}
		}
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return &PathError{Path: path, Reason: ReasonNotFile}
	}
	return nil
}

// isPattern reports whether arg contains glob meta characters.
func isPattern(arg string) bool {
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// expandGlob resolves a glob pattern to matching file paths.
// Supports recursive patterns like logs/**/*.log via doublestar.
func expandGlob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
}
