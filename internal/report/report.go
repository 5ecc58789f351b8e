// Package report aggregates extracted request records and renders them as
// text. Report kinds are looked up by name through a registry.
package report

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/atikulmunna/logreport/internal/model"
)

// Report accumulates records and renders a summary.
// Implementations are not safe for concurrent Add calls.
type Report interface {
	Name() string
	Add(rec model.Record)
	Total() int
	Render() string
}

// ErrUnknownReport is matched by every UnknownReportError.
var ErrUnknownReport = errors.New("unknown report kind")

// UnknownReportError is returned by Lookup for an unregistered name.
type UnknownReportError struct {
	Name string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("unknown report kind: %s", e.Name)
}

func (e *UnknownReportError) Is(target error) bool {
	return target == ErrUnknownReport
}

var (
	mu       sync.RWMutex
	registry = map[string]func() Report{}
)

func init() {
	Register(HandlersName, func() Report { return NewHandlers() })
}

// Register adds a report kind. It panics if name is empty or already taken.
func Register(name string, ctor func() Report) {
	mu.Lock()
	defer mu.Unlock()

	if name == "" || ctor == nil {
		panic("report: Register requires a name and constructor")
	}
	if _, dup := registry[name]; dup {
		panic("report: duplicate registration of " + name)
	}
	registry[name] = ctor
}

// Lookup returns a fresh Report for name.
func Lookup(name string) (Report, error) {
	mu.RLock()
	ctor, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, &UnknownReportError{Name: name}
	}
	return ctor(), nil
}

// Names returns the registered report kinds in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
