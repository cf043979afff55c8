// Package output renders a finished report into one of the supported
// document formats and writes it to its destination.
//
// Formatters are pure functions of the report: the same report always
// renders to byte-identical output, so generated documents are diffable
// and cacheable.
package output

import (
	"fmt"
	"io"
	"sort"

	"ctxgen/internal/model"
)

// timestampLayout renders report timestamps in the text and markdown headers.
const timestampLayout = "2006-01-02 15:04:05"

// Formatter renders a report to a writer.
type Formatter interface {
	Format(report *model.Report, w io.Writer) error
}

// Registry manages the available formatters by name.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(name string, formatter Formatter) error {
	if name == "" {
		return fmt.Errorf("formatter name cannot be empty")
	}
	if formatter == nil {
		return fmt.Errorf("formatter cannot be nil")
	}
	r.formatters[name] = formatter
	return nil
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns the registered formatter names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format renders the report with the named formatter.
func (r *Registry) Format(name string, report *model.Report, w io.Writer) error {
	formatter, exists := r.formatters[name]
	if !exists {
		return fmt.Errorf("formatter '%s' not found", name)
	}
	return formatter.Format(report, w)
}

// InitFormatters returns a registry holding the default formatters.
func InitFormatters() (*Registry, error) {
	registry := NewRegistry()

	if err := registry.Register("text", NewTextFormatter()); err != nil {
		return nil, err
	}
	if err := registry.Register("markdown", NewMarkdownFormatter()); err != nil {
		return nil, err
	}
	if err := registry.Register("json", NewJSONFormatter()); err != nil {
		return nil, err
	}
	return registry, nil
}
