package output

import (
	"encoding/json"
	"io"

	"ctxgen/internal/model"
)

// JSONFormatter renders the report as a single JSON object with a metadata
// field and a files array. Encoding escapes control characters, so the
// document stays valid for any content that survived the decode chain.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the report as indented JSON to the writer.
func (f *JSONFormatter) Format(report *model.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Name returns the name of the formatter.
func (f *JSONFormatter) Name() string {
	return "json"
}
