package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ctxgen/internal/model"
)

// TextFormatter renders the report as a plain text document: a banner
// header with the run metadata, then each file's content behind a fixed
// delimiter line.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format writes the report as plain text to the writer.
func (f *TextFormatter) Format(report *model.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)
	banner := strings.Repeat("=", 50)

	fmt.Fprintf(bw, "AI Context Report (v%s)\n", report.Metadata.ToolVersion)
	fmt.Fprintln(bw, banner)
	fmt.Fprintf(bw, "Project Root: %s\n", report.Metadata.ProjectRoot)
	fmt.Fprintf(bw, "Generated: %s\n", report.Metadata.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(bw, "Files discovered: %d\n", report.Metadata.FileCount)
	fmt.Fprintf(bw, "%s\n\n", banner)

	delimiter := strings.Repeat("=", 20)
	for i := range report.Files {
		record := &report.Files[i]
		fmt.Fprintf(bw, "\n\n%s File: %s %s\n\n", delimiter, record.Path, delimiter)
		bw.WriteString(record.Content)
	}

	return bw.Flush()
}

// Name returns the name of the formatter.
func (f *TextFormatter) Name() string {
	return "text"
}
