package output

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"ctxgen/internal/model"
)

// MarkdownFormatter renders the report as a markdown document: a metadata
// bullet list, then one fenced code section per file with a language hint
// taken from the file extension.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as markdown to the writer.
func (f *MarkdownFormatter) Format(report *model.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# AI Context Report\n\n")
	fmt.Fprintf(bw, "- **Version**: `%s`\n", report.Metadata.ToolVersion)
	fmt.Fprintf(bw, "- **Project Root**: `%s`\n", report.Metadata.ProjectRoot)
	fmt.Fprintf(bw, "- **Generated**: `%s`\n", report.Metadata.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(bw, "- **Files discovered**: `%d`\n\n", report.Metadata.FileCount)
	fmt.Fprintf(bw, "---\n\n")

	for i := range report.Files {
		record := &report.Files[i]
		fmt.Fprintf(bw, "## `%s`\n\n", record.Path)
		fmt.Fprintf(bw, "```%s\n%s\n```\n\n---\n\n", langHint(record.Path), record.Content)
	}

	return bw.Flush()
}

// Name returns the name of the formatter.
func (f *MarkdownFormatter) Name() string {
	return "markdown"
}

// langHint derives a code fence language hint from the file extension.
// Extensionless files and dotfiles fall back to "text".
func langHint(rel string) string {
	base := path.Base(rel)
	ext := strings.TrimPrefix(path.Ext(base), ".")
	if ext == "" || "."+ext == base {
		return "text"
	}
	return strings.ToLower(ext)
}
