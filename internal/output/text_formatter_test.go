package output

import (
	"bytes"
	"testing"
)

// TestTextFormatterFormat tests the full text document layout.
func TestTextFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().Format(sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "AI Context Report (v1.2.3)\n" +
		"==================================================\n" +
		"Project Root: /tmp/demo\n" +
		"Generated: 2025-06-01 12:30:00\n" +
		"Files discovered: 2\n" +
		"==================================================\n" +
		"\n" +
		"\n\n==================== File: src/a.py ====================\n\n" +
		"x = 1\n" +
		"\n\n==================== File: README.md ====================\n\n" +
		"# demo"

	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

// TestTextFormatterEmptyReport tests a report with no files.
func TestTextFormatterEmptyReport(t *testing.T) {
	report := sampleReport()
	report.Files = nil
	report.Metadata.FileCount = 0

	var buf bytes.Buffer
	if err := NewTextFormatter().Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("Files discovered: 0\n")) {
		t.Errorf("Format() = %q, want file count line showing 0", got)
	}
	if bytes.Contains(buf.Bytes(), []byte("File: ")) {
		t.Errorf("Format() = %q, want no file sections", got)
	}
}
