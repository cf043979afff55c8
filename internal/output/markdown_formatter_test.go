package output

import (
	"bytes"
	"testing"
)

// TestMarkdownFormatterFormat tests the full markdown document layout.
func TestMarkdownFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Format(sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "# AI Context Report\n" +
		"\n" +
		"- **Version**: `1.2.3`\n" +
		"- **Project Root**: `/tmp/demo`\n" +
		"- **Generated**: `2025-06-01 12:30:00`\n" +
		"- **Files discovered**: `2`\n" +
		"\n" +
		"---\n" +
		"\n" +
		"## `src/a.py`\n" +
		"\n" +
		"```py\nx = 1\n\n```\n" +
		"\n" +
		"---\n" +
		"\n" +
		"## `README.md`\n" +
		"\n" +
		"```md\n# demo\n```\n" +
		"\n" +
		"---\n" +
		"\n"

	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

// TestLangHint tests fence hint derivation from file names.
func TestLangHint(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want string
	}{
		{
			name: "simple extension",
			rel:  "src/main.py",
			want: "py",
		},
		{
			name: "uppercase extension lowered",
			rel:  "Program.CS",
			want: "cs",
		},
		{
			name: "last extension wins",
			rel:  "archive.tar.gz",
			want: "gz",
		},
		{
			name: "no extension",
			rel:  "Makefile",
			want: "text",
		},
		{
			name: "dotfile",
			rel:  ".gitignore",
			want: "text",
		},
		{
			name: "trailing dot",
			rel:  "odd.",
			want: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := langHint(tt.rel); got != tt.want {
				t.Errorf("langHint(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}
