package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"ctxgen/internal/model"
)

// TestJSONFormatterRoundTrip tests that the JSON document parses back into
// an equal report, including content that needs escaping.
func TestJSONFormatterRoundTrip(t *testing.T) {
	report := &model.Report{
		Metadata: model.RunMetadata{
			ToolVersion:   "1.2.3",
			ProjectRoot:   "/tmp/demo",
			GeneratedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
			FileCount:     3,
			ContentDigest: "deadbeef",
		},
		Files: []model.FileRecord{
			{
				Path:      "src/a.py",
				SizeBytes: 6,
				Encoding:  model.EncodingUTF8,
				Digest:    "0011223344556677",
				Content:   "x = 1\n",
			},
			{
				Path:      "notes/quotes.txt",
				SizeBytes: 40,
				Encoding:  model.EncodingLatin1,
				Digest:    "1122334455667788",
				Content:   "say \"hi\"\\no\ttabs\nand a \x01 control byte",
			},
			{
				Path:      "docs/héllo.md",
				SizeBytes: 20,
				Encoding:  model.EncodingDetected,
				Digest:    "99aabbccddeeff00",
				Content:   "<b>html & friends</b>\n日本語",
			},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !json.Valid(buf.Bytes()) {
		t.Fatalf("Format() produced invalid JSON: %s", buf.String())
	}

	var got model.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(got.Metadata, report.Metadata) {
		t.Errorf("Metadata mismatch: got %+v, want %+v", got.Metadata, report.Metadata)
	}
	if !reflect.DeepEqual(got.Files, report.Files) {
		t.Errorf("Files mismatch: got %+v, want %+v", got.Files, report.Files)
	}
	if got.Metadata.FileCount != len(got.Files) {
		t.Errorf("FileCount = %d, want %d", got.Metadata.FileCount, len(got.Files))
	}
}

// TestJSONFormatterFieldNames tests the stable wire names consumers rely on.
func TestJSONFormatterFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var doc struct {
		Metadata map[string]any   `json:"metadata"`
		Files    []map[string]any `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"version", "project_root", "generated_at", "file_count", "content_digest"} {
		if _, ok := doc.Metadata[key]; !ok {
			t.Errorf("metadata is missing key %q", key)
		}
	}
	if len(doc.Files) != 2 {
		t.Fatalf("files length = %d, want 2", len(doc.Files))
	}
	for _, key := range []string{"path", "size", "encoding", "digest", "content"} {
		if _, ok := doc.Files[0][key]; !ok {
			t.Errorf("file entry is missing key %q", key)
		}
	}
}
