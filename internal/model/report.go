package model

import (
	"time"
)

// Reason classifies why a path was rejected by filtering or skipped during loading.
type Reason string

// Rejection reasons produced by filtering, in decision order.
const (
	// ReasonSelf marks a path under one of the tool's own self-exclusion roots.
	ReasonSelf Reason = "self"

	// ReasonBinary marks a path whose extension is on the binary deny-list.
	ReasonBinary Reason = "binary"

	// ReasonExcluded marks a path matched by a user or preset exclude pattern.
	ReasonExcluded Reason = "excluded"

	// ReasonNotIncluded marks a path matched by no include pattern while includes exist.
	ReasonNotIncluded Reason = "not-included"

	// ReasonTooLarge marks a file exceeding the configured size limit.
	ReasonTooLarge Reason = "too-large"
)

// Skip reasons produced while loading admitted files.
const (
	// ReasonEmpty marks content that is empty or whitespace-only after decoding.
	ReasonEmpty Reason = "empty"

	// ReasonIOError marks a file that could not be read.
	ReasonIOError Reason = "io-error"
)

// Encoding tags recorded on a FileRecord, in fallback order.
const (
	// EncodingUTF8 means the raw bytes were valid UTF-8.
	EncodingUTF8 = "utf8"

	// EncodingDetected means a statistical detector picked the charset.
	EncodingDetected = "detected"

	// EncodingLatin1 means the last-resort Latin-1 decode was used.
	EncodingLatin1 = "latin1-fallback"
)

// FileRecord is one admitted, decoded file destined for the report.
type FileRecord struct {
	// Path is the file's path relative to its root, slash-separated.
	Path string `json:"path" yaml:"path"`

	// SizeBytes is the on-disk size of the file.
	SizeBytes int64 `json:"size" yaml:"size"`

	// Encoding is the tag of the decode step that produced Content.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Digest is the xxh3-64 hex digest of Content.
	Digest string `json:"digest" yaml:"digest"`

	// Content is the decoded text, possibly minified.
	Content string `json:"content" yaml:"content"`
}

// RunMetadata describes one generation run. Computed once all records are known.
type RunMetadata struct {
	// ToolVersion is the version string baked into the binary.
	ToolVersion string `json:"version" yaml:"version"`

	// ProjectRoot is the absolute path the run was anchored at.
	ProjectRoot string `json:"project_root" yaml:"project_root"`

	// GeneratedAt is the time the report was assembled.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// FileCount is the number of records in the report.
	FileCount int `json:"file_count" yaml:"file_count"`

	// ContentDigest is the blake3-256 hex digest over the ordered
	// (path, content) sequence. Two reports with equal digests carry
	// identical content.
	ContentDigest string `json:"content_digest" yaml:"content_digest"`
}

// Report is the sole artifact handed to the output boundary. Files keep
// traversal order so repeated runs over the same tree serialize identically.
type Report struct {
	Metadata RunMetadata  `json:"metadata" yaml:"metadata"`
	Files    []FileRecord `json:"files" yaml:"files"`
}

// SkipInfo records one file set aside during loading, for the end-of-run summary.
type SkipInfo struct {
	Path   string `json:"path" yaml:"path"`
	Reason Reason `json:"reason" yaml:"reason"`
}

// Capabilities records which optional facilities are enabled for a run.
// Resolved once at startup; stages branch on these flags instead of probing
// at use time.
type Capabilities struct {
	// EncodingDetection enables the statistical charset detector between
	// the UTF-8 and Latin-1 decode steps.
	EncodingDetection bool

	// Progress enables the progress indicator on interactive terminals.
	Progress bool
}
