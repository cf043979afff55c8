package model

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats tracks counters for one generation run. Counter methods are safe for
// concurrent use by the loader workers.
type Stats struct {
	// TotalFiles is the number of regular files seen by traversal.
	TotalFiles uint64 `json:"total_files" yaml:"total_files"`

	// AdmittedFiles is the number of files that passed filtering.
	AdmittedFiles uint64 `json:"admitted_files" yaml:"admitted_files"`

	// RejectedFiles is the number of files turned away by filtering.
	RejectedFiles uint64 `json:"rejected_files" yaml:"rejected_files"`

	// PrunedDirs is the number of directories traversal never descended into.
	PrunedDirs uint64 `json:"pruned_dirs" yaml:"pruned_dirs"`

	// LoadedFiles is the number of files decoded into records.
	LoadedFiles uint64 `json:"loaded_files" yaml:"loaded_files"`

	// SkippedFiles is the number of admitted files set aside during loading.
	SkippedFiles uint64 `json:"skipped_files" yaml:"skipped_files"`

	// ErrorCount is the number of recoverable errors encountered.
	ErrorCount uint64 `json:"error_count" yaml:"error_count"`

	// StartTime is the time the run started.
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// Duration is the total duration of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	mu       sync.Mutex
	skips    []SkipInfo
	warnings []string
}

// IncrementTotalFiles atomically increments the seen-file count.
func (s *Stats) IncrementTotalFiles() {
	atomic.AddUint64(&s.TotalFiles, 1)
}

// IncrementAdmittedFiles atomically increments the admitted-file count.
func (s *Stats) IncrementAdmittedFiles() {
	atomic.AddUint64(&s.AdmittedFiles, 1)
}

// IncrementRejectedFiles atomically increments the rejected-file count.
func (s *Stats) IncrementRejectedFiles() {
	atomic.AddUint64(&s.RejectedFiles, 1)
}

// IncrementPrunedDirs atomically increments the pruned-directory count.
func (s *Stats) IncrementPrunedDirs() {
	atomic.AddUint64(&s.PrunedDirs, 1)
}

// IncrementLoadedFiles atomically increments the loaded-file count.
func (s *Stats) IncrementLoadedFiles() {
	atomic.AddUint64(&s.LoadedFiles, 1)
}

// IncrementErrorCount atomically increments the error count.
func (s *Stats) IncrementErrorCount() {
	atomic.AddUint64(&s.ErrorCount, 1)
}

// GetLoadedFiles atomically retrieves the loaded-file count.
func (s *Stats) GetLoadedFiles() uint64 {
	return atomic.LoadUint64(&s.LoadedFiles)
}

// GetErrorCount atomically retrieves the error count.
func (s *Stats) GetErrorCount() uint64 {
	return atomic.LoadUint64(&s.ErrorCount)
}

// AddSkip records a file set aside during loading and bumps the skip counter.
func (s *Stats) AddSkip(path string, reason Reason) {
	atomic.AddUint64(&s.SkippedFiles, 1)
	s.mu.Lock()
	s.skips = append(s.skips, SkipInfo{Path: path, Reason: reason})
	s.mu.Unlock()
}

// Skips returns a copy of the recorded skips in the order they were added.
func (s *Stats) Skips() []SkipInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SkipInfo, len(s.skips))
	copy(out, s.skips)
	return out
}

// AddWarning records an aggregate warning. Duplicate messages are recorded
// once, so a degraded capability surfaces a single warning per run.
func (s *Stats) AddWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.warnings {
		if w == msg {
			return
		}
	}
	s.warnings = append(s.warnings, msg)
}

// Warnings returns a copy of the aggregated warnings.
func (s *Stats) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}
