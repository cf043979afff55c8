// Package pipeline runs one generation end to end: filter compilation,
// traversal, loading, optional minification, report assembly, and output.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lukechampine.com/blake3"

	"ctxgen/internal/config"
	"ctxgen/internal/filter"
	"ctxgen/internal/loader"
	"ctxgen/internal/minify"
	"ctxgen/internal/model"
	"ctxgen/internal/output"
	"ctxgen/internal/walker"
)

// Result carries what one run produced. Report is nil for dry runs, which
// classify every candidate but never assemble a document.
type Result struct {
	// Report is the assembled document model, already written to its
	// destination when this call returns.
	Report *model.Report

	// Candidates are all files traversal saw, with their decisions, in
	// traversal order.
	Candidates []walker.Candidate

	// Stats are the run counters, with Duration set.
	Stats *model.Stats
}

// Run executes one generation for the resolved configuration, writing the
// document to its destination. Dry runs stop after load classification.
func Run(ctx context.Context, res *config.Resolved, version string) (*Result, error) {
	return run(ctx, res, version, time.Now)
}

func run(ctx context.Context, res *config.Resolved, version string, now func() time.Time) (*Result, error) {
	engine, err := filter.NewEngine(res.Filter)
	if err != nil {
		return nil, fmt.Errorf("error compiling filters: %w", err)
	}

	s := &model.Stats{StartTime: time.Now()}

	// Phase 1: Walk the roots and decide every candidate
	candidates, err := walker.Walk(ctx, res.ProjectRoot, res.Roots, engine, s, res.Verbose)
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}

	// Phase 2: Load admitted files
	items := make([]loader.Item, 0, len(candidates))
	for _, c := range candidates {
		if c.Decision.Admitted {
			items = append(items, loader.Item{Rel: c.Rel, Abs: c.Abs})
		}
	}

	records, err := loader.New(res.Capabilities, s, res.Verbose).LoadAll(ctx, items, res.Workers)
	if err != nil {
		return nil, fmt.Errorf("error loading files: %w", err)
	}

	result := &Result{Candidates: candidates, Stats: s}

	// Dry runs end here: every decision and skip reason is known, and no
	// document is assembled or written.
	if res.DryRun {
		s.Duration = time.Since(s.StartTime)
		return result, nil
	}

	// Phase 3: Minify loaded content
	if res.Minify {
		records = minifyRecords(records, res.Preset.Language, s)
	}

	// Phase 4: Assemble the report
	result.Report = &model.Report{
		Metadata: model.RunMetadata{
			ToolVersion:   version,
			ProjectRoot:   res.ProjectRoot,
			GeneratedAt:   now(),
			FileCount:     len(records),
			ContentDigest: contentDigest(records),
		},
		Files: records,
	}
	s.Duration = time.Since(s.StartTime)

	// Phase 5: Format and write the document
	if err := writeReport(result.Report, res.Format, res.OutputPath); err != nil {
		return nil, err
	}

	return result, nil
}

// minifyRecords strips comments from every record, re-digests changed
// content, and drops records left whitespace-only, mirroring the loader's
// empty rule.
func minifyRecords(records []model.FileRecord, language string, s *model.Stats) []model.FileRecord {
	kept := records[:0]
	for _, rec := range records {
		minified := minify.Minify(rec.Content, language)
		if strings.TrimSpace(minified) == "" {
			s.AddSkip(rec.Path, model.ReasonEmpty)
			continue
		}
		if minified != rec.Content {
			rec.Content = minified
			rec.Digest = loader.DigestString(minified)
		}
		kept = append(kept, rec)
	}
	return kept
}

// contentDigest computes a Blake3 hash over the ordered (path, content)
// sequence. Two reports with equal digests carry identical content.
func contentDigest(records []model.FileRecord) string {
	hasher := blake3.New(32, nil)
	for _, rec := range records {
		_, _ = io.WriteString(hasher, rec.Path)
		_, _ = hasher.Write([]byte{0})
		_, _ = io.WriteString(hasher, rec.Content)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// writeReport renders the report in the named format, atomically when a
// destination path is set and to stdout otherwise.
func writeReport(report *model.Report, format, outputPath string) error {
	reg, err := output.InitFormatters()
	if err != nil {
		return fmt.Errorf("error initializing formatters: %w", err)
	}

	if outputPath == "" {
		if err := reg.Format(format, report, os.Stdout); err != nil {
			return fmt.Errorf("error formatting report: %w", err)
		}
		return nil
	}

	render := func(w io.Writer) error {
		return reg.Format(format, report, w)
	}
	if err := output.WriteAtomic(outputPath, render); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
