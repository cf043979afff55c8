// Package loader reads admitted files and decodes them into report records.
//
// Decoding follows a fixed fallback chain: strict UTF-8 first, then an
// optional statistical charset detector, then Latin-1, which accepts any
// byte sequence. A file never fails to decode; it can only be set aside for
// being binary, empty, or unreadable.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"ctxgen/internal/logger"
	"ctxgen/internal/model"
)

// sniffLen is how many leading bytes feed the binary sniff and the charset
// detector.
const sniffLen = 8192

// minDetectConfidence is the detector confidence (0 to 100) below which a
// charset guess is ignored.
const minDetectConfidence = 70

// SkipError reports a file set aside during loading rather than failed.
type SkipError struct {
	Reason model.Reason
	Err    error
}

func (e *SkipError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("skipped (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("skipped (%s)", e.Reason)
}

func (e *SkipError) Unwrap() error { return e.Err }

// Item is one admitted file to load: the report path and the absolute path
// to read it from.
type Item struct {
	Rel string
	Abs string
}

// Loader decodes files into records, tracking skips and warnings on the
// run stats. Safe for concurrent use.
type Loader struct {
	detect  bool
	stats   *model.Stats
	verbose bool
}

// New returns a Loader honoring the run's capabilities.
func New(caps model.Capabilities, stats *model.Stats, verbose bool) *Loader {
	return &Loader{detect: caps.EncodingDetection, stats: stats, verbose: verbose}
}

// Load reads and decodes one file. The returned error is always a *SkipError
// when non-nil; loading has no other failure mode.
func (l *Loader) Load(ctx context.Context, rel, abs string) (model.FileRecord, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return model.FileRecord{}, &SkipError{Reason: model.ReasonIOError, Err: err}
	}

	sample := data[:min(len(data), sniffLen)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return model.FileRecord{}, &SkipError{Reason: model.ReasonBinary}
	}

	content, encoding := l.decode(ctx, rel, data, sample)
	if strings.TrimSpace(content) == "" {
		return model.FileRecord{}, &SkipError{Reason: model.ReasonEmpty}
	}

	return model.FileRecord{
		Path:      rel,
		SizeBytes: int64(len(data)),
		Encoding:  encoding,
		Digest:    DigestString(content),
		Content:   content,
	}, nil
}

// decode turns raw bytes into text, reporting which step of the fallback
// chain produced it.
func (l *Loader) decode(ctx context.Context, rel string, data, sample []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), model.EncodingUTF8
	}

	if !l.detect {
		l.stats.AddWarning("encoding detection is disabled; non-UTF-8 files were decoded as Latin-1")
		return latin1String(data), model.EncodingLatin1
	}

	if content, ok := l.detectAndDecode(ctx, rel, data, sample); ok {
		return content, model.EncodingDetected
	}
	return latin1String(data), model.EncodingLatin1
}

// detectAndDecode asks the statistical detector for a charset and decodes
// with it. Any failure along the way falls through to Latin-1.
func (l *Loader) detectAndDecode(ctx context.Context, rel string, data, sample []byte) (string, bool) {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result.Confidence < minDetectConfidence {
		return "", false
	}
	// Strict UTF-8 already failed, so a UTF-8 guess cannot be trusted.
	if strings.EqualFold(result.Charset, "UTF-8") {
		return "", false
	}

	enc, err := ianaindex.IANA.Encoding(result.Charset)
	if err != nil || enc == nil {
		return "", false
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", false
	}

	if l.verbose {
		logger.InfoAttrs(ctx, "detected encoding", slog.String("path", rel),
			slog.String("charset", result.Charset), slog.Int("confidence", result.Confidence))
	}
	return string(decoded), true
}

// LoadAll loads items concurrently and returns the records in item order.
// Skips are recorded on the run stats; only context cancellation is returned
// as an error.
func (l *Loader) LoadAll(ctx context.Context, items []Item, numWorkers int) ([]model.FileRecord, error) {
	if len(items) == 0 {
		return nil, ctx.Err()
	}
	numWorkers = max(numWorkers, 1)
	numWorkers = min(numWorkers, len(items))

	type loadResult struct {
		index  int
		record model.FileRecord
		err    error
	}

	workChan := make(chan int, len(items))
	resultChan := make(chan loadResult, len(items))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range workChan {
				if err := ctx.Err(); err != nil {
					resultChan <- loadResult{index: index, err: err}
					continue
				}
				record, err := l.Load(ctx, items[index].Rel, items[index].Abs)
				resultChan <- loadResult{index: index, record: record, err: err}
			}
		}()
	}

	for index := range items {
		workChan <- index
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Loading completes out of order; slots put records back in item order.
	slots := make([]*model.FileRecord, len(items))
	for result := range resultChan {
		if result.err != nil {
			var skip *SkipError
			if errors.As(result.err, &skip) {
				rel := items[result.index].Rel
				if l.verbose {
					if skip.Err != nil {
						logError(ctx, skip.Err, "read", rel)
					} else {
						logger.InfoAttrs(ctx, "skipping file", slog.String("path", rel),
							slog.String("reason", string(skip.Reason)))
					}
				}
				l.stats.AddSkip(rel, skip.Reason)
				if skip.Reason == model.ReasonIOError {
					l.stats.IncrementErrorCount()
				}
			}
			continue
		}
		record := result.record
		slots[result.index] = &record
		l.stats.IncrementLoadedFiles()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]model.FileRecord, 0, len(items))
	for _, record := range slots {
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

// DigestString returns the xxh3-64 digest of s in fixed-width hex.
func DigestString(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}

// latin1String decodes data as ISO 8859-1. Every byte maps to a code point,
// so this never fails.
func latin1String(data []byte) string {
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded)
}

// logError logs a read failure, unwrapping path errors for cleaner fields.
func logError(ctx context.Context, err error, action, filePath string) {
	if errors.Is(err, os.ErrNotExist) {
		logger.ErrorAttrs(ctx, "file removed between scan and load",
			slog.String("path", filePath), slog.String("err", err.Error()))
		return
	}
	var filepathErr *os.PathError
	if errors.As(err, &filepathErr) {
		logger.ErrorAttrs(ctx, "failed to "+action+" a file",
			slog.String("path", filepathErr.Path), slog.String("op", filepathErr.Op),
			slog.String("err", filepathErr.Err.Error()))
	} else {
		logger.ErrorAttrs(ctx, "failed to "+action+" a file",
			slog.String("path", filePath), slog.String("err", err.Error()))
	}
}
