// Package walker traverses the resolved scan roots and applies the filter
// engine to everything it finds.
//
// Traversal is depth-first and lexical within each directory, with roots
// visited in their given order, so the candidate sequence is stable across
// runs on the same tree. Directories the engine prunes are never descended
// into, and symbolic links are never followed.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ctxgen/internal/filter"
	"ctxgen/internal/logger"
	"ctxgen/internal/model"
	"ctxgen/internal/pathutil"
)

// Candidate is one regular file seen by traversal, together with the filter
// verdict for it. Rejected candidates are kept so dry runs and verbose
// diagnostics can report why a file was turned away.
type Candidate struct {
	// Rel is the slash-separated path relative to the project root, or the
	// absolute path when the file lies outside it.
	Rel string

	// Abs is the absolute path used for reading the file.
	Abs string

	// SizeBytes is the file size reported by traversal.
	SizeBytes int64

	// Decision is the filter verdict for this file.
	Decision filter.Decision
}

// Walk traverses roots in order and returns every regular file found,
// annotated with the engine's decision. Roots may be directories or single
// files. A root that cannot be read fails the walk; errors below a root are
// counted and traversal continues.
func Walk(ctx context.Context,
	projectRoot string, roots []string, engine *filter.Engine, stats *model.Stats, verbose bool,
) ([]Candidate, error) {
	var candidates []Candidate
	seen := make(map[string]struct{})

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, dirEnt fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				if path == root {
					return err
				}
				if verbose {
					var filepathErr *os.PathError
					if errors.As(err, &filepathErr) {
						logger.ErrorAttrs(ctx, "error accessing path",
							slog.String("path", filepathErr.Path), slog.String("op", filepathErr.Op),
							slog.String("err", filepathErr.Err.Error()))
					} else {
						logger.ErrorAttrs(ctx, "error accessing path", slog.String("path", path),
							slog.String("err", err.Error()))
					}
				}
				stats.IncrementErrorCount()
				stats.AddSkip(relTo(projectRoot, path), model.ReasonIOError)
				return nil
			}

			if dirEnt.IsDir() {
				// The root itself was chosen explicitly and is never pruned.
				if path == root {
					return nil
				}
				if engine.ShouldPruneDir(relTo(projectRoot, path), path) {
					if verbose {
						logger.InfoAttrs(ctx, "pruning directory", slog.String("path", path))
					}
					stats.IncrementPrunedDirs()
					return filepath.SkipDir
				}
				return nil
			}

			if !dirEnt.Type().IsRegular() {
				return nil
			}

			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}

			info, err := dirEnt.Info()
			if err != nil {
				if verbose {
					var filepathErr *os.PathError
					if errors.As(err, &filepathErr) {
						logger.ErrorAttrs(ctx, "error getting file info",
							slog.String("path", filepathErr.Path), slog.String("op", filepathErr.Op),
							slog.String("err", filepathErr.Err.Error()))
					} else {
						logger.ErrorAttrs(ctx, "error getting file info", slog.String("path", path),
							slog.String("err", err.Error()))
					}
				}
				stats.IncrementErrorCount()
				stats.AddSkip(relTo(projectRoot, path), model.ReasonIOError)
				return nil
			}

			rel := relTo(projectRoot, path)
			decision := engine.Decide(rel, path, info.Size())

			stats.IncrementTotalFiles()
			if decision.Admitted {
				stats.IncrementAdmittedFiles()
			} else {
				if verbose {
					logger.InfoAttrs(ctx, "rejecting file", slog.String("path", path),
						slog.String("reason", string(decision.Reason)))
				}
				stats.IncrementRejectedFiles()
			}

			candidates = append(candidates, Candidate{
				Rel:       rel,
				Abs:       path,
				SizeBytes: info.Size(),
				Decision:  decision,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", root, err)
		}
	}

	return candidates, nil
}

// relTo makes path relative to the project root in slash form. Paths outside
// the root stay absolute so reports never show ".." segments.
func relTo(projectRoot, path string) string {
	rel, err := pathutil.RelSlash(projectRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return filepath.ToSlash(path)
	}
	return rel
}
