// Package filter decides, per candidate path, whether it belongs in the
// generated context document.
package filter

import (
	"ctxgen/internal/model"
	"ctxgen/internal/pathutil"
)

// CommonExcludePatterns is the base exclude set shared by every ecosystem:
// hidden entries, build output, and dependency caches. It is applied at the
// preset tier, so explicit user includes can still rescue paths from it.
var CommonExcludePatterns = []string{
	".*",
	"dist",
	"build",
	"node_modules",
	"__pycache__",
}

// Decision is the outcome of filtering one candidate path.
type Decision struct {
	// Admitted is true when the path should be loaded into the report.
	Admitted bool

	// Reason classifies the rejection; unset when Admitted.
	Reason model.Reason
}

var admitted = Decision{Admitted: true}

func rejected(reason model.Reason) Decision {
	return Decision{Reason: reason}
}

// Options configures an [Engine]. User and preset pattern sets are kept
// separate because they carry different precedence: a user include overrides
// a preset exclude, while a user exclude is never overridden.
type Options struct {
	// SelfExcludePaths are absolute paths that are always pruned: the
	// tool's own workspace and the output document it writes.
	SelfExcludePaths []string

	// MaxFileSizeBytes rejects larger files; 0 disables the limit.
	MaxFileSizeBytes int64

	// UserIncludes and UserExcludes come from flags and the config file.
	UserIncludes []string
	UserExcludes []string

	// PresetIncludes and PresetExcludes come from the selected preset
	// (plus the common exclude set when enabled).
	PresetIncludes []string
	PresetExcludes []string
}

// Engine evaluates candidate paths against the merged filter rules.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	selfExcludes  []string
	maxFileSize   int64
	userInclude   *Matcher
	userExclude   *Matcher
	presetInclude *Matcher
	presetExclude *Matcher
	haveIncludes  bool
}

// NewEngine compiles the filter rules. Invalid glob patterns are reported
// here, before any traversal begins.
func NewEngine(opts Options) (*Engine, error) {
	userInclude, err := NewMatcher(opts.UserIncludes)
	if err != nil {
		return nil, err
	}
	userExclude, err := NewMatcher(opts.UserExcludes)
	if err != nil {
		return nil, err
	}
	presetInclude, err := NewMatcher(opts.PresetIncludes)
	if err != nil {
		return nil, err
	}
	presetExclude, err := NewMatcher(opts.PresetExcludes)
	if err != nil {
		return nil, err
	}

	return &Engine{
		selfExcludes:  opts.SelfExcludePaths,
		maxFileSize:   opts.MaxFileSizeBytes,
		userInclude:   userInclude,
		userExclude:   userExclude,
		presetInclude: presetInclude,
		presetExclude: presetExclude,
		haveIncludes:  !userInclude.Empty() || !presetInclude.Empty(),
	}, nil
}

// Decide returns the admit/reject outcome for one file. rel is the
// slash-separated path relative to its root, abs the resolved absolute path.
//
// Rules apply in fixed order: self-exclusion, binary extension, excludes,
// includes, size. Within the exclude tier a user include rescues a path only
// from a preset exclude; a user exclude always wins, even against a user
// include.
func (e *Engine) Decide(rel, abs string, sizeBytes int64) Decision {
	if e.underSelfExclude(abs) {
		return rejected(model.ReasonSelf)
	}

	if IsBinaryExt(rel) {
		return rejected(model.ReasonBinary)
	}

	userIncluded := e.userInclude.MatchesFile(rel)

	if e.userExclude.MatchesPath(rel) {
		return rejected(model.ReasonExcluded)
	}
	if !userIncluded && e.presetExclude.MatchesPath(rel) {
		return rejected(model.ReasonExcluded)
	}

	if e.haveIncludes && !userIncluded && !e.presetInclude.MatchesFile(rel) {
		return rejected(model.ReasonNotIncluded)
	}

	if e.maxFileSize > 0 && sizeBytes > e.maxFileSize {
		return rejected(model.ReasonTooLarge)
	}

	return admitted
}

// ShouldPruneDir reports whether traversal may skip the directory without
// descending. Self-excluded and user-excluded directories always prune.
// Preset-excluded directories prune only when no user includes exist, since
// a user include may rescue individual files underneath.
func (e *Engine) ShouldPruneDir(rel, abs string) bool {
	if e.underSelfExclude(abs) {
		return true
	}
	if e.userExclude.MatchesDirPrefix(rel) {
		return true
	}
	if e.userInclude.Empty() && e.presetExclude.MatchesDirPrefix(rel) {
		return true
	}
	return false
}

func (e *Engine) underSelfExclude(abs string) bool {
	for _, self := range e.selfExcludes {
		if pathutil.IsWithin(self, abs) {
			return true
		}
	}
	return false
}
