// Package display renders run diagnostics for the terminal: the active-filter
// summary, the dry-run listing, and the end-of-run aggregate. Diagnostics go
// to their own writer, stderr in practice, so stdout carries nothing but the
// generated document.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/dustin/go-humanize"

	"ctxgen/internal/config"
	"ctxgen/internal/model"
	"ctxgen/internal/preset"
	"ctxgen/internal/walker"
)

// Styles use True Color (24-bit hex codes); the color-profile writer degrades
// them to whatever the terminal supports and strips them entirely for pipes.
var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B266FF")).Bold(true) // purple
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF"))            // deep sky blue
	sizeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFFF"))            // cyan blue
	rejectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))            // gray
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7F50"))            // coral orange
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))            // gray
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99")).Bold(true) // spring green
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF66"))            // green
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))            // gold
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3333"))            // red
)

// Renderer writes styled diagnostics to a single destination. Writes are
// best-effort; a failing terminal never fails the run.
type Renderer struct {
	w io.Writer
}

// New wraps dst in a color-profile-aware writer and returns a Renderer.
func New(dst io.Writer) *Renderer {
	return &Renderer{w: colorprofile.NewWriter(dst, os.Environ())}
}

// ShowFilters prints the effective preset and user patterns for the run.
func (r *Renderer) ShowFilters(res *config.Resolved) {
	fmt.Fprintln(r.w, headerStyle.Render("🧭 Active filters:"))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("🧩 Preset:"), valueStyle.Render(res.PresetName))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("➕ Include patterns:"), valueStyle.Render(patternList(res.Filter.UserIncludes)))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("➖ Exclude patterns:"), valueStyle.Render(patternList(res.Filter.UserExcludes)))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("📏 Max file size:"), valueStyle.Render(sizeLimit(res.MaxFileSizeBytes)))
}

// ShowDryRun prints every candidate in traversal order with its decision.
// Admitted files that load classification set aside are shown with their
// skip reason, so the listing matches what a real run would include.
func (r *Renderer) ShowDryRun(candidates []walker.Candidate, s *model.Stats) {
	fmt.Fprintln(r.w, headerStyle.Render("🔍 Dry run, no document will be written:"))

	skipped := make(map[string]model.Reason)
	for _, skip := range s.Skips() {
		skipped[skip.Path] = skip.Reason
	}

	var included uint64
	var totalSize int64
	for _, c := range candidates {
		switch {
		case !c.Decision.Admitted:
			line := rejectStyle.Render(fmt.Sprintf("🚫 %s (%s)", c.Rel, c.Decision.Reason))
			fmt.Fprintf(r.w, "   %s\n", line)
		case skipped[c.Rel] != "":
			line := skipStyle.Render(fmt.Sprintf("⏭️ %s (skip: %s)", c.Rel, skipped[c.Rel]))
			fmt.Fprintf(r.w, "   %s\n", line)
		default:
			included++
			totalSize += c.SizeBytes
			name := fileStyle.Render(fmt.Sprintf("📄 %s", c.Rel))
			size := sizeStyle.Render(fmt.Sprintf("(%s)", humanize.IBytes(uint64(c.SizeBytes))))
			fmt.Fprintf(r.w, "   %s %s\n", name, size)
		}
	}

	trailer := fmt.Sprintf("📝 Would include %d files (%s)", included, humanize.IBytes(uint64(totalSize)))
	fmt.Fprintf(r.w, "\n%s\n", okStyle.Render(trailer))
}

// ShowSummary prints the end-of-run aggregate: document size and destination,
// warnings, the skip breakdown, and, when showStats is set, detailed counters.
func (r *Renderer) ShowSummary(s *model.Stats, fileCount int, outputPath string, showStats bool) {
	fmt.Fprintln(r.w, headerStyle.Render("\n📊 Summary:"))

	if fileCount > 0 {
		files := labelStyle.Render("📝 Files in context:") + " " + valueStyle.Render(fmt.Sprintf("%d", fileCount))
		fmt.Fprintf(r.w, "   %s\n", files)
		if outputPath != "" {
			dest := labelStyle.Render("💾 Document written to:") + " " + valueStyle.Render(outputPath)
			fmt.Fprintf(r.w, "   %s\n", dest)
		}
	} else {
		fmt.Fprintf(r.w, "   %s\n", warnStyle.Render("⚠️ No files matched the active filters"))
	}

	for _, warning := range s.Warnings() {
		fmt.Fprintf(r.w, "   %s\n", warnStyle.Render("⚠️ "+warning))
	}

	if skips := s.Skips(); len(skips) > 0 {
		line := skipStyle.Render("⏭️ Skipped while loading:") + " " + valueStyle.Render(skipBreakdown(skips))
		fmt.Fprintf(r.w, "   %s\n", line)
	}

	if showStats {
		fmt.Fprintln(r.w, headerStyle.Render("\n📈 Detailed Statistics:"))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("📁 Files seen:"), valueStyle.Render(fmt.Sprintf("%d", s.TotalFiles)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("✅ Files admitted:"), valueStyle.Render(fmt.Sprintf("%d", s.AdmittedFiles)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("🚫 Files rejected:"), valueStyle.Render(fmt.Sprintf("%d", s.RejectedFiles)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("📂 Directories pruned:"), valueStyle.Render(fmt.Sprintf("%d", s.PrunedDirs)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("📖 Files loaded:"), valueStyle.Render(fmt.Sprintf("%d", s.LoadedFiles)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("❌ Files with errors:"), errorStyle.Render(fmt.Sprintf("%d", s.ErrorCount)))
		fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("⏱️ Processing time:"), valueStyle.Render(s.Duration.Round(time.Millisecond).String()))
		if s.LoadedFiles > 0 && s.Duration > 0 {
			rate := float64(s.LoadedFiles) / s.Duration.Seconds()
			fmt.Fprintf(r.w, "   %s %.1f files/second\n", warnStyle.Render("🚀 Processing rate:"), rate)
		}
	} else if s.ErrorCount > 0 {
		line := labelStyle.Render("❌ Files with errors:") + " " + errorStyle.Render(fmt.Sprintf("%d", s.ErrorCount))
		fmt.Fprintf(r.w, "   %s\n", line)
	}
}

// ShowPresetList prints every preset with a sample of its include patterns.
func (r *Renderer) ShowPresetList(presets []preset.Preset) {
	fmt.Fprintln(r.w, headerStyle.Render("🧩 Available presets:"))
	for _, ps := range presets {
		name := valueStyle.Render(ps.Name)
		patterns := labelStyle.Render(patternSample(ps.IncludePatterns, 4))
		fmt.Fprintf(r.w, "   📦 %s  %s\n", name, patterns)
	}
	fmt.Fprintf(r.w, "\n   %s\n", labelStyle.Render("Use \"auto\" to detect a preset from the project's marker files."))
}

// ShowPreset prints one preset's language tag and full pattern sets.
func (r *Renderer) ShowPreset(ps preset.Preset) {
	fmt.Fprintln(r.w, headerStyle.Render(fmt.Sprintf("🧩 Preset %q:", ps.Name)))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("🗣️ Language:"), valueStyle.Render(ps.Language))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("➕ Include patterns:"), valueStyle.Render(patternList(ps.IncludePatterns)))
	fmt.Fprintf(r.w, "   %s %s\n", labelStyle.Render("➖ Exclude patterns:"), valueStyle.Render(patternList(ps.ExcludePatterns)))
}

// patternSample renders up to n patterns, with an ellipsis when truncated.
func patternSample(patterns []string, n int) string {
	if len(patterns) == 0 {
		return "(no patterns)"
	}
	if len(patterns) <= n {
		return strings.Join(patterns, ", ")
	}
	return strings.Join(patterns[:n], ", ") + ", ..."
}

func patternList(patterns []string) string {
	if len(patterns) == 0 {
		return "(none)"
	}
	return strings.Join(patterns, ", ")
}

func sizeLimit(maxBytes int64) string {
	if maxBytes <= 0 {
		return "unlimited"
	}
	return humanize.IBytes(uint64(maxBytes))
}

// skipBreakdown renders per-reason counts in a fixed reason order.
func skipBreakdown(skips []model.SkipInfo) string {
	counts := make(map[model.Reason]int, len(skips))
	for _, skip := range skips {
		counts[skip.Reason]++
	}

	var parts []string
	for _, reason := range []model.Reason{model.ReasonEmpty, model.ReasonIOError} {
		if counts[reason] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, counts[reason]))
		}
	}
	return strings.Join(parts, ", ")
}
