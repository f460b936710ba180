// Package analyze inspects a target project against the infrastructure
// checklist and emits a read-only report with migration recommendations.
// It shares nothing with the sync path except the checklist configuration
// and never mutates the project.
package analyze

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// Run evaluates every checklist item against targetRoot, in checklist order.
// Probe failures count as absent rather than failing the analysis, so the
// report is always produced.
func Run(targetRoot string, checks []config.Check) *templatesync.AnalysisReport {
	report := &templatesync.AnalysisReport{Target: targetRoot}

	for _, chk := range checks {
		present := probe(targetRoot, chk)
		report.Checks = append(report.Checks, templatesync.CheckStatus{
			Name:        chk.Name,
			Description: chk.Description,
			Present:     present,
		})
		if !present && chk.Recommendation != "" {
			report.Recommendations = append(report.Recommendations, chk.Recommendation)
		}
	}
	return report
}

// probe decides presence for one checklist item. Directories count as present
// regardless of contents. A Contains probe is a plain substring search — a
// key-presence check, not a parse — so commented-out text can false-positive;
// that limitation is accepted.
func probe(targetRoot string, chk config.Check) bool {
	if chk.Contains != "" {
		data, err := os.ReadFile(filepath.Join(targetRoot, filepath.FromSlash(chk.Paths[0])))
		if err != nil {
			return false
		}
		return strings.Contains(string(data), chk.Contains)
	}

	for _, p := range chk.Paths {
		info, err := os.Stat(filepath.Join(targetRoot, filepath.FromSlash(p)))
		if err != nil {
			continue
		}
		if chk.Kind == config.KindDirectory && !info.IsDir() {
			continue
		}
		if chk.Kind == config.KindFile && info.IsDir() {
			continue
		}
		return true
	}
	return false
}
