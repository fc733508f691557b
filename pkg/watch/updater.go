package watch

import (
	"log/slog"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SheetReport is delivered for every sheet touched by a change batch.
// Removed is set when the sheet no longer exists; Results is then empty.
type SheetReport struct {
	Path    string
	Removed bool
	Results []LineResult
	Err     error
}

// SheetUpdater re-evaluates sheets named in change batches.
type SheetUpdater struct {
	report func(SheetReport)
	logger *slog.Logger
}

// NewUpdater creates a SheetUpdater that hands each report to fn.
func NewUpdater(fn func(SheetReport), logger *slog.Logger) *SheetUpdater {
	return &SheetUpdater{report: fn, logger: logger}
}

// HandleChanges processes a batch of change events in path order.
func (u *SheetUpdater) HandleChanges(events []ChangeEvent) {
	start := time.Now()

	sorted := append([]ChangeEvent(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, ev := range sorted {
		u.report(u.evaluate(ev))
	}

	u.logger.Debug("batch complete",
		"files", len(events),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

func (u *SheetUpdater) evaluate(ev ChangeEvent) SheetReport {
	results, err := EvaluateSheet(ev.Path)
	if err != nil {
		// A rename or remove leaves nothing to read.
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			u.logger.Info("sheet removed", "path", ev.Path)
			return SheetReport{Path: ev.Path, Removed: true}
		}
		u.logger.Warn("sheet unreadable", "path", ev.Path, "err", err)
		return SheetReport{Path: ev.Path, Err: err}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	u.logger.Info("sheet evaluated", "path", ev.Path, "lines", len(results), "failed", failed)
	return SheetReport{Path: ev.Path, Results: results}
}
