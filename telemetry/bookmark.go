package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBumperHarvest  BookmarkType = "bumper_harvest"
	BookmarkNewStrain      BookmarkType = "new_strain"
	BookmarkPestCrisis     BookmarkType = "pest_crisis"
	BookmarkGardenRecovery BookmarkType = "garden_recovery"
	BookmarkSteadyGarden   BookmarkType = "steady_garden"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Time        float64      `csv:"time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"time", b.Time,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	lastUnlocked      int
	sawLowHealth      bool
	steadyWindowCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
		lastUnlocked: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	checks := []func(WindowStats) *Bookmark{
		bd.checkBumperHarvest,
		bd.checkNewStrain,
		bd.checkPestCrisis,
		bd.checkRecovery,
		bd.checkSteady,
	}
	for _, check := range checks {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkBumperHarvest fires when a window's grams exceed twice the rolling average.
func (bd *BookmarkDetector) checkBumperHarvest(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.GramsHarvested <= 0 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.GramsHarvested
	}
	avg := total / float64(len(history))
	if avg == 0 || stats.GramsHarvested <= avg*2 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkBumperHarvest,
		Time:        stats.WindowEnd,
		Description: fmt.Sprintf("Harvested %.0fg, %.1fx the average (%.0fg)", stats.GramsHarvested, stats.GramsHarvested/avg, avg),
	}
}

// checkNewStrain fires whenever the unlocked count grows. The first window
// only sets the baseline.
func (bd *BookmarkDetector) checkNewStrain(stats WindowStats) *Bookmark {
	prev := bd.lastUnlocked
	bd.lastUnlocked = stats.Unlocked
	if prev < 0 || stats.Unlocked <= prev {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkNewStrain,
		Time:        stats.WindowEnd,
		Description: fmt.Sprintf("Unlocked strains went from %d to %d", prev, stats.Unlocked),
	}
}

func (bd *BookmarkDetector) checkPestCrisis(stats WindowStats) *Bookmark {
	if stats.PestOutbreaks < 3 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPestCrisis,
		Time:        stats.WindowEnd,
		Description: fmt.Sprintf("%d pest outbreaks in one window", stats.PestOutbreaks),
	}
}

// checkRecovery fires when mean health climbs back to 80 after dropping below 50.
func (bd *BookmarkDetector) checkRecovery(stats WindowStats) *Bookmark {
	if stats.Plants == 0 {
		return nil
	}
	if stats.HealthMean < 50 {
		bd.sawLowHealth = true
		return nil
	}
	if !bd.sawLowHealth || stats.HealthMean < 80 {
		return nil
	}
	bd.sawLowHealth = false
	return &Bookmark{
		Type:        BookmarkGardenRecovery,
		Time:        stats.WindowEnd,
		Description: fmt.Sprintf("Garden health recovered to %.0f", stats.HealthMean),
	}
}

// checkSteady fires once after five consecutive healthy, even windows.
func (bd *BookmarkDetector) checkSteady(stats WindowStats) *Bookmark {
	if stats.Plants == 0 || stats.HealthMean < 80 || stats.HealthStd > 5 {
		bd.steadyWindowCount = 0
		return nil
	}
	bd.steadyWindowCount++
	if bd.steadyWindowCount != 5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSteadyGarden,
		Time:        stats.WindowEnd,
		Description: fmt.Sprintf("%d plants held %.0f mean health over 5 windows", stats.Plants, stats.HealthMean),
	}
}
