package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, want BookmarkType) bool {
	for _, b := range bookmarks {
		if b.Type == want {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_BumperHarvest(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 180), GramsHarvested: 40})
	}

	if !hasBookmark(bd.Check(WindowStats{WindowEnd: 900, GramsHarvested: 200}), BookmarkBumperHarvest) {
		t.Error("expected bumper_harvest bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEnd: 1080, GramsHarvested: 50}), BookmarkBumperHarvest) {
		t.Error("ordinary harvest should not trigger")
	}
}

func TestBookmarkDetector_NewStrain(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if hasBookmark(bd.Check(WindowStats{Unlocked: 3}), BookmarkNewStrain) {
		t.Error("first window only sets the baseline")
	}
	if hasBookmark(bd.Check(WindowStats{Unlocked: 3}), BookmarkNewStrain) {
		t.Error("unchanged count should not trigger")
	}
	if !hasBookmark(bd.Check(WindowStats{Unlocked: 4}), BookmarkNewStrain) {
		t.Error("expected new_strain bookmark")
	}
}

func TestBookmarkDetector_Recovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{Plants: 2, HealthMean: 40})
	if hasBookmark(bd.Check(WindowStats{Plants: 2, HealthMean: 70}), BookmarkGardenRecovery) {
		t.Error("70 is not yet recovered")
	}
	if !hasBookmark(bd.Check(WindowStats{Plants: 2, HealthMean: 85}), BookmarkGardenRecovery) {
		t.Error("expected garden_recovery bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{Plants: 2, HealthMean: 90}), BookmarkGardenRecovery) {
		t.Error("recovery should fire once per dip")
	}
}

func TestBookmarkDetector_SteadyFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 8; i++ {
		if hasBookmark(bd.Check(WindowStats{Plants: 4, HealthMean: 92, HealthStd: 2}), BookmarkSteadyGarden) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("steady_garden fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_PestCrisis(t *testing.T) {
	bd := NewBookmarkDetector(5)
	if !hasBookmark(bd.Check(WindowStats{PestOutbreaks: 3}), BookmarkPestCrisis) {
		t.Error("expected pest_crisis bookmark")
	}
}
