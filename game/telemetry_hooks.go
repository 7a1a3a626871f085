package game

import (
	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Session) flushTelemetry() {
	if s.collector == nil || !s.collector.ShouldFlush(s.clock.Time) {
		return
	}

	stats := s.collector.Flush(s.clock.Time, s.gardenState())

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}
	s.logger.Debug("window", "stats", stats)

	if err := s.output.WriteTelemetry(stats); err != nil {
		s.logger.Error("failed to write telemetry", "error", err)
	}
	if s.perf != nil {
		if err := s.output.WritePerf(s.perf.Stats(), stats.WindowEnd); err != nil {
			s.logger.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarks.Check(stats) {
		bm.LogBookmark()
		if err := s.output.WriteBookmark(bm); err != nil {
			s.logger.Error("failed to write bookmark", "error", err)
		}
	}
}

// gardenState samples the garden for a telemetry window.
func (s *Session) gardenState() telemetry.GardenState {
	healths := make([]float64, 0, s.garden.count())
	s.garden.each(func(p *components.Plant) {
		healths = append(healths, p.Health)
	})
	return telemetry.GardenState{
		Day:      s.clock.Day,
		Weather:  s.wx.Kind.String(),
		Money:    s.inv.Money,
		Seeds:    len(s.seeds),
		Unlocked: s.unlocked.Len(),
		Healths:  healths,
	}
}

// finishPlant closes the lifetime record of a plant leaving the garden
// through harvest and appends it to the harvest ledger.
func (s *Session) finishPlant(p *components.Plant, lot *components.HarvestLot, seeds int) {
	rec := s.lifetime.Finish(p, s.clock.Time, lot, seeds)
	if err := s.output.WriteHarvest(rec); err != nil {
		s.logger.Error("failed to write harvest", "error", err)
	}
}
