package game

import (
	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/systems"
	"github.com/pthm-cable/canopy/telemetry"
)

// Update advances the session by one frame.
func (s *Session) Update() {
	s.Step(s.cfg.Sim.TimeSpeed)
}

// Step advances game time by dt. The clock and weather move first, then
// every active plant ages by dt. Plants do not read each other, so the
// sweep order only affects which random draws each plant receives.
func (s *Session) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if s.perf != nil {
		s.perf.StartTick()
		defer s.perf.EndTick()
	}

	s.phase(telemetry.PhaseWeather)
	s.updateWeather(dt)

	s.phase(telemetry.PhaseGrowth)
	s.updatePlants(dt)

	s.phase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
}

func (s *Session) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

func (s *Session) updateWeather(dt float64) {
	late := 0
	s.garden.each(func(p *components.Plant) {
		if p.Stage >= components.StageFlowering {
			late++
		}
	})

	rep := s.weather.Advance(&s.clock, &s.wx, dt, late, s.rng)
	if !rep.NewDay {
		return
	}
	if rep.Changed {
		s.logger.Debug("weather changed", "day", s.clock.Day, "from", rep.From, "to", rep.To)
	}
	if rep.FrostWarnings > 0 {
		s.record(telemetry.NewFrostEvent(s.clock.Time))
		s.notify(LevelWarning, "Frost warning! Cold snap on day %d", s.clock.Day+1)
	}
}

// updatePlants sweeps the garden, then reports outbreaks and ripe plants.
func (s *Session) updatePlants(dt float64) {
	type event struct {
		plant components.Plant
		res   systems.TickResult
	}
	var events []event

	light := s.inv.LightCapacity
	s.garden.each(func(p *components.Plant) {
		def, ok := s.catalog.Get(p.Strain)
		if !ok {
			// Restore and planting both reject unknown strains.
			return
		}
		env := systems.Environment{
			LightCapacity: light,
			DayNightPhase: s.clock.Phase,
			WaterDecay:    s.wx.WaterDecay(p.Location, s.cfg),
		}
		res := s.growth.Update(p, def, dt, env, s.rng)
		s.lifetime.Observe(p)
		if res.PestOutbreak || (res.StageChanged && res.To == components.StageHarvest) {
			events = append(events, event{plant: *p, res: res})
		}
	})

	for _, ev := range events {
		p := &ev.plant
		if ev.res.PestOutbreak {
			s.lifetime.RecordPestOutbreak(p.ID)
			s.record(telemetry.NewPestEvent(s.clock.Time, p.ID, ev.res.PestIncrease))
			s.notify(LevelWarning, "Pests detected on %s!", p.Strain)
		}
		if ev.res.StageChanged && ev.res.To == components.StageHarvest {
			if p.Gender == components.Female {
				s.notify(LevelSuccess, "%s is ready to harvest! (%.0fg)", p.Strain, p.Yield)
			} else {
				s.notify(LevelSuccess, "%s (male) is ready for seed collection", p.Strain)
			}
		}
	}
}

func (s *Session) record(e telemetry.Event) {
	if s.collector != nil {
		s.collector.Record(e)
	}
}
