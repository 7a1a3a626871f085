package telemetry

// Collector accumulates events within game-time windows and produces WindowStats.
type Collector struct {
	window      float64
	windowStart float64

	// Event counters for current window
	planted        int
	harvests       int
	gramsHarvested float64
	seedsCollected int
	crosses        int
	crossFailures  int
	pestOutbreaks  int
	frosts         int
	careActions    int
	earned         float64
}

// NewCollector creates a new stats collector.
// window: how much game time each stats window covers.
func NewCollector(window float64) *Collector {
	if window <= 0 {
		window = 1
	}
	return &Collector{window: window}
}

// Record counts one event in the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventPlanted:
		c.planted++
	case EventHarvested:
		c.harvests++
		c.gramsHarvested += e.Amount
	case EventSeedsCollected:
		c.seedsCollected += int(e.Amount)
	case EventCrossed:
		c.crosses++
	case EventCrossFailed:
		c.crossFailures++
	case EventPestOutbreak:
		c.pestOutbreaks++
	case EventFrost:
		c.frosts++
	case EventSold:
		c.earned += e.Amount
	case EventCare:
		c.careActions++
	}
}

// ShouldFlush returns true if enough game time has passed to flush the window.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.window
}

// GardenState is the point-in-time garden sample taken at flush.
type GardenState struct {
	Day      int
	Weather  string
	Money    float64
	Seeds    int
	Unlocked int
	Healths  []float64 // one per active plant
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, g GardenState) WindowStats {
	health := ComputeDistribution(g.Healths)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Day:         g.Day,
		Weather:     g.Weather,

		Plants: len(g.Healths),
		Money:  g.Money,
		Seeds:  g.Seeds,

		Planted:        c.planted,
		Harvests:       c.harvests,
		GramsHarvested: c.gramsHarvested,
		SeedsCollected: c.seedsCollected,
		Crosses:        c.crosses,
		CrossFailures:  c.crossFailures,
		PestOutbreaks:  c.pestOutbreaks,
		Frosts:         c.frosts,
		CareActions:    c.careActions,
		Earned:         c.earned,

		HealthMean: health.Mean,
		HealthStd:  health.Std,
		HealthP10:  health.P10,
		HealthP50:  health.P50,
		HealthP90:  health.P90,

		Unlocked: g.Unlocked,
	}

	// Reset for next window
	*c = Collector{window: c.window, windowStart: now}

	return stats
}

// Window returns the game time covered by each window.
func (c *Collector) Window() float64 {
	return c.window
}
