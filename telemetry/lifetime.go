package telemetry

import (
	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
)

// LifetimeStats tracks per-plant statistics from planting to removal.
type LifetimeStats struct {
	Strain    string
	Location  components.Location
	PlantedAt float64

	CareActions   int
	PestOutbreaks int
	PeakPests     float64
	MinHealth     float64
}

// HarvestRecord is one row of the harvest ledger.
type HarvestRecord struct {
	PlantID       string  `csv:"plant_id"`
	Strain        string  `csv:"strain"`
	Location      string  `csv:"location"`
	Gender        string  `csv:"gender"`
	PlantedAt     float64 `csv:"planted_at"`
	HarvestedAt   float64 `csv:"harvested_at"`
	GrowTime      float64 `csv:"grow_time"`
	CareActions   int     `csv:"care_actions"`
	PestOutbreaks int     `csv:"pest_outbreaks"`
	PeakPests     float64 `csv:"peak_pests"`
	MinHealth     float64 `csv:"min_health"`
	Grams         float64 `csv:"grams"`
	QualityPct    int     `csv:"quality_pct"`
	PricePerGram  float64 `csv:"price_per_gram"`
	Value         float64 `csv:"value"`
	Seeds         int     `csv:"seeds"`
}

// LifetimeTracker manages per-plant lifetime statistics.
type LifetimeTracker struct {
	stats map[uuid.UUID]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uuid.UUID]*LifetimeStats),
	}
}

// Register starts tracking a newly planted plant.
func (lt *LifetimeTracker) Register(p *components.Plant, plantedAt float64) {
	lt.stats[p.ID] = &LifetimeStats{
		Strain:    p.Strain,
		Location:  p.Location,
		PlantedAt: plantedAt,
		PeakPests: p.Pests,
		MinHealth: p.Health,
	}
}

// Get returns the lifetime stats for a plant, or nil if not found.
func (lt *LifetimeTracker) Get(id uuid.UUID) *LifetimeStats {
	return lt.stats[id]
}

// Remove drops a plant's stats and returns them.
func (lt *LifetimeTracker) Remove(id uuid.UUID) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordCare increments the care action count.
func (lt *LifetimeTracker) RecordCare(id uuid.UUID) {
	if s := lt.stats[id]; s != nil {
		s.CareActions++
	}
}

// RecordPestOutbreak increments the outbreak count.
func (lt *LifetimeTracker) RecordPestOutbreak(id uuid.UUID) {
	if s := lt.stats[id]; s != nil {
		s.PestOutbreaks++
	}
}

// Observe tracks peak pests and lowest health.
func (lt *LifetimeTracker) Observe(p *components.Plant) {
	s := lt.stats[p.ID]
	if s == nil {
		return
	}
	if p.Pests > s.PeakPests {
		s.PeakPests = p.Pests
	}
	if p.Health < s.MinHealth {
		s.MinHealth = p.Health
	}
}

// Finish removes the plant and returns its ledger row. lot is nil for males.
// Plants that were never registered (restored from a save) get a record
// with PlantedAt unknown (zero).
func (lt *LifetimeTracker) Finish(p *components.Plant, at float64, lot *components.HarvestLot, seeds int) HarvestRecord {
	s := lt.Remove(p.ID)
	if s == nil {
		s = &LifetimeStats{Strain: p.Strain, Location: p.Location, MinHealth: p.Health}
	}
	rec := HarvestRecord{
		PlantID:       p.ID.String(),
		Strain:        p.Strain,
		Location:      s.Location.String(),
		Gender:        p.Gender.String(),
		PlantedAt:     s.PlantedAt,
		HarvestedAt:   at,
		GrowTime:      at - s.PlantedAt,
		CareActions:   s.CareActions,
		PestOutbreaks: s.PestOutbreaks,
		PeakPests:     s.PeakPests,
		MinHealth:     s.MinHealth,
		Seeds:         seeds,
	}
	if lot != nil {
		rec.Grams = lot.AmountGrams
		rec.QualityPct = lot.QualityPct
		rec.PricePerGram = lot.PricePerGram
		rec.Value = lot.Value()
	}
	return rec
}

// Count returns the number of tracked plants.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
