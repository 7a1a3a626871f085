package systems

import (
	"errors"
	"math"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/strains"
)

// ErrNotHarvestable is returned for plants that have not reached the harvest stage.
var ErrNotHarvestable = errors.New("plant is not ready for harvest")

// HarvestResult is what a plant turns into when cut.
type HarvestResult struct {
	Lot   *components.HarvestLot // nil for males
	Seeds []components.Seed
}

// HarvestSystem converts harvest-stage plants into lots and seeds.
type HarvestSystem struct {
	cfg    *config.Config
	growth *GrowthSystem
}

// NewHarvestSystem creates a harvest system.
func NewHarvestSystem(cfg *config.Config, growth *GrowthSystem) *HarvestSystem {
	return &HarvestSystem{cfg: cfg, growth: growth}
}

// Harvest resolves p. Females give a flower lot priced by quality and,
// when healthy, a few bonus seeds. Males give seeds only.
func (h *HarvestSystem) Harvest(p *components.Plant, def *strains.Definition, rng Rand) (HarvestResult, error) {
	if !p.Harvestable() {
		return HarvestResult{}, ErrNotHarvestable
	}
	hc := h.cfg.Harvest
	quality := p.Health / 100

	if p.Gender != components.Female {
		n := intRange(rng, hc.MaleSeedsMin, hc.MaleSeedsMax)
		return HarvestResult{Seeds: makeSeeds(p.Strain, components.Male, n, quality)}, nil
	}

	h.growth.FreezeYield(p)
	q := int(math.Floor(p.Health))
	res := HarvestResult{
		Lot: &components.HarvestLot{
			Strain:       p.Strain,
			AmountGrams:  p.Yield,
			QualityPct:   q,
			PricePerGram: math.Floor(def.Price * float64(q) / 100),
		},
	}
	if p.Health >= hc.BonusSeedHealth {
		n := intRange(rng, hc.BonusSeedsMin, hc.BonusSeedsMax)
		res.Seeds = makeSeeds(p.Strain, components.Female, n, quality)
	}
	return res, nil
}

func makeSeeds(strain string, gender components.Gender, n int, quality float64) []components.Seed {
	seeds := make([]components.Seed, n)
	for i := range seeds {
		seeds[i] = components.Seed{Strain: strain, Gender: gender, Quality: quality}
	}
	return seeds
}
