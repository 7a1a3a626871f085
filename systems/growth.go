package systems

import (
	"math"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/strains"
)

// Environment is the ambient input to one plant update.
type Environment struct {
	LightCapacity float64 // Indoor grow light, percent (upgrades may exceed 100)
	DayNightPhase float64 // Radians; outdoor light follows sin(phase)
	WaterDecay    float64 // Multiplier on water depletion; 0 means 1
}

// TickResult reports what changed during one plant update.
type TickResult struct {
	StageChanged      bool
	From, To          components.Stage
	LeavesRegenerated bool
	BudsAdded         int
	PestOutbreak      bool
	PestIncrease      float64
	YieldFrozen       bool
}

// GrowthSystem advances a plant's biological state.
type GrowthSystem struct {
	cfg *config.Config
}

// NewGrowthSystem creates a growth system.
func NewGrowthSystem(cfg *config.Config) *GrowthSystem {
	return &GrowthSystem{cfg: cfg}
}

// NewPlant returns a freshly planted seedling of def.
func (s *GrowthSystem) NewPlant(def *strains.Definition, loc components.Location, gender components.Gender) components.Plant {
	g := s.cfg.Growth
	p := components.Plant{
		ID:       uuid.New(),
		Strain:   def.Name,
		Location: loc,
		Gender:   gender,
		Stage:    components.StageSeedling,
		Health:   g.InitialHealth,
		Height:   g.InitialHeight,
		Width:    g.InitialHeight * g.WidthRatio,
		Potency:  def.Potency,
		Nutrients: components.Nutrients{
			N: g.InitialNutrients,
			P: g.InitialNutrients,
			K: g.InitialNutrients,
		},
		Water: g.InitialWater,
		Light: g.InitialLight,
	}
	p.Tier = ColorTierFor(&p)
	return p
}

// StageFor returns the stage for a plant of def at the given age.
func (s *GrowthSystem) StageFor(age float64, def *strains.Definition) components.Stage {
	st := s.cfg.Stages
	switch {
	case age < st.VegetativeAt:
		return components.StageSeedling
	case age < st.FloweringAt:
		return components.StageVegetative
	case age < def.HarvestAge(st.FloweringAt, st.FloweringTicksPerDay):
		return components.StageFlowering
	default:
		return components.StageHarvest
	}
}

// Update advances p by dt age ticks. A step that crosses a stage threshold
// is split there, so one large step ends where continuous ticking would.
// It reads no other plant, so plants may be updated in any order.
func (s *GrowthSystem) Update(p *components.Plant, def *strains.Definition, dt float64, env Environment, rng Rand) TickResult {
	var res TickResult
	if dt < 0 {
		dt = 0
	}
	cfg := s.cfg
	prevStage := p.Stage

	// Light
	if p.Location == components.Indoor {
		p.Light = clamp(env.LightCapacity, 0, 100)
	} else {
		p.Light = clamp(50+50*math.Sin(env.DayNightPhase), 0, 100)
	}

	// Pests
	if rng.Float64() < cfg.Pests.Chance {
		inc := uniform(rng, cfg.Pests.MinIncrease, cfg.Pests.MaxIncrease)
		p.Pests = clamp(p.Pests+inc, 0, 100)
		res.PestOutbreak = true
		res.PestIncrease = inc
	}

	for {
		seg, end, split := s.nextSegment(p.Age, dt, def)
		s.advance(p, def, seg, env, &res)
		if split {
			p.Age = end
		}
		dt -= seg
		if !split || dt <= 0 {
			break
		}
	}

	if p.Stage != prevStage {
		res.StageChanged = true
		res.From, res.To = prevStage, p.Stage
	}
	p.Tier = ColorTierFor(p)
	return res
}

// nextSegment returns how much of dt runs before the next stage threshold.
// split is false when no threshold lies strictly inside the step.
func (s *GrowthSystem) nextSegment(age, dt float64, def *strains.Definition) (seg, end float64, split bool) {
	st := s.cfg.Stages
	for _, th := range [...]float64{st.VegetativeAt, st.FloweringAt, def.HarvestAge(st.FloweringAt, st.FloweringTicksPerDay)} {
		if th > age && th < age+dt {
			return th - age, th, true
		}
	}
	return dt, 0, false
}

// advance runs one tick of dt that crosses no stage threshold. Growth uses
// the stage the plant was in during the tick and the health from before it.
func (s *GrowthSystem) advance(p *components.Plant, def *strains.Definition, dt float64, env Environment, res *TickResult) {
	cfg := s.cfg

	prevAge := p.Age
	during := max(s.StageFor(prevAge, def), p.Stage)
	p.Age += dt
	p.Stage = max(s.StageFor(p.Age, def), p.Stage)

	// Growth
	if p.Health > cfg.Growth.MinHealth && during != components.StageHarvest {
		rate := def.GrowthRate
		if during == components.StageVegetative {
			rate *= cfg.Growth.VegetativeBoost
		}
		p.Height += rate * cfg.Growth.RateScale * dt
		p.Width = p.Height * cfg.Growth.WidthRatio
		if boundariesCrossed(prevAge, p.Age, cfg.Growth.LeafInterval) > 0 {
			p.LeafGeneration++
			res.LeavesRegenerated = true
		}
	}

	// Buds
	if p.Gender == components.Female && during != components.StageHarvest {
		if n := min(s.budsBetween(prevAge, p.Age, def), def.BudDensity.MaxBuds()-p.Buds); n > 0 {
			p.Buds += n
			res.BudsAdded += n
		}
	}

	// Nutrients
	dep := cfg.Depletion
	p.Nutrients.N = clamp(p.Nutrients.N-dep.Nitrogen*dt, 0, 100)
	p.Nutrients.P = clamp(p.Nutrients.P-dep.Phosphorus*dt, 0, 100)
	p.Nutrients.K = clamp(p.Nutrients.K-dep.Potassium*dt, 0, 100)

	// Water
	decay := dep.Water * dt
	if p.Location == components.Outdoor {
		decay += dep.OutdoorWater * dt
	}
	if env.WaterDecay > 0 {
		decay *= env.WaterDecay
	}
	p.Water = clamp(p.Water-decay, 0, 100)

	p.Health = s.Health(p)

	if p.Stage == components.StageHarvest && !p.YieldSet {
		s.FreezeYield(p)
		res.YieldFrozen = true
	}
}

// budsBetween counts bud boundaries at ages in (from, to] that fall in the
// flowering window [flowering_at, harvest age). The first flowering tick
// itself counts.
func (s *GrowthSystem) budsBetween(from, to float64, def *strains.Definition) int {
	st := s.cfg.Stages
	interval := def.BudDensity.BudInterval()
	if interval <= 0 || to <= from {
		return 0
	}
	harvestAt := def.HarvestAge(st.FloweringAt, st.FloweringTicksPerDay)

	// Multiples of interval at or below hi, or strictly below when open.
	upTo := func(x float64, open bool) float64 {
		if open {
			return math.Ceil(x/interval) - 1
		}
		return math.Floor(x / interval)
	}

	var lower float64
	if from < st.FloweringAt {
		lower = upTo(st.FloweringAt, true)
	} else {
		lower = upTo(from, false)
	}
	upper := upTo(to, false)
	if to >= harvestAt {
		upper = upTo(harvestAt, true)
	}
	if n := int(upper - lower); n > 0 {
		return n
	}
	return 0
}

// Health is the mean of four independently clamped factors:
// nutrients, water, light and pest damage.
func (s *GrowthSystem) Health(p *components.Plant) float64 {
	hc := s.cfg.Health

	nutrients := clamp(p.Nutrients.Average(), 0, 100)
	water := clamp(p.Water, 0, 100)

	light := 100.0
	if p.Light < hc.LightOptimal {
		light = clamp(p.Light*hc.LightFactor, 0, 100)
	}

	pests := clamp(100-p.Pests, 0, 100)

	return (nutrients + water + light + pests) / 4
}

// ColorTierFor picks the leaf condition. The first matching rule wins.
func ColorTierFor(p *components.Plant) components.ColorTier {
	switch {
	case p.Nutrients.N < 30:
		return components.TierNitrogenDeficient
	case p.Nutrients.P < 30:
		return components.TierPhosphorusDeficient
	case p.Nutrients.K < 30:
		return components.TierPotassiumDeficient
	case p.Water > 90:
		return components.TierOverwatered
	case p.Water < 20:
		return components.TierUnderwatered
	case p.Pests > 40:
		return components.TierPestDamaged
	default:
		return components.TierHealthy
	}
}

// YieldFor computes flower grams from the current state. Males yield nothing.
func (s *GrowthSystem) YieldFor(p *components.Plant) float64 {
	if p.Gender != components.Female {
		return 0
	}
	yc := s.cfg.Yield
	base := p.Height * yc.HeightFactor
	return math.Floor(base * (p.Health / 100) * float64(p.Buds) * yc.BudFactor)
}

// FreezeYield stores the yield once. Later calls do nothing.
func (s *GrowthSystem) FreezeYield(p *components.Plant) {
	if p.YieldSet {
		return
	}
	p.Yield = s.YieldFor(p)
	p.YieldSet = true
}

// Normalize recomputes the derived fields of a reconstructed plant so that
// ticking can resume from any valid state.
func (s *GrowthSystem) Normalize(p *components.Plant, def *strains.Definition) {
	if p.Age < 0 {
		p.Age = 0
	}
	stage := s.StageFor(p.Age, def)
	if stage > p.Stage {
		p.Stage = stage
	}
	p.Width = p.Height * s.cfg.Growth.WidthRatio
	p.Nutrients.N = clamp(p.Nutrients.N, 0, 100)
	p.Nutrients.P = clamp(p.Nutrients.P, 0, 100)
	p.Nutrients.K = clamp(p.Nutrients.K, 0, 100)
	p.Water = clamp(p.Water, 0, 100)
	p.Light = clamp(p.Light, 0, 100)
	p.Pests = clamp(p.Pests, 0, 100)
	p.Health = clamp(p.Health, 0, 100)
	if p.Buds > def.BudDensity.MaxBuds() {
		p.Buds = def.BudDensity.MaxBuds()
	}
	if p.Yield > 0 {
		p.YieldSet = true
	}
	p.Tier = ColorTierFor(p)
}

// boundariesCrossed counts multiples of interval in (from, to].
func boundariesCrossed(from, to, interval float64) int {
	if interval <= 0 || to <= from {
		return 0
	}
	return int(math.Floor(to/interval) - math.Floor(from/interval))
}
