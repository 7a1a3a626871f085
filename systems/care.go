package systems

import "github.com/pthm-cable/canopy/components"

// AddWater raises the plant's water level, capped at 100.
func AddWater(p *components.Plant, amount float64) {
	p.Water = clamp(p.Water+amount, 0, 100)
}

// Feed raises one nutrient, capped at 100.
func Feed(p *components.Plant, which components.Nutrient, amount float64) {
	p.Nutrients.Set(which, clamp(p.Nutrients.Get(which)+amount, 0, 100))
}

// TreatPests lowers the infestation, floored at 0.
func TreatPests(p *components.Plant, reduction float64) {
	p.Pests = clamp(p.Pests-reduction, 0, 100)
}
