package main

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/game"
	"github.com/pthm-cable/canopy/inventory"
)

// Thresholds below which the autopilot tends a plant.
const (
	waterLow    = 40
	nutrientLow = 30
	pestsHigh   = 30
)

var nutrients = [...]components.Nutrient{components.Nitrogen, components.Phosphorus, components.Potassium}

// autopilot plays a session greedily so headless runs cover the whole loop:
// care, harvest, crossing, selling and replanting.
type autopilot struct {
	s      *game.Session
	logger *slog.Logger
}

func newAutopilot(s *game.Session, logger *slog.Logger) *autopilot {
	return &autopilot{s: s, logger: logger}
}

// act runs one decision pass. Rejections are expected and only logged.
func (a *autopilot) act() {
	a.tend()
	a.cross()
	a.harvest()
	a.sell()
	a.replant()
	a.s.Notifications()
}

func (a *autopilot) tend() {
	cfg := a.s.Config()
	for _, p := range a.s.Plants() {
		if p.Harvestable() {
			continue
		}
		a.try(a.s.Select(p.ID))
		if p.Water < waterLow {
			a.stock(inventory.Water, cfg.Care.WaterCost)
			a.try(a.s.Water())
		}
		for _, n := range nutrients {
			if p.Nutrients.Get(n) < nutrientLow {
				a.stock(inventory.ResourceFor(n), cfg.Care.NutrientCost)
				a.try(a.s.Feed(n))
			}
		}
		if p.Pests > pestsHigh {
			a.stock(inventory.Pesticide, cfg.Care.PesticideCost)
			a.try(a.s.TreatPests())
		}
	}
	a.try(a.s.Select(uuid.Nil))
}

// stock buys r when the pool cannot cover need and cash allows.
func (a *autopilot) stock(r inventory.Resource, need float64) {
	inv := a.s.Inventory()
	if inv.Has(r, need) {
		return
	}
	item, ok := a.s.Config().ShopItem(r.String())
	if !ok || !inv.CanAfford(item.Cost) {
		return
	}
	a.try(a.s.Buy(item.ID))
}

// cross breeds the first pair of ripe plants that would unlock a strain.
func (a *autopilot) cross() {
	var ripe []components.Plant
	for _, p := range a.s.Plants() {
		if p.Harvestable() {
			ripe = append(ripe, p)
		}
	}
	for i := range ripe {
		for j := i + 1; j < len(ripe); j++ {
			if !a.wouldUnlock(ripe[i].Strain, ripe[j].Strain) {
				continue
			}
			a.s.ClearParents()
			a.try(a.s.SelectParent(ripe[i].ID))
			a.try(a.s.SelectParent(ripe[j].ID))
			res, err := a.s.CrossBreed()
			a.try(err)
			if res.OK {
				a.logger.Info("autopilot crossed", "a", ripe[i].Strain, "b", ripe[j].Strain, "strain", res.Strain.Name)
				return
			}
			a.s.ClearParents()
		}
	}
}

func (a *autopilot) wouldUnlock(x, y string) bool {
	for _, def := range a.s.Catalog().Crosses(x, y) {
		if !a.s.IsUnlocked(def.Name) {
			return true
		}
	}
	return false
}

func (a *autopilot) harvest() {
	for _, p := range a.s.Plants() {
		if !p.Harvestable() {
			continue
		}
		a.try(a.s.Select(p.ID))
		_, err := a.s.Harvest()
		a.try(err)
	}
}

func (a *autopilot) sell() {
	for len(a.s.Lots()) > 0 {
		if _, err := a.s.SellLot(0); err != nil {
			a.try(err)
			return
		}
	}
}

// replant fills the garden, preferring the strain with the fewest plants.
func (a *autopilot) replant() {
	for len(a.s.Plants()) < a.s.Config().Sim.MaxPlants {
		seeds := a.s.Seeds()
		if len(seeds) == 0 {
			return
		}
		growing := make(map[string]int)
		for _, p := range a.s.Plants() {
			growing[p.Strain]++
		}
		best := 0
		for i, seed := range seeds {
			if growing[seed.Strain] < growing[seeds[best].Strain] {
				best = i
			}
		}
		if _, err := a.s.PlantSeed(best); err != nil {
			a.try(err)
			return
		}
	}
}

func (a *autopilot) try(err error) {
	if err != nil {
		a.logger.Debug("autopilot action rejected", "error", err)
	}
}
