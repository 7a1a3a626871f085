package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/inventory"
	"github.com/pthm-cable/canopy/systems"
	"github.com/pthm-cable/canopy/telemetry"
)

// PlantSeed plants seed i of the stock at the session's location. The
// plant's gender is drawn when it sprouts.
func (s *Session) PlantSeed(i int) (uuid.UUID, error) {
	if i < 0 || i >= len(s.seeds) {
		return uuid.Nil, s.reject(ErrNoSeeds, "No seeds available!")
	}
	if s.garden.count() >= s.cfg.Sim.MaxPlants {
		return uuid.Nil, s.reject(ErrGardenFull, "Garden is full! Harvest a plant first")
	}
	seed := s.seeds[i]
	def, ok := s.catalog.Get(seed.Strain)
	if !ok {
		return uuid.Nil, unknownStrain(s.catalog, seed.Strain)
	}

	gender := components.Male
	if s.rng.Float64() < 0.5 {
		gender = components.Female
	}
	p := s.growth.NewPlant(def, s.location, gender)
	s.nextSeq++
	p.Seq = s.nextSeq
	stored := s.garden.add(p)

	s.seeds = append(s.seeds[:i], s.seeds[i+1:]...)
	s.lifetime.Register(stored, s.clock.Time)
	s.record(telemetry.NewPlantedEvent(s.clock.Time, p.ID, p.Strain))
	s.notify(LevelSuccess, "Planted %s seed!", p.Strain)
	return p.ID, nil
}

// PlantStrain plants the first stocked seed of the named strain.
func (s *Session) PlantStrain(name string) (uuid.UUID, error) {
	for i := range s.seeds {
		if s.seeds[i].Strain == name {
			return s.PlantSeed(i)
		}
	}
	return uuid.Nil, s.reject(ErrNoSeeds, "No %s seeds available!", name)
}

// Select makes the plant with id the target of care actions.
// uuid.Nil clears the selection.
func (s *Session) Select(id uuid.UUID) error {
	if id == uuid.Nil {
		s.selected = uuid.Nil
		return nil
	}
	if s.garden.get(id) == nil {
		return s.reject(ErrNoSuchPlant, "That plant is gone")
	}
	s.selected = id
	return nil
}

func (s *Session) selectedPlant() (*components.Plant, error) {
	if s.selected == uuid.Nil {
		return nil, s.reject(ErrNoSelection, "Select a plant first!")
	}
	p := s.garden.get(s.selected)
	if p == nil {
		s.selected = uuid.Nil
		return nil, s.reject(ErrNoSelection, "Select a plant first!")
	}
	return p, nil
}

// Water waters the selected plant.
func (s *Session) Water() error {
	p, err := s.selectedPlant()
	if err != nil {
		return err
	}
	if err := s.inv.Take(inventory.Water, s.cfg.Care.WaterCost); err != nil {
		return s.reject(err, "Not enough water!")
	}
	systems.AddWater(p, s.cfg.Care.WaterAmount)
	p.LastWatered = s.clock.Time
	s.cared(p)
	return nil
}

// Feed gives the selected plant one dose of nutrient n.
func (s *Session) Feed(n components.Nutrient) error {
	p, err := s.selectedPlant()
	if err != nil {
		return err
	}
	if err := s.inv.Take(inventory.ResourceFor(n), s.cfg.Care.NutrientCost); err != nil {
		return s.reject(err, "Not enough %s!", n)
	}
	systems.Feed(p, n, s.cfg.Care.NutrientAmount)
	p.LastFed = s.clock.Time
	s.cared(p)
	return nil
}

// TreatPests sprays the selected plant.
func (s *Session) TreatPests() error {
	p, err := s.selectedPlant()
	if err != nil {
		return err
	}
	if err := s.inv.Take(inventory.Pesticide, s.cfg.Care.PesticideCost); err != nil {
		return s.reject(err, "Not enough pesticide!")
	}
	systems.TreatPests(p, s.cfg.Care.PestReduction)
	s.cared(p)
	return nil
}

// cared refreshes the derived fields a care action may have moved.
func (s *Session) cared(p *components.Plant) {
	p.Health = s.growth.Health(p)
	p.Tier = systems.ColorTierFor(p)
	s.lifetime.RecordCare(p.ID)
	s.record(telemetry.NewCareEvent(s.clock.Time, p.ID))
}

// Harvest harvests the selected plant and removes it from the garden.
func (s *Session) Harvest() (systems.HarvestResult, error) {
	p, err := s.selectedPlant()
	if err != nil {
		return systems.HarvestResult{}, err
	}
	def, ok := s.catalog.Get(p.Strain)
	if !ok {
		return systems.HarvestResult{}, unknownStrain(s.catalog, p.Strain)
	}
	res, err := s.harvest.Harvest(p, def, s.rng)
	if err != nil {
		return res, s.reject(err, "%s is not ready to harvest yet", p.Strain)
	}

	s.seeds = append(s.seeds, res.Seeds...)
	if res.Lot != nil {
		s.lots = append(s.lots, *res.Lot)
		s.record(telemetry.NewHarvestedEvent(s.clock.Time, p.ID, p.Strain, res.Lot.AmountGrams))
		s.notify(LevelSuccess, "Harvested %.0fg of %s!", res.Lot.AmountGrams, p.Strain)
		if len(res.Seeds) > 0 {
			s.notify(LevelSuccess, "Also collected %d %s seed(s)!", len(res.Seeds), p.Strain)
		}
		if !s.completedFirstHarvest {
			s.completedFirstHarvest = true
			s.notify(LevelSuccess, "First harvest complete! Try cross-breeding to unlock new strains!")
		}
	} else {
		s.notify(LevelSuccess, "Collected %d %s seeds from male plant!", len(res.Seeds), p.Strain)
	}
	if len(res.Seeds) > 0 {
		s.record(telemetry.NewSeedsEvent(s.clock.Time, p.Strain, len(res.Seeds)))
	}

	s.finishPlant(p, res.Lot, len(res.Seeds))
	s.removePlants(p.ID)
	return res, nil
}

// removePlants drops plants from the garden and from every selection slot.
func (s *Session) removePlants(ids ...uuid.UUID) {
	for _, id := range ids {
		if s.selected == id {
			s.selected = uuid.Nil
		}
		for i := range s.parents {
			if s.parents[i] == id {
				s.parents[i] = uuid.Nil
			}
		}
		s.lifetime.Remove(id)
	}
	s.garden.remove(ids...)
}

// SelectParent toggles the plant with id as a breeding parent. Only
// harvest-ready plants can be chosen, and at most two at once.
func (s *Session) SelectParent(id uuid.UUID) error {
	for i := range s.parents {
		if s.parents[i] == id && id != uuid.Nil {
			s.parents[i] = uuid.Nil
			return nil
		}
	}
	p := s.garden.get(id)
	if p == nil {
		return s.reject(ErrNoSuchPlant, "That plant is gone")
	}
	if !p.Harvestable() {
		return s.reject(ErrNotReady, "%s is not ready for breeding yet", p.Strain)
	}
	for i := range s.parents {
		if s.parents[i] == uuid.Nil {
			s.parents[i] = id
			return nil
		}
	}
	return s.reject(ErrParentsFull, "Two parents already selected!")
}

// ClearParents empties both parent slots.
func (s *Session) ClearParents() {
	s.parents = [2]uuid.UUID{}
}

// CrossBreed crosses the two selected parents. A cross that matches no
// strain under the current conditions is not an error: the result carries
// the reasons and nothing changes. On success the strain is unlocked, the
// seeds are stocked and both parents leave the garden together.
func (s *Session) CrossBreed() (systems.CrossResult, error) {
	a, b := s.garden.get(s.parents[0]), s.garden.get(s.parents[1])
	if a == nil || b == nil {
		return systems.CrossResult{}, s.reject(ErrNoParents, "Select two parent plants first!")
	}

	ctx := systems.CrossContext{Location: s.location, Weather: s.wx.Kind}
	res, err := s.breeding.AttemptCross(a, b, ctx, s.rng)
	if err != nil {
		return res, s.reject(err, "Those plants cannot be crossed: %v", err)
	}

	if !res.OK {
		for _, r := range res.Reasons {
			s.notify(LevelError, "%s", capitalize(r))
		}
		s.record(telemetry.NewCrossEvent(s.clock.Time, "", false))
		return res, nil
	}

	name := res.Strain.Name
	if s.unlocked.Add(name) {
		s.notify(LevelSuccess, "Unlocked new strain: %s!", name)
	}
	s.seeds = append(s.seeds, res.Seeds...)
	s.notify(LevelSuccess, "Created %d %s seeds!", len(res.Seeds), name)
	s.record(telemetry.NewCrossEvent(s.clock.Time, name, true))
	s.record(telemetry.NewSeedsEvent(s.clock.Time, name, len(res.Seeds)))

	s.removePlants(a.ID, b.ID)
	s.parents = [2]uuid.UUID{}
	return res, nil
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
