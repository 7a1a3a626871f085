package systems

import (
	"errors"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/strains"
)

// ErrSameParent is returned when a plant is crossed with itself.
var ErrSameParent = errors.New("a plant cannot be crossed with itself")

// Rejection messages for unmet cross requirements.
const (
	ReasonNeedsIndoor   = "this cross needs an indoor grow"
	ReasonNeedsOutdoor  = "this cross needs an outdoor grow"
	ReasonNeedsFrost    = "this cross needs frost"
	ReasonNeedsPerfect  = "both parents must be at 100% health"
	ReasonPerfectIndoor = "must be grown indoors"
	ReasonPerfectFrost  = "must be harvested in frost"
	ReasonNoKnownStrain = "no known strain from this cross, try different combinations"
)

// CrossContext is the ambient state a cross is judged against.
type CrossContext struct {
	Location components.Location
	Weather  WeatherKind
}

// CrossResult is the outcome of a cross. On failure Reasons lists every
// unmet clause followed by ReasonNoKnownStrain.
type CrossResult struct {
	OK      bool
	Strain  *strains.Definition
	Seeds   []components.Seed
	Reasons []string
}

// BreedingResolver maps two harvest-ready parents to an offspring strain.
// It never mutates the parents; the caller commits a successful result.
type BreedingResolver struct {
	cfg     *config.Config
	catalog *strains.Catalog
}

// NewBreedingResolver creates a resolver over catalog.
func NewBreedingResolver(cfg *config.Config, catalog *strains.Catalog) *BreedingResolver {
	return &BreedingResolver{cfg: cfg, catalog: catalog}
}

// AttemptCross resolves a cross of a and b. The outcome does not depend on
// argument order. Catalog entries sharing the parent pair are tried in
// catalog order and the first whose requirement holds wins, so
// Wedding Cake x Gorilla Glue #4 gives MAC indoors and White Truffle in
// outdoor frost.
func (b *BreedingResolver) AttemptCross(a, c *components.Plant, ctx CrossContext, rng Rand) (CrossResult, error) {
	if a == c || a.ID == c.ID {
		return CrossResult{}, ErrSameParent
	}
	if !a.Harvestable() || !c.Harvestable() {
		return CrossResult{}, ErrNotHarvestable
	}

	var reasons []string
	for _, def := range b.catalog.Crosses(a.Strain, c.Strain) {
		if failed := unmet(def.Requirement, a, c, ctx); len(failed) > 0 {
			reasons = append(reasons, failed...)
			continue
		}
		n := intRange(rng, b.cfg.Breeding.SeedsMin, b.cfg.Breeding.SeedsMax)
		quality := (a.Health + c.Health) / 200
		return CrossResult{
			OK:     true,
			Strain: def,
			Seeds:  makeSeeds(def.Name, components.GenderUnknown, n, quality),
		}, nil
	}
	return CrossResult{Reasons: append(reasons, ReasonNoKnownStrain)}, nil
}

// unmet lists the failed clauses of req, in a fixed order.
func unmet(req strains.Requirement, a, c *components.Plant, ctx CrossContext) []string {
	var reasons []string
	switch req {
	case strains.RequireIndoor:
		if ctx.Location != components.Indoor {
			reasons = append(reasons, ReasonNeedsIndoor)
		}
	case strains.RequireOutdoor:
		if ctx.Location != components.Outdoor {
			reasons = append(reasons, ReasonNeedsOutdoor)
		}
	case strains.RequireFrost:
		if ctx.Weather != Frost {
			reasons = append(reasons, ReasonNeedsFrost)
		}
	case strains.RequirePerfect:
		if a.Health < 100 || c.Health < 100 {
			reasons = append(reasons, ReasonNeedsPerfect)
		}
		if ctx.Location != components.Indoor {
			reasons = append(reasons, ReasonPerfectIndoor)
		}
		if ctx.Weather != Frost {
			reasons = append(reasons, ReasonPerfectFrost)
		}
	}
	return reasons
}
