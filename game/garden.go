package game

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/canopy/components"
)

// garden is the set of active plants, stored as ECS entities with a single
// Plant component. Entities are indexed by plant id so that selections
// survive removal of other plants.
type garden struct {
	world  *ecs.World
	plants *ecs.Map1[components.Plant]
	filter *ecs.Filter1[components.Plant]
	byID   map[uuid.UUID]ecs.Entity
}

func newGarden() *garden {
	world := ecs.NewWorld()
	return &garden{
		world:  world,
		plants: ecs.NewMap1[components.Plant](world),
		filter: ecs.NewFilter1[components.Plant](world),
		byID:   make(map[uuid.UUID]ecs.Entity),
	}
}

// add stores p and returns a pointer to the stored copy.
func (g *garden) add(p components.Plant) *components.Plant {
	e := g.plants.NewEntity(&p)
	g.byID[p.ID] = e
	return g.plants.Get(e)
}

// get returns the live plant with id, or nil.
func (g *garden) get(id uuid.UUID) *components.Plant {
	e, ok := g.byID[id]
	if !ok || !g.world.Alive(e) {
		return nil
	}
	return g.plants.Get(e)
}

// remove deletes the plants with the given ids. It must not be called while
// a query is open.
func (g *garden) remove(ids ...uuid.UUID) {
	for _, id := range ids {
		e, ok := g.byID[id]
		if !ok {
			continue
		}
		delete(g.byID, id)
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}
}

func (g *garden) count() int {
	return len(g.byID)
}

// each calls fn for every plant. fn may mutate the plant but not the garden.
func (g *garden) each(fn func(p *components.Plant)) {
	query := g.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// list returns copies of all plants in planting order.
func (g *garden) list() []components.Plant {
	out := make([]components.Plant, 0, g.count())
	g.each(func(p *components.Plant) {
		out = append(out, *p)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}
