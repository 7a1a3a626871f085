// Package visual derives the drawable layout of a plant from its simulation
// state. Nothing here is persisted: a PlantVisual is rebuilt whenever the
// plant's leaf generation or bud count moves on.
package visual

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/strains"
)

const (
	tierBlend       = 0.8  // how far a deficiency tier pulls the strain colour
	pestDarken      = 0.7  // damaged plants keep this share of their colour
	pestLeafChance  = 0.3  // share of leaves drawn dead on an infested plant
	pestLeafMinimum = 40.0 // pest level above which dead leaves appear
	budSpread       = 0.5
	leafSizeRange   = 5
	budSizeRange    = 4
)

var (
	deadLeaf = rgb(100, 80, 60)

	tierTargets = map[components.ColorTier]colorful.Color{
		components.TierNitrogenDeficient:   rgb(255, 255, 100),
		components.TierPhosphorusDeficient: rgb(150, 100, 200),
		components.TierPotassiumDeficient:  rgb(180, 150, 100),
		components.TierOverwatered:         rgb(80, 120, 80),
		components.TierUnderwatered:        rgb(140, 120, 80),
	}
)

// Leaf is one drawn leaf, positioned relative to the stem base.
type Leaf struct {
	X, Y    float64
	Size    float64
	Angle   float64 // radians
	Dead    bool
	Color   colorful.Color
	Shape   strains.LeafShape
	Shimmer float64 // 0..1 phase offset for sway animation
}

// Bud is one drawn flower cluster. U and V are fractions of the plant's
// size so a bud keeps its place on the plant as it grows.
type Bud struct {
	U    float64 // -1..1 across the bud spread
	V    float64 // 0.2..0.8 up the stem
	Size float64
}

// At returns the bud position relative to the stem base for a plant of the
// given size.
func (b Bud) At(width, height float64) (x, y float64) {
	return b.U * width * budSpread, -b.V * height
}

// PlantVisual is the render-ready layout for one plant.
type PlantVisual struct {
	Stage          components.Stage
	Tier           components.ColorTier
	Color          colorful.Color // leaf colour after tier blending
	StemHeight     float64
	StemWidth      float64
	Leaves         []Leaf
	Buds           []Bud
	LeafGeneration int
}

// Build lays out a plant. The result depends only on the plant's state and
// id, so two calls with the same inputs produce the same layout.
func Build(p *components.Plant, def *strains.Definition) PlantVisual {
	base := rgb(def.Color.R, def.Color.G, def.Color.B)
	v := PlantVisual{
		Stage:          p.Stage,
		Tier:           p.Tier,
		Color:          TierColor(base, p.Tier),
		StemHeight:     p.Height,
		StemWidth:      p.Width,
		LeafGeneration: p.LeafGeneration,
	}

	seed := plantSeed(p)
	v.Leaves = layoutLeaves(p, def.LeafShape, v.Color, rand.New(rand.NewSource(seed^int64(p.LeafGeneration))))
	v.Buds = layoutBuds(p, def.BudDensity, seed)
	return v
}

// Stale reports whether the plant has changed enough since v was built that
// the layout must be rebuilt.
func (v *PlantVisual) Stale(p *components.Plant) bool {
	return v.LeafGeneration != p.LeafGeneration ||
		len(v.Buds) != p.Buds ||
		v.Tier != p.Tier ||
		v.Stage != p.Stage
}

// TierColor blends a strain colour toward the colour of a condition tier.
func TierColor(base colorful.Color, tier components.ColorTier) colorful.Color {
	switch tier {
	case components.TierHealthy:
		return base
	case components.TierPestDamaged:
		return colorful.Color{R: base.R * pestDarken, G: base.G * pestDarken, B: base.B * pestDarken}
	}
	target, ok := tierTargets[tier]
	if !ok {
		return base
	}
	return base.BlendLab(target, tierBlend).Clamped()
}

// LeafCount is the number of leaves drawn at a given height.
func LeafCount(height float64) int {
	return int(math.Floor(height/10)) + 2
}

func layoutLeaves(p *components.Plant, shape strains.LeafShape, c colorful.Color, rng *rand.Rand) []Leaf {
	n := LeafCount(p.Height)
	spread := p.Width * shape.WidthMultiplier()
	sizeBase := shape.LeafSizeBase()
	infested := p.Pests > pestLeafMinimum

	leaves := make([]Leaf, n)
	for i := range leaves {
		l := Leaf{
			X:       between(rng, -spread, spread),
			Y:       -p.Height * float64(i) / float64(n),
			Size:    between(rng, sizeBase, sizeBase+leafSizeRange),
			Angle:   between(rng, -math.Pi/4, math.Pi/4),
			Color:   c,
			Shape:   shape,
			Shimmer: rng.Float64(),
		}
		if infested && rng.Float64() < pestLeafChance {
			l.Dead = true
			l.Color = deadLeaf
		}
		leaves[i] = l
	}
	return leaves
}

// layoutBuds places each bud from its own stream so existing buds stay put
// when a new one appears or the plant grows.
func layoutBuds(p *components.Plant, density strains.BudDensity, seed int64) []Bud {
	if p.Buds == 0 {
		return nil
	}
	sizeBase := density.BudSizeBase()
	buds := make([]Bud, p.Buds)
	for i := range buds {
		rng := rand.New(rand.NewSource(seed + int64(i+1)*7919))
		buds[i] = Bud{
			U:    between(rng, -1, 1),
			V:    between(rng, 0.2, 0.8),
			Size: between(rng, sizeBase, sizeBase+budSizeRange),
		}
	}
	return buds
}

func plantSeed(p *components.Plant) int64 {
	h := fnv.New64a()
	h.Write(p.ID[:])
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], p.Seq)
	h.Write(buf[:])
	return int64(h.Sum64())
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
