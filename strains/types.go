// Package strains defines the strain catalog: genetic templates, their
// breeding parents, and the lookup tables built from them.
package strains

import (
	"fmt"
)

// Difficulty is how demanding a strain is to grow.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
	Master
)

var difficultyNames = [...]string{"easy", "medium", "hard", "expert", "master"}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", d)
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	return parseEnum(b, difficultyNames[:], "difficulty", func(i int) { *d = Difficulty(i) })
}

// Rarity ranks how deep in the breeding tree a strain sits.
type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythic
)

var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary", "mythic"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return fmt.Sprintf("Rarity(%d)", r)
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	return parseEnum(b, rarityNames[:], "rarity", func(i int) { *r = Rarity(i) })
}

// LeafShape affects leaf layout only.
type LeafShape uint8

const (
	LeafMedium LeafShape = iota
	LeafWide
	LeafNarrow
)

var leafShapeNames = [...]string{"medium", "wide", "narrow"}

func (l LeafShape) String() string {
	if int(l) < len(leafShapeNames) {
		return leafShapeNames[l]
	}
	return fmt.Sprintf("LeafShape(%d)", l)
}

func (l LeafShape) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *LeafShape) UnmarshalText(b []byte) error {
	return parseEnum(b, leafShapeNames[:], "leaf shape", func(i int) { *l = LeafShape(i) })
}

// WidthMultiplier scales how far leaves spread from the stem.
func (l LeafShape) WidthMultiplier() float64 {
	switch l {
	case LeafWide:
		return 1.3
	case LeafNarrow:
		return 0.7
	default:
		return 1.0
	}
}

// LeafSizeBase is the smallest leaf size for the shape.
func (l LeafShape) LeafSizeBase() float64 {
	switch l {
	case LeafWide:
		return 12
	case LeafNarrow:
		return 8
	default:
		return 10
	}
}

// BudDensity controls the bud cap and how often buds appear.
type BudDensity uint8

const (
	BudMedium BudDensity = iota
	BudLoose
	BudDense
	BudVeryDense
	BudCrystalline
)

var budDensityNames = [...]string{"medium", "loose", "dense", "very_dense", "crystalline"}

func (b BudDensity) String() string {
	if int(b) < len(budDensityNames) {
		return budDensityNames[b]
	}
	return fmt.Sprintf("BudDensity(%d)", b)
}

func (b BudDensity) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BudDensity) UnmarshalText(text []byte) error {
	return parseEnum(text, budDensityNames[:], "bud density", func(i int) { *b = BudDensity(i) })
}

// MaxBuds is the most buds a female of this density carries.
func (b BudDensity) MaxBuds() int {
	switch b {
	case BudVeryDense, BudCrystalline:
		return 16
	case BudDense:
		return 12
	case BudLoose:
		return 8
	default:
		return 10
	}
}

// BudInterval is the number of age ticks between new buds.
func (b BudDensity) BudInterval() float64 {
	switch b {
	case BudVeryDense, BudCrystalline:
		return 80
	case BudDense:
		return 100
	default:
		return 120
	}
}

// BudSizeBase is the smallest bud size drawn for the density.
func (b BudDensity) BudSizeBase() float64 {
	switch b {
	case BudVeryDense, BudCrystalline:
		return 10
	case BudDense:
		return 8
	default:
		return 6
	}
}

// Requirement gates a cross on grow conditions.
type Requirement uint8

const (
	RequireNone Requirement = iota
	RequireIndoor
	RequireOutdoor
	RequireFrost
	RequirePerfect // both parents at full health, indoor, frost
)

var requirementNames = [...]string{"none", "indoor", "outdoor", "frost", "perfect"}

func (r Requirement) String() string {
	if int(r) < len(requirementNames) {
		return requirementNames[r]
	}
	return fmt.Sprintf("Requirement(%d)", r)
}

func (r Requirement) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Requirement) UnmarshalText(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*r = RequireNone
		return nil
	}
	return parseEnum(b, requirementNames[:], "special requirement", func(i int) { *r = Requirement(i) })
}

func parseEnum(b []byte, names []string, kind string, set func(int)) error {
	s := string(b)
	for i, n := range names {
		if n == s {
			set(i)
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, s)
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Pair is an unordered pair of strain names, stored sorted.
type Pair [2]string

// NewPair returns the canonical pair for a and b.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{a, b}
}

// SelfCross reports whether both names are the same strain.
func (p Pair) SelfCross() bool {
	return p[0] == p[1]
}

// Definition is an immutable strain template.
type Definition struct {
	Name          string
	Color         RGB
	GrowthRate    float64
	Potency       int
	Price         float64 // Base price per gram at 100% quality
	FloweringDays int
	Difficulty    Difficulty
	Rarity        Rarity
	Parents       *[2]string // nil for starter strains
	LeafShape     LeafShape
	BudDensity    BudDensity
	Requirement   Requirement
	Hint          string
}

// Starter reports whether the strain is always unlocked.
func (d *Definition) Starter() bool {
	return d.Parents == nil
}

// HarvestAge is the age at which a plant of this strain becomes harvestable.
func (d *Definition) HarvestAge(floweringAt, ticksPerDay float64) float64 {
	return floweringAt + float64(d.FloweringDays)*ticksPerDay
}
