// Package components defines ECS components for the simulation.
package components

import (
	"fmt"

	"github.com/google/uuid"
)

// Location is where a plant is grown.
type Location uint8

const (
	Indoor Location = iota
	Outdoor
)

var locationNames = [...]string{"indoor", "outdoor"}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("Location(%d)", l)
}

func (l Location) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Location) UnmarshalText(b []byte) error {
	return parseEnum(b, locationNames[:], "location", func(i int) { *l = Location(i) })
}

// ParseLocation converts "indoor" or "outdoor" to a Location.
func ParseLocation(s string) (Location, error) {
	var l Location
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// Stage is a plant's lifecycle phase. Stages only move forward.
type Stage uint8

const (
	StageSeedling Stage = iota
	StageVegetative
	StageFlowering
	StageHarvest
)

var stageNames = [...]string{"seedling", "vegetative", "flowering", "harvest"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stage) UnmarshalText(b []byte) error {
	return parseEnum(b, stageNames[:], "stage", func(i int) { *s = Stage(i) })
}

// Gender is fixed when a plant is created.
type Gender uint8

const (
	GenderUnknown Gender = iota // seeds only
	Male
	Female
)

var genderNames = [...]string{"unknown", "male", "female"}

func (g Gender) String() string {
	if int(g) < len(genderNames) {
		return genderNames[g]
	}
	return fmt.Sprintf("Gender(%d)", g)
}

func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *Gender) UnmarshalText(b []byte) error {
	return parseEnum(b, genderNames[:], "gender", func(i int) { *g = Gender(i) })
}

// Nutrient names one of the three fed nutrients.
type Nutrient uint8

const (
	Nitrogen Nutrient = iota
	Phosphorus
	Potassium
)

var nutrientNames = [...]string{"nitrogen", "phosphorus", "potassium"}

func (n Nutrient) String() string {
	if int(n) < len(nutrientNames) {
		return nutrientNames[n]
	}
	return fmt.Sprintf("Nutrient(%d)", n)
}

// ParseNutrient converts a nutrient name.
func ParseNutrient(s string) (Nutrient, error) {
	var n Nutrient
	err := parseEnum([]byte(s), nutrientNames[:], "nutrient", func(i int) { n = Nutrient(i) })
	return n, err
}

// ColorTier is the cosmetic condition shown on the leaves.
type ColorTier uint8

const (
	TierHealthy ColorTier = iota
	TierNitrogenDeficient
	TierPhosphorusDeficient
	TierPotassiumDeficient
	TierOverwatered
	TierUnderwatered
	TierPestDamaged
)

var tierNames = [...]string{
	"healthy", "yellow", "purple_tinge", "brown_edge", "overwatered", "underwatered", "damaged",
}

func (c ColorTier) String() string {
	if int(c) < len(tierNames) {
		return tierNames[c]
	}
	return fmt.Sprintf("ColorTier(%d)", c)
}

func (c ColorTier) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ColorTier) UnmarshalText(b []byte) error {
	return parseEnum(b, tierNames[:], "color tier", func(i int) { *c = ColorTier(i) })
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

// Nutrients holds soil nutrient levels, each in [0, 100].
type Nutrients struct {
	N float64 `json:"n"`
	P float64 `json:"p"`
	K float64 `json:"k"`
}

// Get returns the level of one nutrient.
func (n *Nutrients) Get(which Nutrient) float64 {
	switch which {
	case Phosphorus:
		return n.P
	case Potassium:
		return n.K
	default:
		return n.N
	}
}

// Set stores the level of one nutrient.
func (n *Nutrients) Set(which Nutrient, v float64) {
	switch which {
	case Phosphorus:
		n.P = v
	case Potassium:
		n.K = v
	default:
		n.N = v
	}
}

// Average returns the mean of the three levels.
func (n *Nutrients) Average() float64 {
	return (n.N + n.P + n.K) / 3
}

// Plant is the simulation state of one live specimen.
// Visual layout is not stored here; it is rebuilt from this state.
type Plant struct {
	ID       uuid.UUID `json:"id"`
	Strain   string    `json:"strain"`
	Location Location  `json:"location"`
	Gender   Gender    `json:"gender"`

	Age     float64 `json:"age"`
	Stage   Stage   `json:"stage"` // derived from Age
	Health  float64 `json:"health"`
	Height  float64 `json:"height"`
	Width   float64 `json:"width"` // derived from Height
	Potency int     `json:"potency"`
	Seq     uint64  `json:"seq"` // planting order within the session

	Nutrients Nutrients `json:"nutrients"`
	Water     float64   `json:"water"`
	Light     float64   `json:"light"` // derived each tick
	Pests     float64   `json:"pests"`

	Buds           int       `json:"buds"`            // non-decreasing while flowering
	LeafGeneration int       `json:"leaf_generation"` // bumped each time leaves regenerate
	Tier           ColorTier `json:"tier"`
	Yield          float64   `json:"yield"` // grams, frozen at the first harvest-stage tick
	YieldSet       bool      `json:"yield_set"`

	LastWatered float64 `json:"last_watered"` // game time of last care action
	LastFed     float64 `json:"last_fed"`
}

// Harvestable reports whether the plant has reached the terminal stage.
func (p *Plant) Harvestable() bool {
	return p.Stage == StageHarvest
}
