// Package inventory holds the player's money, consumable pools and grow
// light, plus the shop that converts one into the others.
package inventory

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
)

var (
	// ErrInsufficient is returned when a debit would go below zero.
	ErrInsufficient = errors.New("insufficient resources")
	// ErrLightsMaxed is returned when the grow light is already upgraded.
	ErrLightsMaxed = errors.New("lights already upgraded")
)

// Resource names a consumable pool.
type Resource uint8

const (
	Water Resource = iota
	Nitrogen
	Phosphorus
	Potassium
	Pesticide
	numResources
)

var resourceNames = [...]string{"water", "nitrogen", "phosphorus", "potassium", "pesticide"}

func (r Resource) String() string {
	if r < numResources {
		return resourceNames[r]
	}
	return fmt.Sprintf("Resource(%d)", r)
}

func (r Resource) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Resource) UnmarshalText(b []byte) error {
	v, err := ParseResource(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseResource converts a pool name.
func ParseResource(s string) (Resource, error) {
	for i, n := range resourceNames {
		if n == s {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}

// ResourceFor maps a nutrient to the pool it is fed from.
func ResourceFor(n components.Nutrient) Resource {
	switch n {
	case components.Phosphorus:
		return Phosphorus
	case components.Potassium:
		return Potassium
	default:
		return Nitrogen
	}
}

// Inventory is the player's money and supplies. Quantities never go
// negative: a debit that would underflow fails and changes nothing.
type Inventory struct {
	Money         float64 `json:"money"`
	Water         float64 `json:"water"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	Pesticide     float64 `json:"pesticide"`
	LightCapacity float64 `json:"light_capacity"` // Indoor grow light, percent
}

// New returns the starting inventory.
func New(cfg *config.Config) *Inventory {
	s := cfg.Start
	return &Inventory{
		Money:         s.Money,
		Water:         s.Water,
		Nitrogen:      s.Nitrogen,
		Phosphorus:    s.Phosphorus,
		Potassium:     s.Potassium,
		Pesticide:     s.Pesticide,
		LightCapacity: s.LightCapacity,
	}
}

// CanAfford reports whether the balance covers cost.
func (inv *Inventory) CanAfford(cost float64) bool {
	return cost >= 0 && inv.Money >= cost
}

// Debit removes amount from the balance.
func (inv *Inventory) Debit(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("debit of negative amount %v", amount)
	}
	if !inv.CanAfford(amount) {
		return fmt.Errorf("%w: need $%.0f, have $%.0f", ErrInsufficient, amount, inv.Money)
	}
	inv.Money -= amount
	return nil
}

// Credit adds amount to the balance. Negative amounts are ignored.
func (inv *Inventory) Credit(amount float64) {
	if amount > 0 {
		inv.Money += amount
	}
}

func (inv *Inventory) pool(r Resource) *float64 {
	switch r {
	case Water:
		return &inv.Water
	case Nitrogen:
		return &inv.Nitrogen
	case Phosphorus:
		return &inv.Phosphorus
	case Potassium:
		return &inv.Potassium
	case Pesticide:
		return &inv.Pesticide
	}
	return nil
}

// Level returns the amount held of r.
func (inv *Inventory) Level(r Resource) float64 {
	if p := inv.pool(r); p != nil {
		return *p
	}
	return 0
}

// Has reports whether at least amount of r is held.
func (inv *Inventory) Has(r Resource, amount float64) bool {
	return inv.Level(r) >= amount
}

// Add increases pool r. Negative amounts are ignored.
func (inv *Inventory) Add(r Resource, amount float64) {
	if p := inv.pool(r); p != nil && amount > 0 {
		*p += amount
	}
}

// Take removes amount from pool r.
func (inv *Inventory) Take(r Resource, amount float64) error {
	p := inv.pool(r)
	if p == nil {
		return fmt.Errorf("unknown resource %v", r)
	}
	if amount < 0 {
		return fmt.Errorf("take of negative amount %v", amount)
	}
	if *p < amount {
		return fmt.Errorf("%w: need %.0f %v, have %.0f", ErrInsufficient, amount, r, *p)
	}
	*p -= amount
	return nil
}
