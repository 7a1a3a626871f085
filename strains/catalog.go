package strains

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrUnknownStrain is returned when a name is not in the catalog.
var ErrUnknownStrain = errors.New("unknown strain")

// definitionYAML is the on-disk form of a Definition.
type definitionYAML struct {
	Name          string      `yaml:"name"`
	Color         [3]uint8    `yaml:"color"`
	GrowthRate    float64     `yaml:"growth_rate"`
	Potency       int         `yaml:"potency"`
	Price         float64     `yaml:"price"`
	FloweringDays int         `yaml:"flowering_days"`
	Difficulty    Difficulty  `yaml:"difficulty"`
	Rarity        Rarity      `yaml:"rarity"`
	Parents       []string    `yaml:"parents"`
	LeafShape     LeafShape   `yaml:"leaf_shape"`
	BudDensity    BudDensity  `yaml:"bud_density"`
	Requirement   Requirement `yaml:"special_requirement"`
	Hint          string      `yaml:"hint"`
}

type catalogYAMLFile struct {
	Strains []definitionYAML `yaml:"strains"`
}

// Catalog is the read-only strain registry. Build it once at startup.
type Catalog struct {
	defs     []Definition
	byName   map[string]int
	byPair   map[Pair][]int // candidates in catalog order
	children map[string][]string
}

// Default returns the embedded catalog. Panics if the embedded data is invalid.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("strains: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strain catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var file catalogYAMLFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing strain catalog: %w", err)
	}

	defs := make([]Definition, 0, len(file.Strains))
	for _, raw := range file.Strains {
		def := Definition{
			Name:          raw.Name,
			Color:         RGB{R: raw.Color[0], G: raw.Color[1], B: raw.Color[2]},
			GrowthRate:    raw.GrowthRate,
			Potency:       raw.Potency,
			Price:         raw.Price,
			FloweringDays: raw.FloweringDays,
			Difficulty:    raw.Difficulty,
			Rarity:        raw.Rarity,
			LeafShape:     raw.LeafShape,
			BudDensity:    raw.BudDensity,
			Requirement:   raw.Requirement,
			Hint:          raw.Hint,
		}
		switch len(raw.Parents) {
		case 0:
		case 2:
			def.Parents = &[2]string{raw.Parents[0], raw.Parents[1]}
		default:
			return nil, fmt.Errorf("strain %q: parents must list exactly two names, got %d", raw.Name, len(raw.Parents))
		}
		defs = append(defs, def)
	}
	return New(defs)
}

// New validates the definitions and builds the lookup tables.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:     make([]Definition, len(defs)),
		byName:   make(map[string]int, len(defs)),
		byPair:   make(map[Pair][]int),
		children: make(map[string][]string),
	}
	copy(c.defs, defs)

	for i := range c.defs {
		d := &c.defs[i]
		if err := validateDefinition(d); err != nil {
			return nil, err
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("strain %q: duplicate name", d.Name)
		}
		c.byName[d.Name] = i
	}

	for i := range c.defs {
		d := &c.defs[i]
		if d.Parents == nil {
			continue
		}
		for _, p := range d.Parents {
			if _, ok := c.byName[p]; !ok {
				return nil, fmt.Errorf("strain %q: parent %q: %w", d.Name, p, ErrUnknownStrain)
			}
		}
		pair := NewPair(d.Parents[0], d.Parents[1])
		c.byPair[pair] = append(c.byPair[pair], i)

		c.children[d.Parents[0]] = append(c.children[d.Parents[0]], d.Name)
		if d.Parents[1] != d.Parents[0] {
			c.children[d.Parents[1]] = append(c.children[d.Parents[1]], d.Name)
		}
	}

	if err := c.checkAcyclic(); err != nil {
		return nil, err
	}

	return c, nil
}

func validateDefinition(d *Definition) error {
	switch {
	case d.Name == "":
		return errors.New("strain with empty name")
	case d.GrowthRate <= 0:
		return fmt.Errorf("strain %q: growth rate must be positive, got %v", d.Name, d.GrowthRate)
	case d.Potency < 0 || d.Potency > 100:
		return fmt.Errorf("strain %q: potency %d out of [0, 100]", d.Name, d.Potency)
	case d.Price < 0:
		return fmt.Errorf("strain %q: negative price %v", d.Name, d.Price)
	case d.FloweringDays <= 0:
		return fmt.Errorf("strain %q: flowering days must be positive, got %d", d.Name, d.FloweringDays)
	}
	return nil
}

// checkAcyclic rejects catalogs where a strain is its own ancestor.
func (c *Catalog) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(c.defs))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("strain %q: ancestry cycle", c.defs[i].Name)
		case done:
			return nil
		}
		state[i] = visiting
		if p := c.defs[i].Parents; p != nil {
			for _, name := range p {
				if err := visit(c.byName[name]); err != nil {
					return err
				}
			}
		}
		state[i] = done
		return nil
	}

	for i := range c.defs {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// Shadow is a strain no cross can produce because an earlier catalog entry
// with the same parents has no requirement.
type Shadow struct {
	Strain     string
	ShadowedBy string
	Parents    Pair
}

// Shadowed lists unreachable strains in catalog order.
func (c *Catalog) Shadowed() []Shadow {
	var out []Shadow
	for i := range c.defs {
		d := &c.defs[i]
		if d.Parents == nil {
			continue
		}
		pair := NewPair(d.Parents[0], d.Parents[1])
		for _, earlier := range c.byPair[pair] {
			if earlier == i {
				break
			}
			if c.defs[earlier].Requirement == RequireNone {
				out = append(out, Shadow{Strain: d.Name, ShadowedBy: c.defs[earlier].Name, Parents: pair})
				break
			}
		}
	}
	return out
}

// Len returns the number of strains.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Get returns the definition for name.
func (c *Catalog) Get(name string) (*Definition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.defs[i], true
}

// Lookup is Get with an ErrUnknownStrain error for missing names.
func (c *Catalog) Lookup(name string) (*Definition, error) {
	d, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrain, name)
	}
	return d, nil
}

// AllNames returns every strain name in catalog order.
func (c *Catalog) AllNames() []string {
	names := make([]string, len(c.defs))
	for i := range c.defs {
		names[i] = c.defs[i].Name
	}
	return names
}

// Starters returns the always-unlocked strains in catalog order.
func (c *Catalog) Starters() []string {
	var names []string
	for i := range c.defs {
		if c.defs[i].Starter() {
			names = append(names, c.defs[i].Name)
		}
	}
	return names
}

// IsUnlocked reports whether name is a starter or present in unlocked.
// Unknown names are never unlocked.
func (c *Catalog) IsUnlocked(name string, unlocked *Unlocked) bool {
	d, ok := c.Get(name)
	if !ok {
		return false
	}
	return d.Starter() || unlocked.Has(name)
}

// Crosses returns the strains a and b may produce, in catalog order.
// Order of a and b does not matter.
func (c *Catalog) Crosses(a, b string) []*Definition {
	idx := c.byPair[NewPair(a, b)]
	if len(idx) == 0 {
		return nil
	}
	out := make([]*Definition, len(idx))
	for k, i := range idx {
		out[k] = &c.defs[i]
	}
	return out
}

// Children returns the strains that list name as a parent.
func (c *Catalog) Children(name string) []string {
	return c.children[name]
}

// Hint returns how to obtain name, or "" for starters and unknown names.
func (c *Catalog) Hint(name string) string {
	d, ok := c.Get(name)
	if !ok || d.Starter() {
		return ""
	}
	return d.Hint
}
