// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Stages    StagesConfig    `yaml:"stages"`
	Growth    GrowthConfig    `yaml:"growth"`
	Depletion DepletionConfig `yaml:"depletion"`
	Pests     PestsConfig     `yaml:"pests"`
	Health    HealthConfig    `yaml:"health"`
	Yield     YieldConfig     `yaml:"yield"`
	Harvest   HarvestConfig   `yaml:"harvest"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Weather   WeatherConfig   `yaml:"weather"`
	Care      CareConfig      `yaml:"care"`
	Shop      ShopConfig      `yaml:"shop"`
	Start     StartConfig     `yaml:"start"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimConfig holds frame pacing and garden size.
type SimConfig struct {
	TimeSpeed    float64 `yaml:"time_speed"`     // Age ticks added per frame
	DayNightRate float64 `yaml:"day_night_rate"` // Day/night phase radians per unit of game time
	MaxPlants    int     `yaml:"max_plants"`     // Garden capacity
}

// StagesConfig holds the age thresholds of the lifecycle.
type StagesConfig struct {
	VegetativeAt         float64 `yaml:"vegetative_at"`
	FloweringAt          float64 `yaml:"flowering_at"`
	FloweringTicksPerDay float64 `yaml:"flowering_ticks_per_day"` // Harvest at FloweringAt + days * this
}

// GrowthConfig holds growth and initial plant parameters.
type GrowthConfig struct {
	RateScale       float64 `yaml:"rate_scale"`       // Height gain per tick per unit of growth rate
	VegetativeBoost float64 `yaml:"vegetative_boost"` // Growth rate multiplier while vegetative
	MinHealth       float64 `yaml:"min_health"`       // Growth only above this health
	WidthRatio      float64 `yaml:"width_ratio"`
	LeafInterval    float64 `yaml:"leaf_interval"` // Age ticks between leaf regenerations

	InitialHeight    float64 `yaml:"initial_height"`
	InitialNutrients float64 `yaml:"initial_nutrients"`
	InitialWater     float64 `yaml:"initial_water"`
	InitialHealth    float64 `yaml:"initial_health"`
	InitialLight     float64 `yaml:"initial_light"`
}

// DepletionConfig holds per-tick resource drain rates.
type DepletionConfig struct {
	Nitrogen     float64 `yaml:"nitrogen"`
	Phosphorus   float64 `yaml:"phosphorus"`
	Potassium    float64 `yaml:"potassium"`
	Water        float64 `yaml:"water"`
	OutdoorWater float64 `yaml:"outdoor_water"` // Extra drain for outdoor plants
}

// PestsConfig holds pest onset parameters.
type PestsConfig struct {
	Chance      float64 `yaml:"chance"` // Per-update probability of an outbreak
	MinIncrease float64 `yaml:"min_increase"`
	MaxIncrease float64 `yaml:"max_increase"`
}

// HealthConfig holds the light factor of the health score.
type HealthConfig struct {
	LightOptimal float64 `yaml:"light_optimal"` // Light at or above this scores 100
	LightFactor  float64 `yaml:"light_factor"`  // Below optimal, score = light * this
}

// YieldConfig holds yield formula coefficients.
type YieldConfig struct {
	HeightFactor float64 `yaml:"height_factor"`
	BudFactor    float64 `yaml:"bud_factor"`
}

// HarvestConfig holds seed draws for harvests.
type HarvestConfig struct {
	BonusSeedHealth float64 `yaml:"bonus_seed_health"` // Females at or above this health drop seeds
	BonusSeedsMin   int     `yaml:"bonus_seeds_min"`
	BonusSeedsMax   int     `yaml:"bonus_seeds_max"`
	MaleSeedsMin    int     `yaml:"male_seeds_min"`
	MaleSeedsMax    int     `yaml:"male_seeds_max"`
}

// BreedingConfig holds seed draws for successful crosses.
type BreedingConfig struct {
	SeedsMin int `yaml:"seeds_min"`
	SeedsMax int `yaml:"seeds_max"`
}

// WeatherConfig holds outdoor weather parameters.
type WeatherConfig struct {
	DayLength      float64 `yaml:"day_length"`       // Game time between weather rolls
	ClearBelow     float64 `yaml:"clear_below"`      // Roll < this is clear
	CloudyBelow    float64 `yaml:"cloudy_below"`     // Roll < this is cloudy, otherwise rainy
	FrostChance    float64 `yaml:"frost_chance"`     // Per flowering/harvest plant per day
	RainWaterDecay float64 `yaml:"rain_water_decay"` // Water decay multiplier for outdoor plants in rain
	NoiseScale     float64 `yaml:"noise_scale"`      // Simplex frequency for temperature/humidity drift
	BaseTemp       float64 `yaml:"base_temp"`
	TempSwing      float64 `yaml:"temp_swing"`
	TempJitter     float64 `yaml:"temp_jitter"`
	BaseHumidity   float64 `yaml:"base_humidity"`
	HumidityRange  float64 `yaml:"humidity_range"`
}

// CareConfig holds inventory cost and effect of care actions.
type CareConfig struct {
	WaterCost      float64 `yaml:"water_cost"`
	WaterAmount    float64 `yaml:"water_amount"`
	NutrientCost   float64 `yaml:"nutrient_cost"`
	NutrientAmount float64 `yaml:"nutrient_amount"`
	PesticideCost  float64 `yaml:"pesticide_cost"`
	PestReduction  float64 `yaml:"pest_reduction"`
}

// ShopItemConfig defines one purchasable resource bundle.
type ShopItemConfig struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Resource string  `yaml:"resource"` // water, nitrogen, phosphorus, potassium, pesticide
	Amount   float64 `yaml:"amount"`
	Cost     float64 `yaml:"cost"`
}

// ShopConfig holds the shop price list.
type ShopConfig struct {
	Items                []ShopItemConfig `yaml:"items"`
	LightUpgradeCost     float64          `yaml:"light_upgrade_cost"`
	LightUpgradeCapacity float64          `yaml:"light_upgrade_capacity"`
}

// StartConfig holds the new-session state.
type StartConfig struct {
	Money         float64  `yaml:"money"`
	Water         float64  `yaml:"water"`
	Nitrogen      float64  `yaml:"nitrogen"`
	Phosphorus    float64  `yaml:"phosphorus"`
	Potassium     float64  `yaml:"potassium"`
	Pesticide     float64  `yaml:"pesticide"`
	LightCapacity float64  `yaml:"light_capacity"`
	StarterSeeds  []string `yaml:"starter_seeds"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Window float64 `yaml:"window"` // Game time per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ShopIndex    map[string]int // item id -> index into Shop.Items
	FramesPerDay float64        // Weather.DayLength / Sim.TimeSpeed
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Sim.TimeSpeed <= 0 {
		return fmt.Errorf("sim.time_speed must be positive, got %v", c.Sim.TimeSpeed)
	}
	if c.Sim.MaxPlants < 1 {
		return fmt.Errorf("sim.max_plants must be at least 1, got %d", c.Sim.MaxPlants)
	}
	if c.Stages.VegetativeAt <= 0 || c.Stages.FloweringAt <= c.Stages.VegetativeAt {
		return fmt.Errorf("stages: need 0 < vegetative_at < flowering_at, got %v/%v",
			c.Stages.VegetativeAt, c.Stages.FloweringAt)
	}
	if c.Weather.DayLength <= 0 {
		return fmt.Errorf("weather.day_length must be positive, got %v", c.Weather.DayLength)
	}
	if c.Pests.MaxIncrease < c.Pests.MinIncrease {
		return fmt.Errorf("pests: max_increase %v below min_increase %v", c.Pests.MaxIncrease, c.Pests.MinIncrease)
	}
	ranges := []struct {
		name     string
		min, max int
	}{
		{"harvest.bonus_seeds", c.Harvest.BonusSeedsMin, c.Harvest.BonusSeedsMax},
		{"harvest.male_seeds", c.Harvest.MaleSeedsMin, c.Harvest.MaleSeedsMax},
		{"breeding.seeds", c.Breeding.SeedsMin, c.Breeding.SeedsMax},
	}
	for _, r := range ranges {
		if r.min < 0 || r.max < r.min {
			return fmt.Errorf("%s: invalid range [%d, %d]", r.name, r.min, r.max)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FramesPerDay = c.Weather.DayLength / c.Sim.TimeSpeed

	c.Derived.ShopIndex = make(map[string]int, len(c.Shop.Items))
	for i, item := range c.Shop.Items {
		c.Derived.ShopIndex[item.ID] = i
	}
}

// ShopItem looks up a shop item by id.
func (c *Config) ShopItem(id string) (ShopItemConfig, bool) {
	i, ok := c.Derived.ShopIndex[id]
	if !ok {
		return ShopItemConfig{}, false
	}
	return c.Shop.Items[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
