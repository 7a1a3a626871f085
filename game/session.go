// Package game holds the player session: the garden of active plants, the
// inventory, the clock and weather, and every player action.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/inventory"
	"github.com/pthm-cable/canopy/strains"
	"github.com/pthm-cable/canopy/systems"
	"github.com/pthm-cable/canopy/telemetry"
)

// Rejections. Every one leaves the session unchanged.
var (
	ErrNoSelection = errors.New("no plant selected")
	ErrNoSuchPlant = errors.New("no such plant")
	ErrGardenFull  = errors.New("garden is full")
	ErrNoSeeds     = errors.New("no such seed")
	ErrParentsFull = errors.New("two parents already selected")
	ErrNoParents   = errors.New("select two parents first")
	ErrNoSuchLot   = errors.New("no such harvest lot")
	ErrUnknownItem = errors.New("unknown shop item")

	ErrInsufficient = inventory.ErrInsufficient
	ErrLightsMaxed  = inventory.ErrLightsMaxed
	ErrNotReady     = systems.ErrNotHarvestable
	ErrSameParent   = systems.ErrSameParent
)

// Session is one player's game.
type Session struct {
	cfg     *config.Config
	catalog *strains.Catalog
	seed    int64
	rng     systems.Rand
	logger  *slog.Logger

	growth   *systems.GrowthSystem
	harvest  *systems.HarvestSystem
	breeding *systems.BreedingResolver
	weather  *systems.WeatherSystem

	garden   *garden
	inv      *inventory.Inventory
	clock    systems.Clock
	wx       systems.Weather
	location components.Location
	unlocked *strains.Unlocked
	seeds    []components.Seed
	lots     []components.HarvestLot
	nextSeq  uint64

	selected uuid.UUID
	parents  [2]uuid.UUID
	notes    []Notification

	completedFirstHarvest bool

	// Telemetry
	collector     *telemetry.Collector
	lifetime      *telemetry.LifetimeTracker
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	perf          *telemetry.PerfCollector
	statsCallback func(telemetry.WindowStats)
}

// Option configures a Session.
type Option func(*options)

type options struct {
	seed          int64
	drawSeed      *int64 // seeds rng instead of seed when set
	rng           systems.Rand
	logger        *slog.Logger
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	perf          *telemetry.PerfCollector
	statsCallback func(telemetry.WindowStats)
}

// WithSeed seeds both the random source and the weather drift.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.drawSeed = nil
	}
}

// withDrawSeed seeds the random source apart from the weather drift.
func withDrawSeed(seed int64) Option {
	return func(o *options) { o.drawSeed = &seed }
}

// WithRand replaces the random source. Weather drift still follows the seed.
func WithRand(rng systems.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the logger used for notifications.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCollector enables windowed telemetry.
func WithCollector(c *telemetry.Collector) Option {
	return func(o *options) { o.collector = c }
}

// WithOutput writes telemetry, harvests and bookmarks as CSV.
func WithOutput(om *telemetry.OutputManager) Option {
	return func(o *options) { o.output = om }
}

// WithPerf times each update phase.
func WithPerf(p *telemetry.PerfCollector) Option {
	return func(o *options) { o.perf = p }
}

// WithStatsCallback is called with every flushed telemetry window.
func WithStatsCallback(fn func(telemetry.WindowStats)) Option {
	return func(o *options) { o.statsCallback = fn }
}

// NewSession starts a new game at loc with the configured money, supplies
// and starter seeds.
func NewSession(cfg *config.Config, catalog *strains.Catalog, loc components.Location, opts ...Option) (*Session, error) {
	s, err := newSession(cfg, catalog, loc, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.Start.StarterSeeds {
		if _, ok := catalog.Get(name); !ok {
			return nil, fmt.Errorf("starter seed: %w", unknownStrain(catalog, name))
		}
		s.seeds = append(s.seeds, components.Seed{Strain: name, Quality: 1})
	}
	s.weather.Roll(&s.wx, s.rng)
	return s, nil
}

func newSession(cfg *config.Config, catalog *strains.Catalog, loc components.Location, opts []Option) (*Session, error) {
	if err := inventory.ValidateShop(cfg.Shop); err != nil {
		return nil, err
	}

	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		src := o.seed
		if o.drawSeed != nil {
			src = *o.drawSeed
		}
		o.rng = rand.New(rand.NewSource(src))
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	growth := systems.NewGrowthSystem(cfg)
	s := &Session{
		cfg:           cfg,
		catalog:       catalog,
		seed:          o.seed,
		rng:           o.rng,
		logger:        o.logger,
		growth:        growth,
		harvest:       systems.NewHarvestSystem(cfg, growth),
		breeding:      systems.NewBreedingResolver(cfg, catalog),
		weather:       systems.NewWeatherSystem(cfg, o.seed),
		garden:        newGarden(),
		inv:           inventory.New(cfg),
		location:      loc,
		unlocked:      strains.NewUnlocked(catalog.Starters()...),
		collector:     o.collector,
		lifetime:      telemetry.NewLifetimeTracker(),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		output:        o.output,
		perf:          o.perf,
		statsCallback: o.statsCallback,
	}
	return s, nil
}

func unknownStrain(catalog *strains.Catalog, name string) error {
	err := fmt.Errorf("%w: %q", strains.ErrUnknownStrain, name)
	if near := catalog.Suggest(name); len(near) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(near, ", "))
	}
	return err
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Catalog returns the strain catalog.
func (s *Session) Catalog() *strains.Catalog { return s.catalog }

// Location returns where this session grows.
func (s *Session) Location() components.Location { return s.location }

// Inventory returns a copy of the player's supplies.
func (s *Session) Inventory() inventory.Inventory { return *s.inv }

// Clock returns the current game time.
func (s *Session) Clock() systems.Clock { return s.clock }

// Weather returns the current outdoor weather.
func (s *Session) Weather() systems.Weather { return s.wx }

// Seeds returns a copy of the seed stock.
func (s *Session) Seeds() []components.Seed {
	return append([]components.Seed(nil), s.seeds...)
}

// Lots returns a copy of the unsold harvest lots.
func (s *Session) Lots() []components.HarvestLot {
	return append([]components.HarvestLot(nil), s.lots...)
}

// Unlocked returns the unlocked strain names in unlock order.
func (s *Session) Unlocked() []string { return s.unlocked.Names() }

// IsUnlocked reports whether name may be grown.
func (s *Session) IsUnlocked(name string) bool {
	return s.catalog.IsUnlocked(name, s.unlocked)
}

// CompletedFirstHarvest reports whether a female plant has been harvested.
func (s *Session) CompletedFirstHarvest() bool { return s.completedFirstHarvest }

// Plants returns copies of the active plants in planting order.
func (s *Session) Plants() []components.Plant { return s.garden.list() }

// Plant returns a copy of the active plant with id.
func (s *Session) Plant(id uuid.UUID) (components.Plant, bool) {
	p := s.garden.get(id)
	if p == nil {
		return components.Plant{}, false
	}
	return *p, true
}

// Selected returns the id of the care target, or uuid.Nil.
func (s *Session) Selected() uuid.UUID { return s.selected }

// Parents returns the two parent slots; an empty slot is uuid.Nil.
func (s *Session) Parents() [2]uuid.UUID { return s.parents }

// Definition returns the strain template of p.
func (s *Session) Definition(p *components.Plant) *strains.Definition {
	def, _ := s.catalog.Get(p.Strain)
	return def
}
