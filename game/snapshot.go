package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/inventory"
	"github.com/pthm-cable/canopy/strains"
	"github.com/pthm-cable/canopy/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when restoring a snapshot written by an
// incompatible version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot holds the complete session state.
type Snapshot struct {
	Version  int                 `json:"version"`
	Seed     int64               `json:"seed"`
	Location components.Location `json:"location"`

	Clock     systems.Clock       `json:"clock"`
	Weather   systems.Weather     `json:"weather"`
	Inventory inventory.Inventory `json:"inventory"`

	Plants   []components.Plant      `json:"plants"`
	Seeds    []components.Seed       `json:"seeds"`
	Lots     []components.HarvestLot `json:"lots"`
	Unlocked []string                `json:"unlocked"`
	NextSeq  uint64                  `json:"next_seq"`

	Selected uuid.UUID    `json:"selected"`
	Parents  [2]uuid.UUID `json:"parents"`

	CompletedFirstHarvest bool `json:"completed_first_harvest"`
}

// Snapshot captures the session. The result shares no memory with it.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Version:               SnapshotVersion,
		Seed:                  s.seed,
		Location:              s.location,
		Clock:                 s.clock,
		Weather:               s.wx,
		Inventory:             *s.inv,
		Plants:                s.garden.list(),
		Seeds:                 s.Seeds(),
		Lots:                  s.Lots(),
		Unlocked:              s.unlocked.Names(),
		NextSeq:               s.nextSeq,
		Selected:              s.selected,
		Parents:               s.parents,
		CompletedFirstHarvest: s.completedFirstHarvest,
	}
}

// Restore rebuilds a session from snap. Plants may be at any valid point of
// their life; derived fields are recomputed so ticking resumes correctly.
// Any strain name missing from catalog is an error. Options apply as for
// NewSession, with the snapshot's seed as the default. Random draws resume
// from a seed derived from the snapshot's progress, so a reloaded game does
// not replay the draws its session started with.
func Restore(cfg *config.Config, catalog *strains.Catalog, snap *Snapshot, opts ...Option) (*Session, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}

	s, err := newSession(cfg, catalog, snap.Location, append([]Option{WithSeed(snap.Seed), withDrawSeed(resumeSeed(snap))}, opts...))
	if err != nil {
		return nil, err
	}
	s.clock = snap.Clock
	s.wx = snap.Weather
	*s.inv = snap.Inventory
	s.completedFirstHarvest = snap.CompletedFirstHarvest
	s.nextSeq = snap.NextSeq

	for _, name := range snap.Unlocked {
		if _, ok := catalog.Get(name); !ok {
			return nil, fmt.Errorf("unlocked strain: %w", unknownStrain(catalog, name))
		}
		s.unlocked.Add(name)
	}
	for _, seed := range snap.Seeds {
		if _, ok := catalog.Get(seed.Strain); !ok {
			return nil, fmt.Errorf("seed: %w", unknownStrain(catalog, seed.Strain))
		}
	}
	s.seeds = append(s.seeds, snap.Seeds...)
	for _, lot := range snap.Lots {
		if _, ok := catalog.Get(lot.Strain); !ok {
			return nil, fmt.Errorf("harvest lot: %w", unknownStrain(catalog, lot.Strain))
		}
	}
	s.lots = append(s.lots, snap.Lots...)

	for _, p := range snap.Plants {
		def, ok := catalog.Get(p.Strain)
		if !ok {
			return nil, fmt.Errorf("plant: %w", unknownStrain(catalog, p.Strain))
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if s.garden.get(p.ID) != nil {
			return nil, fmt.Errorf("duplicate plant id %s", p.ID)
		}
		if p.Seq == 0 {
			s.nextSeq++
			p.Seq = s.nextSeq
		}
		s.nextSeq = max(s.nextSeq, p.Seq)
		s.growth.Normalize(&p, def)
		stored := s.garden.add(p)
		s.lifetime.Register(stored, max(0, s.clock.Time-p.Age))
	}

	if s.garden.get(snap.Selected) != nil {
		s.selected = snap.Selected
	}
	for i, id := range snap.Parents {
		if i == 1 && id == s.parents[0] {
			continue
		}
		if p := s.garden.get(id); p != nil && p.Harvestable() {
			s.parents[i] = id
		}
	}
	return s, nil
}

// resumeSeed mixes the session seed with how far the session has come.
func resumeSeed(snap *Snapshot) int64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range [...]uint64{uint64(snap.Seed), math.Float64bits(snap.Clock.Time), snap.NextSeq} {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return int64(h.Sum64())
}
