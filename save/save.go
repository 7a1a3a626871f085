// Package save persists game sessions in named slots.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/game"
	"github.com/pthm-cable/canopy/strains"
)

const savesObject = "saves"

// ErrNoSave is returned when loading a slot that was never written.
var ErrNoSave = errors.New("no save in slot")

// Backend is the slice of *gdata.Manager the store needs.
type Backend interface {
	SaveObjectProp(objectKey, propKey string, data []byte) error
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	ObjectPropExists(objectKey, propKey string) bool
	DeleteObjectProp(objectKey, propKey string) error
}

// Store reads and writes session snapshots. A Store with a nil backend
// keeps nothing and reports every slot as empty.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// Open opens the platform data directory for app.
func Open(app string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open save data: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps an existing backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b, logger: slog.Default()}
}

// Save writes the session's snapshot to slot, replacing what was there.
func (st *Store) Save(slot string, s *game.Session) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if st.backend == nil {
		return nil
	}
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := st.backend.SaveObjectProp(savesObject, slot, data); err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	st.logger.Info("session saved", "slot", slot, "bytes", len(data))
	return nil
}

// Load restores the session stored in slot.
func (st *Store) Load(slot string, cfg *config.Config, catalog *strains.Catalog, opts ...game.Option) (*game.Session, error) {
	snap, err := st.Snapshot(slot)
	if err != nil {
		return nil, err
	}
	s, err := game.Restore(cfg, catalog, snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("restore slot %q: %w", slot, err)
	}
	st.logger.Info("session loaded", "slot", slot, "plants", len(snap.Plants), "day", snap.Clock.Day)
	return s, nil
}

// Snapshot reads the raw snapshot in slot without rebuilding a session.
func (st *Store) Snapshot(slot string) (*game.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	if !st.Exists(slot) {
		return nil, fmt.Errorf("%w: %q", ErrNoSave, slot)
	}
	data, err := st.backend.LoadObjectProp(savesObject, slot)
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	return &snap, nil
}

// Exists reports whether slot holds a save.
func (st *Store) Exists(slot string) bool {
	if st.backend == nil || slot == "" {
		return false
	}
	return st.backend.ObjectPropExists(savesObject, slot)
}

// Delete removes the save in slot. Deleting an empty slot is not an error.
func (st *Store) Delete(slot string) error {
	if !st.Exists(slot) {
		return nil
	}
	if err := st.backend.DeleteObjectProp(savesObject, slot); err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	return nil
}

func checkSlot(slot string) error {
	if slot == "" {
		return errors.New("empty slot name")
	}
	return nil
}
