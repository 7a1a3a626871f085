package game

import (
	"errors"

	"github.com/pthm-cable/canopy/telemetry"
)

// Buy purchases the shop item with id.
func (s *Session) Buy(id string) error {
	item, ok := s.cfg.ShopItem(id)
	if !ok {
		return s.reject(ErrUnknownItem, "Unknown item %q", id)
	}
	if err := s.inv.Buy(item); err != nil {
		return s.reject(err, "Not enough money!")
	}
	s.notify(LevelSuccess, "Purchased %s!", item.Name)
	return nil
}

// UpgradeLights buys the stronger indoor grow light.
func (s *Session) UpgradeLights() error {
	if err := s.inv.UpgradeLights(s.cfg.Shop); err != nil {
		if errors.Is(err, ErrLightsMaxed) {
			return s.reject(err, "Lights already maxed!")
		}
		return s.reject(err, "Not enough money!")
	}
	s.notify(LevelSuccess, "Lights upgraded to %.0f%%!", s.inv.LightCapacity)
	return nil
}

// SellLot sells harvest lot i at its quality price.
func (s *Session) SellLot(i int) (float64, error) {
	if i < 0 || i >= len(s.lots) {
		return 0, s.reject(ErrNoSuchLot, "Nothing to sell")
	}
	lot := s.lots[i]
	earned := lot.Value()
	s.inv.Credit(earned)
	s.lots = append(s.lots[:i], s.lots[i+1:]...)
	s.record(telemetry.NewSoldEvent(s.clock.Time, lot.Strain, earned))
	s.notify(LevelSuccess, "Sold for $%.0f!", earned)
	return earned, nil
}
