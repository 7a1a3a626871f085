package inventory

import (
	"fmt"

	"github.com/pthm-cable/canopy/config"
)

// Buy pays for item and adds its bundle to the matching pool.
// Nothing changes if the purchase fails.
func (inv *Inventory) Buy(item config.ShopItemConfig) error {
	r, err := ParseResource(item.Resource)
	if err != nil {
		return fmt.Errorf("shop item %q: %w", item.ID, err)
	}
	if err := inv.Debit(item.Cost); err != nil {
		return err
	}
	inv.Add(r, item.Amount)
	return nil
}

// UpgradeLights buys the stronger grow light. It can only be bought while
// capacity is below the upgrade level.
func (inv *Inventory) UpgradeLights(shop config.ShopConfig) error {
	if inv.LightCapacity >= shop.LightUpgradeCapacity {
		return ErrLightsMaxed
	}
	if err := inv.Debit(shop.LightUpgradeCost); err != nil {
		return err
	}
	inv.LightCapacity = shop.LightUpgradeCapacity
	return nil
}

// ValidateShop checks that every shop item names a known pool.
func ValidateShop(shop config.ShopConfig) error {
	for _, item := range shop.Items {
		if _, err := ParseResource(item.Resource); err != nil {
			return fmt.Errorf("shop item %q: %w", item.ID, err)
		}
		if item.Cost < 0 || item.Amount <= 0 {
			return fmt.Errorf("shop item %q: cost %v amount %v", item.ID, item.Cost, item.Amount)
		}
	}
	return nil
}
