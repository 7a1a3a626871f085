package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/strains"
)

func TestHarvest_FemaleLot(t *testing.T) {
	cfg := quietConfig()
	g := NewGrowthSystem(cfg)
	h := NewHarvestSystem(cfg, g)
	nl, _ := strains.Default().Get("Northern Lights")

	p := &components.Plant{
		Strain: "Northern Lights",
		Gender: components.Female,
		Stage:  components.StageHarvest,
		Health: 100,
		Height: 40,
		Buds:   6,
	}

	res, err := h.Harvest(p, nl, &scriptedRand{ints: []int{1}})
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if res.Lot == nil {
		t.Fatal("female harvest must produce a lot")
	}
	if res.Lot.AmountGrams != 60 || res.Lot.QualityPct != 100 || res.Lot.PricePerGram != 15 {
		t.Errorf("lot = %+v, want 60g at 100%% for 15/g", *res.Lot)
	}
	if len(res.Seeds) != 2 {
		t.Fatalf("bonus seeds = %d, want 2", len(res.Seeds))
	}
	for _, s := range res.Seeds {
		if s.Gender != components.Female || s.Quality != 1 || s.Strain != "Northern Lights" {
			t.Errorf("seed = %+v", s)
		}
	}
}

func TestHarvest_PriceFollowsQuality(t *testing.T) {
	cfg := quietConfig()
	h := NewHarvestSystem(cfg, NewGrowthSystem(cfg))
	def := testDef(60, strains.BudMedium) // price 20

	p := &components.Plant{Gender: components.Female, Stage: components.StageHarvest, Health: 65.8, YieldSet: true, Yield: 12}
	res, err := h.Harvest(p, def, &scriptedRand{})
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if res.Lot.QualityPct != 65 || res.Lot.PricePerGram != 13 {
		t.Errorf("lot = %+v, want quality 65 price 13", *res.Lot)
	}
	if res.Lot.AmountGrams != 12 {
		t.Errorf("amount = %v, want frozen 12", res.Lot.AmountGrams)
	}
	if len(res.Seeds) != 0 {
		t.Errorf("seeds below 70 health = %d, want 0", len(res.Seeds))
	}
}

func TestHarvest_MaleSeedRange(t *testing.T) {
	cfg := quietConfig()
	h := NewHarvestSystem(cfg, NewGrowthSystem(cfg))
	def := testDef(60, strains.BudMedium)
	rng := rand.New(rand.NewSource(3))

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		p := &components.Plant{Strain: def.Name, Gender: components.Male, Stage: components.StageHarvest, Health: 80}
		res, err := h.Harvest(p, def, rng)
		if err != nil {
			t.Fatalf("Harvest: %v", err)
		}
		if res.Lot != nil {
			t.Fatal("male harvest must not produce a lot")
		}
		n := len(res.Seeds)
		if n < 5 || n > 12 {
			t.Fatalf("male seeds = %d, want 5..12", n)
		}
		seen[n] = true
		if res.Seeds[0].Gender != components.Male || res.Seeds[0].Quality != 0.8 {
			t.Errorf("seed = %+v", res.Seeds[0])
		}
	}
	if !seen[5] || !seen[12] {
		t.Errorf("range ends not reached: %v", seen)
	}
}

func TestHarvest_RejectsImmature(t *testing.T) {
	cfg := quietConfig()
	h := NewHarvestSystem(cfg, NewGrowthSystem(cfg))
	p := &components.Plant{Gender: components.Female, Stage: components.StageFlowering}

	_, err := h.Harvest(p, testDef(60, strains.BudMedium), &scriptedRand{})
	if !errors.Is(err, ErrNotHarvestable) {
		t.Errorf("error = %v, want ErrNotHarvestable", err)
	}
}
