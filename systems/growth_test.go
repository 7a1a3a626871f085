package systems

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/strains"
)

// scriptedRand replays fixed draws, cycling when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

// quietConfig returns defaults with pest outbreaks disabled.
func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Pests.Chance = 0
	return cfg
}

func testDef(days int, density strains.BudDensity) *strains.Definition {
	return &strains.Definition{
		Name:          "Test Strain",
		GrowthRate:    1,
		Potency:       50,
		Price:         20,
		FloweringDays: days,
		BudDensity:    density,
	}
}

func newTestPlant(cfg *config.Config, gender components.Gender, loc components.Location) *components.Plant {
	p := NewGrowthSystem(cfg).NewPlant(testDef(60, strains.BudMedium), loc, gender)
	return &p
}

func topUp(p *components.Plant) {
	p.Water = 80
	p.Nutrients = components.Nutrients{N: 80, P: 80, K: 80}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

var indoorEnv = Environment{LightCapacity: 100, WaterDecay: 1}

// ---------- Stage ----------

func TestNewPlant_InitialState(t *testing.T) {
	cfg := quietConfig()
	p := newTestPlant(cfg, components.Female, components.Outdoor)

	if p.ID == uuid.Nil {
		t.Error("plant needs an id")
	}
	if p.Stage != components.StageSeedling || p.Age != 0 {
		t.Errorf("stage %v age %v, want seedling at 0", p.Stage, p.Age)
	}
	if p.Height != 20 || p.Water != 80 || p.Pests != 0 {
		t.Errorf("height %v water %v pests %v, want 20/80/0", p.Height, p.Water, p.Pests)
	}
	if p.Nutrients != (components.Nutrients{N: 50, P: 50, K: 50}) {
		t.Errorf("nutrients = %+v", p.Nutrients)
	}
	if p.Strain != "Test Strain" || p.Potency != 50 || p.Location != components.Outdoor {
		t.Errorf("plant = %+v", p)
	}
}

func TestStageFor_Thresholds(t *testing.T) {
	s := NewGrowthSystem(quietConfig())
	def := testDef(60, strains.BudMedium) // harvest at 3180

	tests := []struct {
		age  float64
		want components.Stage
	}{
		{0, components.StageSeedling},
		{999.9, components.StageSeedling},
		{1000, components.StageVegetative},
		{2999, components.StageVegetative},
		{3000, components.StageFlowering},
		{3179.9, components.StageFlowering},
		{3180, components.StageHarvest},
		{1e6, components.StageHarvest},
	}
	for _, tt := range tests {
		if got := s.StageFor(tt.age, def); got != tt.want {
			t.Errorf("StageFor(%v) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestUpdate_StageNeverReverts(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)
	p := newTestPlant(cfg, components.Female, components.Indoor)
	rng := rand.New(rand.NewSource(7))

	prev := p.Stage
	for p.Age < 4000 {
		topUp(p)
		s.Update(p, def, rng.Float64()*40, indoorEnv, rng)
		if p.Stage < prev {
			t.Fatalf("stage went from %v to %v at age %v", prev, p.Stage, p.Age)
		}
		prev = p.Stage
	}
	if p.Stage != components.StageHarvest {
		t.Errorf("stage at age %v = %v, want harvest", p.Age, p.Stage)
	}
}

func TestUpdate_StageChangeReported(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	p := newTestPlant(cfg, components.Female, components.Indoor)
	p.Age = 999

	res := s.Update(p, testDef(60, strains.BudMedium), 2, indoorEnv, &scriptedRand{})
	if !res.StageChanged || res.From != components.StageSeedling || res.To != components.StageVegetative {
		t.Errorf("result = %+v, want seedling -> vegetative", res)
	}
}

// ---------- Growth ----------

func TestUpdate_GrowthRates(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)

	seedling := newTestPlant(cfg, components.Female, components.Indoor)
	s.Update(seedling, def, 10, indoorEnv, &scriptedRand{})
	if want := 20 + 1*0.05*10; !approx(seedling.Height, want) {
		t.Errorf("seedling height = %v, want %v", seedling.Height, want)
	}
	if !approx(seedling.Width, seedling.Height*0.4) {
		t.Errorf("width = %v, want height*0.4", seedling.Width)
	}

	veg := newTestPlant(cfg, components.Female, components.Indoor)
	veg.Age = 1500
	veg.Stage = components.StageVegetative
	s.Update(veg, def, 10, indoorEnv, &scriptedRand{})
	if want := 20 + 1.5*0.05*10; !approx(veg.Height, want) {
		t.Errorf("vegetative height = %v, want %v", veg.Height, want)
	}
}

func TestUpdate_NoGrowthWhenUnhealthy(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	p := newTestPlant(cfg, components.Female, components.Indoor)
	p.Health = 40

	s.Update(p, testDef(60, strains.BudMedium), 10, indoorEnv, &scriptedRand{})
	if p.Height != 20 {
		t.Errorf("height = %v, want unchanged 20", p.Height)
	}
}

func TestUpdate_LeafRegenerationEvery100Ticks(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)
	p := newTestPlant(cfg, components.Female, components.Indoor)

	for i := 0; i < 250; i++ {
		topUp(p)
		s.Update(p, def, 1, indoorEnv, &scriptedRand{})
	}
	if p.LeafGeneration != 2 {
		t.Errorf("LeafGeneration after 250 ticks = %d, want 2", p.LeafGeneration)
	}
}

// ---------- Buds ----------

func TestUpdate_BudsFollowDensityInterval(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(1000, strains.BudDense) // 12 buds, one per 100 ticks
	p := newTestPlant(cfg, components.Female, components.Indoor)
	p.Age = 2999
	p.Stage = components.StageVegetative

	res := s.Update(p, def, 1, indoorEnv, &scriptedRand{})
	if p.Buds != 1 || res.BudsAdded != 1 {
		t.Fatalf("buds on entering flowering = %d, want 1", p.Buds)
	}

	topUp(p)
	s.Update(p, def, 250, indoorEnv, &scriptedRand{})
	if p.Buds != 3 {
		t.Errorf("buds at age 3250 = %d, want 3", p.Buds)
	}

	topUp(p)
	s.Update(p, def, 2000, indoorEnv, &scriptedRand{})
	if p.Buds != 12 {
		t.Errorf("buds after long tick = %d, want cap 12", p.Buds)
	}
}

func TestUpdate_MalesGrowNoBuds(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	p := newTestPlant(cfg, components.Male, components.Indoor)
	p.Age = 3000
	p.Stage = components.StageFlowering

	s.Update(p, testDef(1000, strains.BudVeryDense), 500, indoorEnv, &scriptedRand{})
	if p.Buds != 0 {
		t.Errorf("male buds = %d, want 0", p.Buds)
	}
}

// ---------- Resources ----------

func TestUpdate_Depletion(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)

	indoor := newTestPlant(cfg, components.Female, components.Indoor)
	s.Update(indoor, def, 100, indoorEnv, &scriptedRand{})
	if !approx(indoor.Nutrients.N, 47) || !approx(indoor.Nutrients.P, 47.5) || !approx(indoor.Nutrients.K, 47.2) {
		t.Errorf("nutrients = %+v, want {47 47.5 47.2}", indoor.Nutrients)
	}
	if !approx(indoor.Water, 75) {
		t.Errorf("indoor water = %v, want 75", indoor.Water)
	}

	outdoor := newTestPlant(cfg, components.Female, components.Outdoor)
	s.Update(outdoor, def, 100, Environment{WaterDecay: 1}, &scriptedRand{})
	if !approx(outdoor.Water, 73) {
		t.Errorf("outdoor water = %v, want 73", outdoor.Water)
	}

	rained := newTestPlant(cfg, components.Female, components.Outdoor)
	s.Update(rained, def, 100, Environment{WaterDecay: 0.5}, &scriptedRand{})
	if !approx(rained.Water, 76.5) {
		t.Errorf("outdoor water in rain = %v, want 76.5", rained.Water)
	}

	dry := newTestPlant(cfg, components.Female, components.Indoor)
	dry.Water = 1
	dry.Nutrients = components.Nutrients{}
	s.Update(dry, def, 100, indoorEnv, &scriptedRand{})
	if dry.Water != 0 || dry.Nutrients.N != 0 {
		t.Errorf("depletion must floor at 0, got water=%v n=%v", dry.Water, dry.Nutrients.N)
	}
}

func TestUpdate_Light(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)

	tests := []struct {
		name string
		loc  components.Location
		env  Environment
		want float64
	}{
		{"indoor", components.Indoor, Environment{LightCapacity: 80}, 80},
		{"indoor upgraded clamps", components.Indoor, Environment{LightCapacity: 150}, 100},
		{"outdoor noon", components.Outdoor, Environment{DayNightPhase: math.Pi / 2}, 100},
		{"outdoor midnight", components.Outdoor, Environment{DayNightPhase: 3 * math.Pi / 2}, 0},
		{"outdoor dawn", components.Outdoor, Environment{}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlant(cfg, components.Female, tt.loc)
			s.Update(p, def, 1, tt.env, &scriptedRand{})
			if !approx(p.Light, tt.want) {
				t.Errorf("light = %v, want %v", p.Light, tt.want)
			}
		})
	}
}

func TestUpdate_PestOutbreak(t *testing.T) {
	cfg := quietConfig()
	cfg.Pests.Chance = 1
	s := NewGrowthSystem(cfg)
	p := newTestPlant(cfg, components.Female, components.Indoor)

	res := s.Update(p, testDef(60, strains.BudMedium), 1, indoorEnv, &scriptedRand{floats: []float64{0, 0.5}})
	if !res.PestOutbreak {
		t.Fatal("expected outbreak")
	}
	if !approx(p.Pests, 5.5) || !approx(res.PestIncrease, 5.5) {
		t.Errorf("pests = %v, want 5.5", p.Pests)
	}

	p.Pests = 98
	s.Update(p, testDef(60, strains.BudMedium), 1, indoorEnv, &scriptedRand{floats: []float64{0, 0.9}})
	if p.Pests != 100 {
		t.Errorf("pests = %v, want capped at 100", p.Pests)
	}
}

// ---------- Health and tier ----------

func TestHealth_FactorsClampedIndependently(t *testing.T) {
	s := NewGrowthSystem(quietConfig())

	tests := []struct {
		name string
		p    components.Plant
		want float64
	}{
		{
			name: "perfect",
			p:    components.Plant{Nutrients: components.Nutrients{N: 100, P: 100, K: 100}, Water: 100, Light: 100},
			want: 100,
		},
		{
			name: "dim light",
			p:    components.Plant{Nutrients: components.Nutrients{N: 100, P: 100, K: 100}, Water: 100, Light: 50},
			want: (100 + 100 + 70 + 100) / 4.0,
		},
		{
			name: "out of range inputs",
			p:    components.Plant{Nutrients: components.Nutrients{N: 200, P: 200, K: 200}, Water: -10, Light: 500, Pests: -20},
			want: 75,
		},
		{
			name: "all bad",
			p:    components.Plant{Pests: 100},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Health(&tt.p)
			if !approx(got, tt.want) {
				t.Errorf("Health() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Health() = %v outside [0, 100]", got)
			}
		})
	}
}

func TestColorTierFor_Priority(t *testing.T) {
	ok := components.Nutrients{N: 50, P: 50, K: 50}
	tests := []struct {
		name string
		p    components.Plant
		want components.ColorTier
	}{
		{"healthy", components.Plant{Nutrients: ok, Water: 50}, components.TierHealthy},
		{"nitrogen beats all", components.Plant{Nutrients: components.Nutrients{N: 10, P: 10, K: 10}, Water: 5, Pests: 90}, components.TierNitrogenDeficient},
		{"phosphorus", components.Plant{Nutrients: components.Nutrients{N: 50, P: 10, K: 10}, Water: 50}, components.TierPhosphorusDeficient},
		{"potassium", components.Plant{Nutrients: components.Nutrients{N: 50, P: 50, K: 10}, Water: 50}, components.TierPotassiumDeficient},
		{"overwatered", components.Plant{Nutrients: ok, Water: 95, Pests: 90}, components.TierOverwatered},
		{"underwatered", components.Plant{Nutrients: ok, Water: 10}, components.TierUnderwatered},
		{"pests", components.Plant{Nutrients: ok, Water: 50, Pests: 41}, components.TierPestDamaged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorTierFor(&tt.p); got != tt.want {
				t.Errorf("ColorTierFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------- Yield ----------

func TestYieldFor_Example(t *testing.T) {
	s := NewGrowthSystem(quietConfig())
	p := &components.Plant{Gender: components.Female, Health: 100, Height: 40, Buds: 6}

	if got := s.YieldFor(p); got != 60 {
		t.Errorf("YieldFor() = %v, want 60", got)
	}

	p.Gender = components.Male
	if got := s.YieldFor(p); got != 0 {
		t.Errorf("male YieldFor() = %v, want 0", got)
	}
}

func TestUpdate_YieldFrozenOnce(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(10, strains.BudDense) // harvest at 3030
	p := newTestPlant(cfg, components.Female, components.Indoor)
	p.Age = 2990
	p.Stage = components.StageVegetative
	p.Height = 100

	frozenAt := -1.0
	for i := 0; i < 80; i++ {
		topUp(p)
		res := s.Update(p, def, 1, indoorEnv, &scriptedRand{})
		if res.YieldFrozen {
			if frozenAt >= 0 {
				t.Fatalf("yield frozen twice, at %v and %v", frozenAt, p.Age)
			}
			frozenAt = p.Age
		}
	}
	if frozenAt != 3030 {
		t.Errorf("yield frozen at age %v, want 3030", frozenAt)
	}
	if p.Yield <= 0 {
		t.Fatalf("yield = %v, want positive", p.Yield)
	}

	frozen := p.Yield
	p.Nutrients = components.Nutrients{}
	p.Water = 0
	s.Update(p, def, 50, indoorEnv, &scriptedRand{})
	if p.Yield != frozen {
		t.Errorf("yield changed after freeze: %v -> %v", frozen, p.Yield)
	}
}

func TestUpdate_MaleYieldZero(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	p := newTestPlant(cfg, components.Male, components.Indoor)
	p.Age = 3500

	s.Update(p, testDef(10, strains.BudDense), 1, indoorEnv, &scriptedRand{})
	if p.Stage != components.StageHarvest || p.Yield != 0 || !p.YieldSet {
		t.Errorf("male at harvest: stage=%v yield=%v set=%v", p.Stage, p.Yield, p.YieldSet)
	}
}

// ---------- Round trip ----------

func TestUpdate_RestoredPlantMatchesContinuous(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium)

	p := newTestPlant(cfg, components.Female, components.Indoor)
	p.Nutrients = components.Nutrients{N: 100, P: 100, K: 100}
	p.Water = 100
	for p.Age < 2500 {
		s.Update(p, def, 1, indoorEnv, &scriptedRand{})
		p.Water = 100
		p.Nutrients = components.Nutrients{N: 100, P: 100, K: 100}
	}
	if p.Stage != components.StageVegetative {
		t.Fatalf("stage at 2500 = %v, want vegetative", p.Stage)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored components.Plant
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s.Normalize(&restored, def)
	s.Update(&restored, def, 100, indoorEnv, &scriptedRand{})

	continuous := *p
	for i := 0; i < 100; i++ {
		s.Update(&continuous, def, 1, indoorEnv, &scriptedRand{})
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"age", restored.Age, continuous.Age},
		{"height", restored.Height, continuous.Height},
		{"width", restored.Width, continuous.Width},
		{"water", restored.Water, continuous.Water},
		{"nitrogen", restored.Nutrients.N, continuous.Nutrients.N},
		{"health", restored.Health, continuous.Health},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-6 {
			t.Errorf("%s: restored %v, continuous %v", c.name, c.got, c.want)
		}
	}
	if restored.Stage != continuous.Stage || restored.LeafGeneration != continuous.LeafGeneration {
		t.Errorf("stage/leaves: restored %v/%d, continuous %v/%d",
			restored.Stage, restored.LeafGeneration, continuous.Stage, continuous.LeafGeneration)
	}
}

func TestUpdate_LargeStepMatchesContinuous(t *testing.T) {
	cfg := quietConfig()
	s := NewGrowthSystem(cfg)
	def := testDef(60, strains.BudMedium) // flowering at 3000, harvest at 3180

	start := newTestPlant(cfg, components.Female, components.Indoor)
	start.Age = 2900
	start.Stage = components.StageVegetative
	start.Height = 80
	start.Width = 32
	start.Water = 100
	start.Nutrients = components.Nutrients{N: 100, P: 100, K: 100}

	big := *start
	res := s.Update(&big, def, 400, indoorEnv, &scriptedRand{})

	continuous := *start
	for continuous.Age < 3300 {
		s.Update(&continuous, def, 1, indoorEnv, &scriptedRand{})
	}

	if !res.StageChanged || res.From != components.StageVegetative || res.To != components.StageHarvest {
		t.Errorf("result = %+v, want vegetative -> harvest", res)
	}
	if !res.YieldFrozen || res.BudsAdded != 2 {
		t.Errorf("result = %+v, want frozen yield and 2 buds", res)
	}
	if big.Stage != continuous.Stage || big.Buds != continuous.Buds || big.LeafGeneration != continuous.LeafGeneration {
		t.Errorf("stage/buds/leaves: big %v/%d/%d, continuous %v/%d/%d",
			big.Stage, big.Buds, big.LeafGeneration, continuous.Stage, continuous.Buds, continuous.LeafGeneration)
	}
	if !approx(big.Age, continuous.Age) || !approx(big.Height, continuous.Height) || !approx(big.Water, continuous.Water) {
		t.Errorf("age/height/water: big %v/%v/%v, continuous %v/%v/%v",
			big.Age, big.Height, big.Water, continuous.Age, continuous.Height, continuous.Water)
	}
	if big.Height <= 80 {
		t.Errorf("height = %v, want growth before harvest", big.Height)
	}
	if big.Yield <= 0 || math.Abs(big.Yield-continuous.Yield) > 1 {
		t.Errorf("yield: big %v, continuous %v", big.Yield, continuous.Yield)
	}
}

// ---------- Care ----------

func TestCare_Clamps(t *testing.T) {
	p := &components.Plant{Water: 90, Pests: 30, Nutrients: components.Nutrients{P: 80}}

	AddWater(p, 30)
	if p.Water != 100 {
		t.Errorf("water = %v, want 100", p.Water)
	}
	Feed(p, components.Phosphorus, 30)
	if p.Nutrients.P != 100 || p.Nutrients.N != 0 {
		t.Errorf("nutrients = %+v, want only P raised to 100", p.Nutrients)
	}
	TreatPests(p, 50)
	if p.Pests != 0 {
		t.Errorf("pests = %v, want 0", p.Pests)
	}
}
