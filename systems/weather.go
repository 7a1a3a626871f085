package systems

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
)

// WeatherKind is the current outdoor condition.
type WeatherKind uint8

const (
	Clear WeatherKind = iota
	Cloudy
	Rainy
	Frost
)

var weatherNames = [...]string{"clear", "cloudy", "rainy", "frost"}

func (k WeatherKind) String() string {
	if int(k) < len(weatherNames) {
		return weatherNames[k]
	}
	return fmt.Sprintf("WeatherKind(%d)", k)
}

func (k WeatherKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *WeatherKind) UnmarshalText(b []byte) error {
	s := string(b)
	for i, n := range weatherNames {
		if n == s {
			*k = WeatherKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown weather %q", s)
}

// Clock tracks game time and the day/night cycle.
type Clock struct {
	Time  float64 `json:"time"`
	Phase float64 `json:"phase"` // radians in [0, 2π)
	Day   int     `json:"day"`
}

// Weather is the current outdoor state.
type Weather struct {
	Kind          WeatherKind `json:"kind"`
	Temperature   float64     `json:"temperature"` // °F
	Humidity      float64     `json:"humidity"`
	CloudCover    float64     `json:"cloud_cover"`
	RainIntensity float64     `json:"rain_intensity"`
}

// WaterDecay returns the water depletion multiplier for a plant at loc.
func (w Weather) WaterDecay(loc components.Location, cfg *config.Config) float64 {
	if loc == components.Outdoor && w.Kind == Rainy {
		return cfg.Weather.RainWaterDecay
	}
	return 1
}

// WeatherReport describes what happened during one Advance.
type WeatherReport struct {
	NewDay        bool
	Changed       bool
	From, To      WeatherKind
	FrostWarnings int
}

// WeatherSystem advances the clock and rolls the daily weather.
type WeatherSystem struct {
	cfg   *config.Config
	noise opensimplex.Noise
}

// NewWeatherSystem creates a weather system. The seed drives the
// temperature and humidity drift.
func NewWeatherSystem(cfg *config.Config, seed int64) *WeatherSystem {
	return &WeatherSystem{
		cfg:   cfg,
		noise: opensimplex.New(seed),
	}
}

// Advance moves the clock forward by dt. When a day boundary is crossed
// the weather is rolled once, and each of latePlants (plants flowering or
// ready) gets an independent chance to bring frost.
func (w *WeatherSystem) Advance(c *Clock, wx *Weather, dt float64, latePlants int, rng Rand) WeatherReport {
	var rep WeatherReport
	if dt < 0 {
		dt = 0
	}
	wc := w.cfg.Weather

	c.Time += dt
	c.Phase = math.Mod(c.Phase+w.cfg.Sim.DayNightRate*dt, 2*math.Pi)

	day := int(c.Time / wc.DayLength)
	if day > c.Day {
		c.Day = day
		rep.NewDay = true
		prev := wx.Kind
		w.Roll(wx, rng)
		for i := 0; i < latePlants; i++ {
			if rng.Float64() < wc.FrostChance {
				rep.FrostWarnings++
			}
		}
		if rep.FrostWarnings > 0 {
			wx.Kind = Frost
		}
		if wx.Kind != prev {
			rep.Changed = true
			rep.From, rep.To = prev, wx.Kind
		}
	}

	w.drift(c, wx)
	return rep
}

// Roll draws a new day's weather.
func (w *WeatherSystem) Roll(wx *Weather, rng Rand) {
	wc := w.cfg.Weather
	r := rng.Float64()
	wx.RainIntensity = 0
	switch {
	case r < wc.ClearBelow:
		wx.Kind = Clear
		wx.CloudCover = uniform(rng, 0, 0.3)
	case r < wc.CloudyBelow:
		wx.Kind = Cloudy
		wx.CloudCover = uniform(rng, 0.5, 0.9)
	default:
		wx.Kind = Rainy
		wx.CloudCover = uniform(rng, 0.8, 1)
		wx.RainIntensity = uniform(rng, 0.3, 0.8)
	}
}

// drift updates temperature and humidity. Temperature follows the
// day/night phase with a smooth noise wobble.
func (w *WeatherSystem) drift(c *Clock, wx *Weather) {
	wc := w.cfg.Weather
	t := c.Time * wc.NoiseScale
	wx.Temperature = wc.BaseTemp + math.Sin(c.Phase)*wc.TempSwing + w.noise.Eval2(t, 0)*wc.TempJitter
	wx.Humidity = wc.BaseHumidity + (w.noise.Eval2(t, 100)+1)/2*wc.HumidityRange
}
