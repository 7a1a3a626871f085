package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/canopy/components"
)

func TestAdvance_RollsOncePerDay(t *testing.T) {
	cfg := quietConfig()
	w := NewWeatherSystem(cfg, 1)
	var c Clock
	var wx Weather

	// roll 0.9 -> rainy, cover 0.8+0.5*0.2, rain 0.3+0.5*0.5
	rng := &scriptedRand{floats: []float64{0.9, 0.5, 0.5}}

	rep := w.Advance(&c, &wx, 179, 0, rng)
	if rep.NewDay || rng.fi != 0 {
		t.Fatalf("no roll expected before day boundary, report %+v", rep)
	}

	rep = w.Advance(&c, &wx, 2, 0, rng)
	if !rep.NewDay || c.Day != 1 {
		t.Fatalf("expected day 1, got %+v day=%d", rep, c.Day)
	}
	if wx.Kind != Rainy || !rep.Changed || rep.From != Clear || rep.To != Rainy {
		t.Errorf("weather = %v, report %+v, want rainy", wx.Kind, rep)
	}
	if !approx(wx.CloudCover, 0.9) || !approx(wx.RainIntensity, 0.55) {
		t.Errorf("cover=%v rain=%v, want 0.9/0.55", wx.CloudCover, wx.RainIntensity)
	}
}

func TestRoll_Bands(t *testing.T) {
	w := NewWeatherSystem(quietConfig(), 1)

	tests := []struct {
		roll float64
		want WeatherKind
	}{
		{0, Clear},
		{0.59, Clear},
		{0.6, Cloudy},
		{0.84, Cloudy},
		{0.85, Rainy},
		{0.99, Rainy},
	}
	for _, tt := range tests {
		var wx Weather
		w.Roll(&wx, &scriptedRand{floats: []float64{tt.roll, 0.5, 0.5}})
		if wx.Kind != tt.want {
			t.Errorf("roll %v = %v, want %v", tt.roll, wx.Kind, tt.want)
		}
		if wx.Kind != Rainy && wx.RainIntensity != 0 {
			t.Errorf("roll %v: rain intensity %v on dry day", tt.roll, wx.RainIntensity)
		}
	}
}

func TestAdvance_FrostFromLatePlants(t *testing.T) {
	w := NewWeatherSystem(quietConfig(), 1)
	var c Clock
	var wx Weather

	// clear roll, cover, then one frost check per late plant
	rng := &scriptedRand{floats: []float64{0.1, 0.1, 0.01, 0.9, 0.02}}
	rep := w.Advance(&c, &wx, 180, 3, rng)
	if rep.FrostWarnings != 2 {
		t.Errorf("FrostWarnings = %d, want 2", rep.FrostWarnings)
	}
	if wx.Kind != Frost {
		t.Errorf("weather = %v, want frost", wx.Kind)
	}

	rep = w.Advance(&c, &wx, 180, 0, &scriptedRand{floats: []float64{0.1, 0.1}})
	if wx.Kind != Clear || rep.FrostWarnings != 0 {
		t.Errorf("frost should clear on next roll, got %v", wx.Kind)
	}
}

func TestAdvance_PhaseAndAmbientBounds(t *testing.T) {
	cfg := quietConfig()
	w := NewWeatherSystem(cfg, 42)
	var c Clock
	var wx Weather
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 5000; i++ {
		w.Advance(&c, &wx, 0.25, 1, rng)
		if c.Phase < 0 || c.Phase >= 2*math.Pi {
			t.Fatalf("phase %v outside [0, 2π)", c.Phase)
		}
		if wx.Temperature < 35 || wx.Temperature > 85 {
			t.Fatalf("temperature %v outside 60±25", wx.Temperature)
		}
		if wx.Humidity < 40 || wx.Humidity > 70 {
			t.Fatalf("humidity %v outside [40, 70]", wx.Humidity)
		}
	}
	if !approx(c.Time, 1250) {
		t.Errorf("time = %v, want 1250", c.Time)
	}
	if c.Day != 6 {
		t.Errorf("day = %d, want 6", c.Day)
	}
}

func TestWeather_WaterDecay(t *testing.T) {
	cfg := quietConfig()
	rain := Weather{Kind: Rainy}

	if got := rain.WaterDecay(components.Outdoor, cfg); got != 0.5 {
		t.Errorf("outdoor rain decay = %v, want 0.5", got)
	}
	if got := rain.WaterDecay(components.Indoor, cfg); got != 1 {
		t.Errorf("indoor rain decay = %v, want 1", got)
	}
	if got := (Weather{Kind: Clear}).WaterDecay(components.Outdoor, cfg); got != 1 {
		t.Errorf("outdoor clear decay = %v, want 1", got)
	}
}
