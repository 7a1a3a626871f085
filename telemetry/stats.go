package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a game-time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Day         int     `csv:"day"`
	Weather     string  `csv:"weather"`

	// Garden at window end
	Plants int     `csv:"plants"`
	Money  float64 `csv:"money"`
	Seeds  int     `csv:"seeds"`

	// Events during window
	Planted        int     `csv:"planted"`
	Harvests       int     `csv:"harvests"`
	GramsHarvested float64 `csv:"grams_harvested"`
	SeedsCollected int     `csv:"seeds_collected"`
	Crosses        int     `csv:"crosses"`
	CrossFailures  int     `csv:"cross_failures"`
	PestOutbreaks  int     `csv:"pest_outbreaks"`
	Frosts         int     `csv:"frosts"`
	CareActions    int     `csv:"care_actions"`
	Earned         float64 `csv:"earned"`

	// Health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	Unlocked int `csv:"unlocked"`
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, std and percentiles. Empty input
// returns zeros.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("day", s.Day),
		slog.String("weather", s.Weather),
		slog.Int("plants", s.Plants),
		slog.Float64("money", s.Money),
		slog.Int("seeds", s.Seeds),
		slog.Int("planted", s.Planted),
		slog.Int("harvests", s.Harvests),
		slog.Float64("grams_harvested", s.GramsHarvested),
		slog.Int("seeds_collected", s.SeedsCollected),
		slog.Int("crosses", s.Crosses),
		slog.Int("cross_failures", s.CrossFailures),
		slog.Int("pest_outbreaks", s.PestOutbreaks),
		slog.Int("frosts", s.Frosts),
		slog.Int("care_actions", s.CareActions),
		slog.Float64("earned", s.Earned),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_std", s.HealthStd),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("health_p90", s.HealthP90),
		slog.Int("unlocked", s.Unlocked),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
