package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/canopy/components"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/game"
	"github.com/pthm-cable/canopy/save"
	"github.com/pthm-cable/canopy/strains"
	"github.com/pthm-cable/canopy/telemetry"
)

const appName = "canopy"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	catalogPath := flag.String("catalog", "", "Path to a strain catalog YAML (empty = built-in)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	location := flag.String("location", "indoor", "Grow location: indoor or outdoor")
	maxTicks := flag.Int("ticks", 20000, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	saveSlot := flag.String("save-slot", "", "Resume from and save to this slot")
	autopilotOn := flag.Bool("autopilot", true, "Play the session automatically")
	autopilotEvery := flag.Int("autopilot-every", 20, "Frames between autopilot decisions")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	debug := flag.Bool("debug", false, "Log rejected actions and window details")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		fatal("failed to load config", err)
	}
	cfg := config.Cfg()

	catalog := strains.Default()
	if *catalogPath != "" {
		var err error
		if catalog, err = strains.LoadFile(*catalogPath); err != nil {
			fatal("failed to load catalog", err)
		}
	}
	for _, sh := range catalog.Shadowed() {
		slog.Warn("strain unreachable by crossing",
			"strain", sh.Strain,
			"shadowed_by", sh.ShadowedBy,
			"parents", sh.Parents[0]+" + "+sh.Parents[1],
		)
	}

	loc, err := components.ParseLocation(*location)
	if err != nil {
		fatal("bad location", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		fatal("failed to create output directory", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		fatal("failed to write config snapshot", err)
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithCollector(telemetry.NewCollector(cfg.Telemetry.Window)),
		game.WithOutput(output),
		game.WithPerf(telemetry.NewPerfCollector(int(cfg.Derived.FramesPerDay))),
	}
	if *logStats {
		opts = append(opts, game.WithStatsCallback(telemetry.WindowStats.LogStats))
	}

	var store *save.Store
	if *saveSlot != "" {
		if store, err = save.Open(appName); err != nil {
			fatal("failed to open save data", err)
		}
	}

	var s *game.Session
	if store != nil && store.Exists(*saveSlot) {
		s, err = store.Load(*saveSlot, cfg, catalog, opts...)
	} else {
		s, err = game.NewSession(cfg, catalog, loc, append(opts, game.WithSeed(rngSeed))...)
	}
	if err != nil {
		fatal("failed to start session", err)
	}

	slog.Info("starting session",
		"seed", rngSeed,
		"location", s.Location(),
		"max_ticks", *maxTicks,
		"autopilot", *autopilotOn,
		"save_slot", *saveSlot,
	)

	var pilot *autopilot
	if *autopilotOn {
		pilot = newAutopilot(s, logger)
	}
	every := max(1, *autopilotEvery)

	for tick := 1; *maxTicks == 0 || tick <= *maxTicks; tick++ {
		s.Update()
		if pilot != nil && tick%every == 0 {
			pilot.act()
		}
	}

	slog.Info("session finished", "session", s)

	if store != nil {
		if err := store.Save(*saveSlot, s); err != nil {
			fatal("failed to save session", err)
		}
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
