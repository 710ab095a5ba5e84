package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagNoclip   = flag.Bool("noclip", false, "Move objects without collision")
	flagCache    = flag.Bool("cache", false, "Query only meshes near the last cache point")
	flagDeltaMax = flag.Float64("delta-max", 0, "Upper bound on a tick's delta in seconds")
	flagTicks    = flag.Int("ticks", 0, "Number of ticks to simulate")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagNoclip {
		cfg.Collider.Object.Noclip = true
	}
	if *flagCache {
		cfg.Collider.System.UseCache = true
	}
	if *flagDeltaMax > 0 {
		cfg.Simulation.DeltaMax = *flagDeltaMax
	}
	if *flagTicks > 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
}
