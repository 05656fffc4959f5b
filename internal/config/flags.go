package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAddr    = flag.String("addr", "", "Listen address for the mesh server")
	flagSeed    = flag.Int64("seed", 0, "Terrain seed (0 keeps the configured seed)")
	flagRadius  = flag.Int("radius", 0, "Streamed chunk radius")
	flagWorkers = flag.Int("workers", 0, "Mesh worker count")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagRadius > 0 {
		cfg.Server.Radius = *flagRadius
	}
	if *flagWorkers > 0 {
		cfg.Server.Workers = *flagWorkers
	}
}
