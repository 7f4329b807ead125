package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagAddr     = flag.String("addr", "", "Debug server listen address")
	flagNoVerify = flag.Bool("no-verify", false, "Skip invariant checks after edits")
	flagSeed     = flag.Int64("seed", 0, "Stamp noise seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagNoVerify {
		cfg.Editing.ValidateAfterEdit = false
	}
	if *flagSeed != 0 {
		cfg.Stamp.Seed = *flagSeed
	}
}
