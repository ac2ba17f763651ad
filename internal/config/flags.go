package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagScript = flag.String("script", "", "Path to a session script")
	flagOut    = flag.String("out", "", "Export output directory")
	flagEdge   = flag.String("edge", "", "Resample edge mode: clamp or transparent")
	flagBinary = flag.Bool("binary", false, "Export as binary (GLB)")
	flagTRS    = flag.Bool("trs", false, "Export transforms as TRS")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// ScriptPath returns the session script path provided via -script.
func ScriptPath() string {
	return *flagScript
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Export.OutputDir = *flagOut
	}
	if *flagEdge != "" {
		cfg.Design.EdgeMode = *flagEdge
	}
	if *flagBinary {
		cfg.Export.Binary = true
	}
	if *flagTRS {
		cfg.Export.TRS = true
	}
}
