package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/polygon-tps/internal/aim"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMode       = flag.String("mode", "", "Fire mode: hitscan or projectile")
	flagTicks      = flag.Int("ticks", 0, "Number of ticks to simulate")
	flagScript     = flag.String("script", "", "tengo input script")
	flagScene      = flag.String("scene", "", "Scene layout (.yaml or .tmx)")
	flagWatch      = flag.Bool("watch", false, "Reload the config file when it changes")
	flagRequireAim = flag.Bool("require-aim", false, "Only fire while aiming")
	flagNoRig      = flag.Bool("no-rig", false, "Disable the aim rig, crosshair and marker")
	flagWriteTo    = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the path given via --write-config, if any.
func WriteConfigPath() string {
	return *flagWriteTo
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		mode, err := aim.ParseFireMode(*flagMode)
		if err != nil {
			return fmt.Errorf("-mode: %w", err)
		}
		cfg.Controller.FireMode = mode
	}
	if *flagTicks > 0 {
		cfg.Sim.Ticks = *flagTicks
	}
	if *flagScript != "" {
		cfg.Sim.Script = *flagScript
	}
	if *flagScene != "" {
		cfg.Scene.Layout = *flagScene
	}
	if *flagWatch {
		cfg.Sim.Watch = true
	}
	if *flagRequireAim {
		cfg.Controller.RequireAimToFire = true
	}
	if *flagNoRig {
		cfg.Controller.UseRig = false
	}
	return nil
}
