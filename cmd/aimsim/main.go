// Package main runs the aim/shoot controller headlessly against the
// reference shooting range.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/internal/config"
	"github.com/Faultbox/polygon-tps/internal/game"
	"github.com/Faultbox/polygon-tps/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote config to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Polygon TPS aim sim ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg, game.WithConfigPath(config.Resolve()))
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(cfg.Sim.Ticks); err != nil {
		logger.Error("simulation error", zap.Error(err))
		os.Exit(1)
	}

	s := g.Stats()
	fmt.Printf("ticks=%d aimed=%d skipped=%d hits=%d misses=%d projectiles=%d impacts=%d misconfigured=%d reloads=%d\n",
		s.Ticks, s.AimedTicks, s.Skipped, s.HitEffects, s.MissEffects, s.Projectiles, s.Impacts, s.Misconfigured, s.Reloads)
}
