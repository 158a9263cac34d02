package game

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/polygon-tps/internal/aim"
)

// Stats counts what happened during a run.
type Stats struct {
	Ticks         int
	AimedTicks    int
	Skipped       int
	HitEffects    int
	MissEffects   int
	Projectiles   int
	Misconfigured int
	Impacts       int
	Reloads       int
}

func (s *Stats) record(r aim.TickReport) {
	s.Ticks++
	if r.Skipped {
		s.Skipped++
	}
	if r.Aiming {
		s.AimedTicks++
	}
	switch r.Shot.Kind {
	case aim.ShotHitEffect:
		s.HitEffects++
	case aim.ShotMissEffect:
		s.MissEffects++
	case aim.ShotProjectile:
		s.Projectiles++
	}
	if errors.Is(r.Err, aim.ErrMisconfigured) {
		s.Misconfigured++
	}
}

// Shots returns the number of shots that spawned something.
func (s Stats) Shots() int {
	return s.HitEffects + s.MissEffects + s.Projectiles
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("ticks", s.Ticks)
	enc.AddInt("aimed", s.AimedTicks)
	enc.AddInt("skipped", s.Skipped)
	enc.AddInt("hit_effects", s.HitEffects)
	enc.AddInt("miss_effects", s.MissEffects)
	enc.AddInt("projectiles", s.Projectiles)
	enc.AddInt("impacts", s.Impacts)
	enc.AddInt("misconfigured", s.Misconfigured)
	enc.AddInt("reloads", s.Reloads)
	return nil
}

var _ zapcore.ObjectMarshaler = Stats{}

func statsField(s Stats) zap.Field {
	return zap.Object("stats", s)
}
