package game

import (
	"time"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/object"
	"github.com/tomz197/meteortype/internal/session"
	"github.com/tomz197/meteortype/internal/vocab"
)

// Options tune one game. Use OptionsFromConfig or DefaultOptions.
type Options struct {
	Rules session.Rules
	View  object.Screen

	SpawnIntervalBase time.Duration
	SpawnIntervalStep time.Duration // Subtracted per level
	SpawnIntervalMin  time.Duration
	SpeedBase         float64
	SpeedJitter       float64
	SpeedLevelStep    float64
	Difficulty        float64 // Scales every speed into logical units per tick
	SpawnMargin       float64
	SpawnHeight       float64 // Distance above the viewport where meteors appear

	StarCount int
	Burst     object.BurstConfig

	Mode      string           // config.ModeOriginal or config.ModeTranslation
	Romanizer *vocab.Romanizer // Adds pinyin answers when set
	Seed      int64
}

// DefaultOptions returns the classic tuning on a 120x80 viewport.
func DefaultOptions() Options {
	return Options{
		Rules:             session.DefaultRules(),
		View:              object.NewScreen(120, 80),
		SpawnIntervalBase: 10 * time.Second,
		SpawnIntervalStep: 400 * time.Millisecond,
		SpawnIntervalMin:  4 * time.Second,
		SpeedBase:         0.5,
		SpeedJitter:       0.5,
		SpeedLevelStep:    0.1,
		Difficulty:        0.02,
		SpawnMargin:       6,
		SpawnHeight:       4,
		StarCount:         50,
		Burst:             object.BurstConfig{Count: 20, MaxSpeed: 1, Decay: 0.02},
		Mode:              config.ModeOriginal,
		Seed:              time.Now().UnixNano(),
	}
}

// OptionsFromConfig maps the loaded configuration onto game options.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	opts.Rules = session.Rules{
		MaxHealth: cfg.MaxHealth,
		Damage:    cfg.Damage,
		HitPoints: cfg.HitPoints,
		LevelStep: cfg.LevelScoreStep,
	}
	opts.View = object.NewScreen(cfg.ViewWidth, cfg.ViewHeight)
	opts.SpawnIntervalBase = cfg.SpawnIntervalBase
	opts.SpawnIntervalStep = cfg.SpawnIntervalStep
	opts.SpawnIntervalMin = cfg.SpawnIntervalMin
	opts.SpeedBase = cfg.SpeedBase
	opts.SpeedJitter = cfg.SpeedJitter
	opts.SpeedLevelStep = cfg.SpeedLevelStep
	opts.Difficulty = cfg.Difficulty
	opts.SpawnMargin = cfg.SpawnMargin
	opts.StarCount = cfg.StarCount
	opts.Burst.Count = cfg.ParticleBurst
	opts.Burst.Decay = cfg.ParticleDecay
	opts.Mode = cfg.Mode
	if cfg.PinyinAnswers {
		opts.Romanizer = vocab.NewRomanizer()
	}
	return opts
}

// SpawnInterval is the time between meteors at level. It shrinks by one
// step per level down to the minimum.
func (o Options) SpawnInterval(level int) time.Duration {
	return max(o.SpawnIntervalMin, o.SpawnIntervalBase-time.Duration(level)*o.SpawnIntervalStep)
}

// FallSpeed is the per-tick fall speed at level for a jitter draw r in [0, 1).
func (o Options) FallSpeed(level int, r float64) float64 {
	return (o.SpeedBase + r*o.SpeedJitter + float64(level)*o.SpeedLevelStep) * o.Difficulty
}

// StarSpeedScale keeps the starfield drifting at a pace matching the meteors.
func (o Options) StarSpeedScale() float64 {
	return o.Difficulty * 5
}
