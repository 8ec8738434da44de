package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Display modes for meteor labels.
const (
	ModeOriginal    = "original"    // Show the prompt, type the answer
	ModeTranslation = "translation" // Show the answer, type the answer
)

// Server timings that are not worth tuning.
const (
	ShutdownDisplaySeconds   = 10.0 // Seconds to show shutdown message before auto-disconnect
	InactivityWarnUser       = 90   // Seconds
	InactivityDisconnectUser = 120  // Seconds
	MismatchFlash            = 600 * time.Millisecond

	// Max render resolution; larger terminals get a centered, bordered play area.
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Config is the fully resolved configuration.
type Config struct {
	ConfigDir string `mapstructure:"config_dir"`
	Verbose   bool   `mapstructure:"verbose"`

	// View resolution in logical units. Rendering scales to the terminal.
	ViewWidth  int `mapstructure:"view_width"`
	ViewHeight int `mapstructure:"view_height"`
	FPS        int `mapstructure:"fps"`

	MaxHealth      int `mapstructure:"max_health"`
	Damage         int `mapstructure:"damage"`
	HitPoints      int `mapstructure:"hit_points"`
	LevelScoreStep int `mapstructure:"level_score_step"`

	SpawnIntervalBase time.Duration `mapstructure:"spawn_interval_base"`
	SpawnIntervalStep time.Duration `mapstructure:"spawn_interval_step"`
	SpawnIntervalMin  time.Duration `mapstructure:"spawn_interval_min"`
	SpeedBase         float64       `mapstructure:"speed_base"`
	SpeedJitter       float64       `mapstructure:"speed_jitter"`
	SpeedLevelStep    float64       `mapstructure:"speed_level_step"`
	Difficulty        float64       `mapstructure:"difficulty"`
	SpawnMargin       float64       `mapstructure:"spawn_margin"`

	StarCount     int     `mapstructure:"star_count"`
	ParticleBurst int     `mapstructure:"particle_burst"`
	ParticleDecay float64 `mapstructure:"particle_decay"`

	Mode          string `mapstructure:"mode"`
	PinyinAnswers bool   `mapstructure:"pinyin_answers"`
	Sound         bool   `mapstructure:"sound"`
	Narrator      string `mapstructure:"narrator"` // TTS command, "log" or empty for none

	DB    string `mapstructure:"db"`
	Words string `mapstructure:"words"` // Word list file imported and watched at start
	Tag   string `mapstructure:"tag"`   // Only play words with this grammatical tag

	SSH SSHConfig `mapstructure:"ssh"`
	Web WebConfig `mapstructure:"web"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	HostKey string `mapstructure:"host_key"`
}

// WebConfig configures the web command.
type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"ssh_display_host"` // Host shown in the connect hint
}

// FrameTime is the target duration of one client frame.
func (c Config) FrameTime() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// SetDefaults registers every key with its default so that environment
// variables can override any of them.
func SetDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("config_dir", configDir)
	v.SetDefault("verbose", false)

	v.SetDefault("view_width", 120)
	v.SetDefault("view_height", 80)
	v.SetDefault("fps", 60)

	v.SetDefault("max_health", 100)
	v.SetDefault("damage", 10)
	v.SetDefault("hit_points", 10)
	v.SetDefault("level_score_step", 100)

	v.SetDefault("spawn_interval_base", 10*time.Second)
	v.SetDefault("spawn_interval_step", 400*time.Millisecond)
	v.SetDefault("spawn_interval_min", 4*time.Second)
	v.SetDefault("speed_base", 0.5)
	v.SetDefault("speed_jitter", 0.5)
	v.SetDefault("speed_level_step", 0.1)
	v.SetDefault("difficulty", 0.02)
	v.SetDefault("spawn_margin", 6.0)

	v.SetDefault("star_count", 50)
	v.SetDefault("particle_burst", 20)
	v.SetDefault("particle_decay", 0.02)

	v.SetDefault("mode", ModeOriginal)
	v.SetDefault("pinyin_answers", false)
	v.SetDefault("sound", true)
	v.SetDefault("narrator", "")

	v.SetDefault("db", filepath.Join(configDir, "meteortype.db"))
	v.SetDefault("words", "")
	v.SetDefault("tag", "")

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", 2222)
	v.SetDefault("ssh.host_key", filepath.Join(configDir, "host_key"))

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 8080)
	v.SetDefault("web.ssh_display_host", "localhost")
}

// Load resolves the configuration held by v. It sets defaults for configDir,
// reads configDir/config.yaml when present and binds METEOR_* variables.
func Load(v *viper.Viper, configDir string) (Config, error) {
	SetDefaults(v, configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value int
	}{
		{"view_width", c.ViewWidth},
		{"view_height", c.ViewHeight},
		{"fps", c.FPS},
		{"max_health", c.MaxHealth},
		{"damage", c.Damage},
		{"level_score_step", c.LevelScoreStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}
	if c.SpawnIntervalMin <= 0 || c.SpawnIntervalBase < c.SpawnIntervalMin {
		errs = append(errs, fmt.Errorf("spawn interval base %v must be at least min %v > 0", c.SpawnIntervalBase, c.SpawnIntervalMin))
	}
	if c.Difficulty <= 0 {
		errs = append(errs, fmt.Errorf("difficulty must be positive, got %v", c.Difficulty))
	}
	if c.Mode != ModeOriginal && c.Mode != ModeTranslation {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeOriginal, ModeTranslation, c.Mode))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
