// Package config loads the TOML game configuration and environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/parameter"
)

var (
	ErrUnknownKey = errors.New("unknown config key")
	ErrInvalid    = errors.New("invalid config")
)

// Duration decodes TOML strings such as "150ms" or "10s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type BoardConfig struct {
	Rows      int `toml:"rows"`
	Cols      int `toml:"cols"`
	MinLength int `toml:"min_length"`
}

type SpeedConfig struct {
	Base            Duration `toml:"base"`
	Floor           Duration `toml:"floor"`
	LevelDecrement  Duration `toml:"level_decrement"`
	GrowthDecrement Duration `toml:"growth_decrement"`
	LevelScore      int      `toml:"level_score"`
}

type DepositConfig struct {
	FreshWindow   Duration `toml:"fresh_window"`
	ArmedWindow   Duration `toml:"armed_window"`
	PenaltyGrowth int      `toml:"penalty_growth"`
	Batch         int      `toml:"batch"`
	RewardShrink  int      `toml:"reward_shrink"`
}

type IdleConfig struct {
	Base  int `toml:"base"`
	Step  int `toml:"step"`
	Floor int `toml:"floor"`
}

type AudioConfig struct {
	Enabled      bool               `toml:"enabled"`
	Backend      string             `toml:"backend"`
	MasterVolume int                `toml:"master_volume"` // 0-100
	SampleRate   int                `toml:"sample_rate"`
	Volumes      map[string]float64 `toml:"volumes"`
}

type RecordConfig struct {
	Path string `toml:"path"`
}

type SpectateConfig struct {
	Addr string `toml:"addr"`
}

type ScoresConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Name    string `toml:"name"`
	Shown   int    `toml:"shown"`
}

// Config is the full runtime configuration
type Config struct {
	Seed     uint64            `toml:"seed"` // 0 picks a time-based seed
	Board    BoardConfig       `toml:"board"`
	Speed    SpeedConfig       `toml:"speed"`
	Deposit  DepositConfig     `toml:"deposit"`
	Idle     IdleConfig        `toml:"idle"`
	Audio    AudioConfig       `toml:"audio"`
	Record   RecordConfig      `toml:"record"`
	Spectate SpectateConfig    `toml:"spectate"`
	Scores   ScoresConfig      `toml:"scores"`
	Keys     map[string]string `toml:"keys"`
}

// Default returns the stock configuration
func Default() *Config {
	r := engine.DefaultRules()
	return &Config{
		Board: BoardConfig{Rows: r.Rows, Cols: r.Cols, MinLength: r.MinLength},
		Speed: SpeedConfig{
			Base:            Duration{r.BaseTick},
			Floor:           Duration{r.MinTick},
			LevelDecrement:  Duration{r.LevelDecrement},
			GrowthDecrement: Duration{r.GrowthDecrement},
			LevelScore:      r.LevelScore,
		},
		Deposit: DepositConfig{
			FreshWindow:   Duration{r.FreshWindow},
			ArmedWindow:   Duration{r.ArmedWindow},
			PenaltyGrowth: r.PenaltyGrowth,
			Batch:         r.DepositBatch,
			RewardShrink:  r.RewardShrink,
		},
		Idle: IdleConfig{Base: r.IdleBase, Step: r.IdleStep, Floor: r.IdleFloor},
		Audio: AudioConfig{
			Enabled:      true,
			Backend:      audio.BackendAuto,
			MasterVolume: int(parameter.DefaultMasterVolume * 100),
			SampleRate:   parameter.AudioSampleRate,
		},
		Scores: ScoresConfig{
			Enabled: true,
			Path:    parameter.DefaultScoresPath,
			Shown:   parameter.TopScoresShown,
		},
	}
}

// Load decodes path over the defaults, then applies environment overrides
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults without touching the environment
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overrides the seed and score settings; audio variables apply in AudioConfig
func (c *Config) ApplyEnv() {
	if seed := os.Getenv("SNAKE_SEED"); seed != "" {
		if val, err := strconv.ParseUint(seed, 10, 64); err == nil {
			c.Seed = val
		}
	}
	if name := os.Getenv("SNAKE_PLAYER"); name != "" {
		c.Scores.Name = name
	}
	if path := os.Getenv("SNAKE_SCORES"); path != "" {
		c.Scores.Path = path
	}
}

// Validate checks derived rules, audio ranges and key bindings
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 100 {
		return fmt.Errorf("%w: master volume %d outside 0-100", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	for name := range c.Audio.Volumes {
		if _, ok := core.SoundByName(name); !ok {
			return fmt.Errorf("%w: unknown sound %q", ErrInvalid, name)
		}
	}
	if _, err := input.ParseBindings(c.Keys); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Rules maps the board, speed, deposit and idle sections onto engine rules
func (c *Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.Rows = c.Board.Rows
	r.Cols = c.Board.Cols
	r.MinLength = c.Board.MinLength
	r.BaseTick = c.Speed.Base.Duration
	r.MinTick = c.Speed.Floor.Duration
	r.LevelDecrement = c.Speed.LevelDecrement.Duration
	r.GrowthDecrement = c.Speed.GrowthDecrement.Duration
	r.LevelScore = c.Speed.LevelScore
	r.FreshWindow = c.Deposit.FreshWindow.Duration
	r.ArmedWindow = c.Deposit.ArmedWindow.Duration
	r.PenaltyGrowth = c.Deposit.PenaltyGrowth
	r.DepositBatch = c.Deposit.Batch
	r.RewardShrink = c.Deposit.RewardShrink
	r.IdleBase = c.Idle.Base
	r.IdleStep = c.Idle.Step
	r.IdleFloor = c.Idle.Floor
	return r
}

// AudioConfig builds the audio settings, environment winning over the file
func (c *Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.Backend = c.Audio.Backend
	ac.MasterVolume = float64(c.Audio.MasterVolume) / 100.0
	ac.SampleRate = c.Audio.SampleRate
	for name, v := range c.Audio.Volumes {
		if id, ok := core.SoundByName(name); ok {
			ac.EffectVolumes[id] = v
		}
	}
	ac.ApplyEnv()
	return ac
}

// KeyMap overlays the [keys] section on the default bindings
func (c *Config) KeyMap() (*input.KeyMap, error) {
	override, err := input.ParseBindings(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.Merge(input.DefaultKeyMap(), override), nil
}
