package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/parameter"
)

// Config holds audio settings
type Config struct {
	Enabled       bool
	Backend       string // auto, speaker, pipe, none
	MasterVolume  float64
	EffectVolumes map[core.SoundID]float64
	SampleRate    int
}

// DefaultConfig returns enabled audio at default volumes
func DefaultConfig() *Config {
	cfg := &Config{
		Enabled:       true,
		Backend:       BackendAuto,
		MasterVolume:  parameter.DefaultMasterVolume,
		EffectVolumes: make(map[core.SoundID]float64, int(core.SoundCount)),
		SampleRate:    parameter.AudioSampleRate,
	}
	for id := core.SoundNone + 1; id < core.SoundCount; id++ {
		cfg.EffectVolumes[id] = parameter.DefaultEffectVolume
	}
	return cfg
}

// Volume is the effective gain for id
func (c *Config) Volume(id core.SoundID) float64 {
	vol := c.MasterVolume
	if ev, ok := c.EffectVolumes[id]; ok {
		vol *= ev
	}
	return vol
}

// ApplyEnv overrides cfg from environment variables
func (c *Config) ApplyEnv() {
	if enabled := os.Getenv("SNAKE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("SNAKE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	// JSON object keyed by sound name, e.g. {"crash":0.5}
	if effectVols := os.Getenv("SNAKE_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if id, ok := core.SoundByName(name); ok {
					c.EffectVolumes[id] = clampVolume(v)
				}
			}
		}
	}

	if backend := os.Getenv("SNAKE_AUDIO_BACKEND"); backend != "" {
		c.Backend = backend
	}

	if sampleRate := os.Getenv("SNAKE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			c.SampleRate = val
		}
	}
}

// LoadConfig returns defaults with environment overrides applied
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
