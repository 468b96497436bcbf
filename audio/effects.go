package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped note
func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// notes plays a short sequence of equal-length notes
func notes(freqs []float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	seq := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		seq[i] = tone(f, d, attack, release, wave, rate)
	}
	return beep.Seq(seq...)
}

// CreateBiteSound generates one of the gulp-completion bites
func CreateBiteSound(id core.SoundID, rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.BiteSoundDuration, parameter.BiteSoundAttack, parameter.BiteSoundRelease
	switch id {
	case core.SoundBitePop:
		return tone(660, d, a, r, WaveSine, rate)
	case core.SoundBiteBottle:
		return beep.Mix(
			newVolume(tone(330, d*2, a, r*2, WaveSine, rate), 0.6),
			newVolume(tone(495, d*2, a, r*2, WaveSine, rate), 0.4),
		)
	case core.SoundBiteFunk:
		return tone(196, d, a, r, WaveSaw, rate)
	case core.SoundBiteTink:
		return tone(1760, d/2, a, r/2, WaveSine, rate)
	case core.SoundBitePing:
		return tone(1318.51, d*2, a, d*2-a, WaveSine, rate)
	}
	return nil
}

// CreatePlopSound generates the falling two-note landing cue
func CreatePlopSound(rate beep.SampleRate) beep.Streamer {
	half := parameter.PlopSoundDuration / 2
	return beep.Seq(
		tone(520, half, parameter.PlopSoundAttack, half/2, WaveSine, rate),
		tone(390, half, parameter.PlopSoundAttack, half-parameter.PlopSoundAttack, WaveSine, rate),
	)
}

// CreateGulpSound generates a low swallow for a fresh deposit
func CreateGulpSound(rate beep.SampleRate) beep.Streamer {
	return tone(260, parameter.BiteSoundDuration, parameter.BiteSoundAttack, parameter.BiteSoundRelease, WaveSine, rate)
}

// CreateDisarmSound generates a dull buzz for an armed deposit
func CreateDisarmSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.DisarmSoundDuration
	return tone(180, d, parameter.BiteSoundAttack, d/2, WaveSquare, rate)
}

// CreateExplosionSound generates a noise burst over a low rumble
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.ExplosionSoundDuration, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease
	return beep.Mix(
		newVolume(tone(0, d, a, r, WaveNoise, rate), 0.6),
		newVolume(tone(60, d, a, r, WaveSaw, rate), 0.4),
	)
}

// CreateRewardSound generates one of the group-completion fanfares
func CreateRewardSound(id core.SoundID, rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.RewardNoteDuration, parameter.RewardNoteAttack, parameter.RewardNoteRelease
	switch id {
	case core.SoundRewardChime:
		return notes([]float64{783.99, 1046.50}, d, a, r, WaveSine, rate)
	case core.SoundRewardFanfare:
		return notes([]float64{523.25, 659.25, 783.99}, d, a, r, WaveSquare, rate)
	case core.SoundRewardBell:
		// Fundamental (A5) with an octave overtone
		return beep.Mix(
			newVolume(tone(880, d*3, a, d*3-a, WaveSine, rate), 0.7),
			newVolume(tone(1760, d*3, a, d*2, WaveSine, rate), 0.3),
		)
	}
	return nil
}

// CreateLevelUpSound generates a rising arpeggio
func CreateLevelUpSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.LevelUpNoteDuration
	return notes([]float64{523.25, 659.25, 783.99, 1046.50}, d, parameter.RewardNoteAttack, d/2, WaveSquare, rate)
}

// CreateCrashSound generates a falling saw with noise
func CreateCrashSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CrashSoundDuration
	step := d / 3
	return beep.Mix(
		newVolume(notes([]float64{110, 82.41, 55}, step, parameter.BiteSoundAttack, step/2, WaveSaw, rate), 0.7),
		newVolume(tone(0, d, parameter.BiteSoundAttack, d-parameter.BiteSoundAttack, WaveNoise, rate), 0.3),
	)
}

// GetSoundEffect returns the streamer for id at the configured volume, nil for unknown ids
func GetSoundEffect(id core.SoundID, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch id {
	case core.SoundBitePop, core.SoundBiteBottle, core.SoundBiteFunk, core.SoundBiteTink, core.SoundBitePing:
		s = CreateBiteSound(id, rate)
	case core.SoundPlop:
		s = CreatePlopSound(rate)
	case core.SoundGulp:
		s = CreateGulpSound(rate)
	case core.SoundDisarm:
		s = CreateDisarmSound(rate)
	case core.SoundExplosion:
		s = CreateExplosionSound(rate)
	case core.SoundRewardChime, core.SoundRewardFanfare, core.SoundRewardBell:
		s = CreateRewardSound(id, rate)
	case core.SoundLevelUp:
		s = CreateLevelUpSound(rate)
	case core.SoundCrash:
		s = CreateCrashSound(rate)
	}
	if s == nil {
		return nil
	}
	return newVolume(s, cfg.Volume(id))
}
