package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioQueueSize is the number of sound requests buffered ahead of the player
	AudioQueueSize = 16
)

// Volumes (0.0-1.0)
const (
	DefaultMasterVolume = 0.6
	DefaultEffectVolume = 0.8
)

// Bite Sound
const (
	BiteSoundDuration = 90 * time.Millisecond
	BiteSoundAttack   = 3 * time.Millisecond
	BiteSoundRelease  = 60 * time.Millisecond
)

// Plop Sound (deposit landing)
const (
	PlopSoundDuration = 260 * time.Millisecond
	PlopSoundAttack   = 10 * time.Millisecond
	PlopSoundRelease  = 200 * time.Millisecond
)

// Reward Sound
const (
	RewardNoteDuration = 110 * time.Millisecond
	RewardNoteAttack   = 5 * time.Millisecond
	RewardNoteRelease  = 70 * time.Millisecond
)

// Explosion Sound
const (
	ExplosionSoundDuration = 420 * time.Millisecond
	ExplosionSoundAttack   = 5 * time.Millisecond
	ExplosionSoundRelease  = 380 * time.Millisecond
)

// Level-up, disarm and crash
const (
	LevelUpNoteDuration = 70 * time.Millisecond
	DisarmSoundDuration = 120 * time.Millisecond
	CrashSoundDuration  = 600 * time.Millisecond
)

// Pipe backend output format: interleaved stereo int16 little-endian
const (
	AudioChannels      = 2
	AudioBytesPerFrame = 4
)
