package core

// SoundID is an opaque sound request handed from the simulation to the audio collaborator
// The zero value means no sound
type SoundID int

const (
	SoundNone SoundID = iota

	// Bite pool, one picked at random when a gulp completes
	SoundBitePop
	SoundBiteBottle
	SoundBiteFunk
	SoundBiteTink
	SoundBitePing

	SoundPlop      // Deposit landed
	SoundGulp      // Fresh deposit eaten
	SoundDisarm    // Armed deposit eaten
	SoundExplosion // Deposit expired

	// Reward pool, rotated round-robin on group completion
	SoundRewardChime
	SoundRewardFanfare
	SoundRewardBell

	SoundLevelUp
	SoundCrash

	SoundCount
)

// BiteSounds is the pool a completed gulp draws from
var BiteSounds = []SoundID{SoundBitePop, SoundBiteBottle, SoundBiteFunk, SoundBiteTink, SoundBitePing}

// RewardSounds is the rotation used for group milestones
var RewardSounds = []SoundID{SoundRewardChime, SoundRewardFanfare, SoundRewardBell}

var soundNames = [SoundCount]string{
	SoundNone:          "none",
	SoundBitePop:       "pop",
	SoundBiteBottle:    "bottle",
	SoundBiteFunk:      "funk",
	SoundBiteTink:      "tink",
	SoundBitePing:      "ping",
	SoundPlop:          "plop",
	SoundGulp:          "gulp",
	SoundDisarm:        "disarm",
	SoundExplosion:     "explosion",
	SoundRewardChime:   "chime",
	SoundRewardFanfare: "fanfare",
	SoundRewardBell:    "bell",
	SoundLevelUp:       "levelup",
	SoundCrash:         "crash",
}

func (s SoundID) String() string {
	if s < 0 || s >= SoundCount {
		return "unknown"
	}
	return soundNames[s]
}

// SoundByName resolves a sound name as printed by String
func SoundByName(name string) (SoundID, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundID(i), true
		}
	}
	return SoundNone, false
}
