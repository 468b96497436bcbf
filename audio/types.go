package audio

import (
	"errors"

	"github.com/gopxl/beep"
)

// Backend plays finished streamers; Play must not block the caller for long
type Backend interface {
	Name() string
	Play(beep.Streamer)
	Close() error
}

// BackendType identifies a CLI audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Backend selection names used in configuration
const (
	BackendAuto    = "auto"
	BackendSpeaker = "speaker"
	BackendPipe    = "pipe"
	BackendNone    = "none"
)

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrAudioDisabled  = errors.New("audio disabled")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
