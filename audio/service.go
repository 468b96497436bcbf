package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/parameter"
)

// Service plays game sounds off the tick loop
// Handles graceful degradation when no audio backend is available
type Service struct {
	config  *Config
	backend Backend // nil in silent mode
	logger  *log.Logger

	queue chan core.SoundID
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewService opens the configured backend; failures fall back to silence, never an error
func NewService(cfg *Config, logger *log.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	backend, err := OpenBackend(cfg)
	if err != nil {
		if !errors.Is(err, ErrAudioDisabled) {
			logger.Printf("audio: %v, running silent", err)
		}
		backend = nil
	} else {
		logger.Printf("audio: using %s backend", backend.Name())
	}
	return NewServiceWithBackend(cfg, backend, logger)
}

// NewServiceWithBackend starts a service on an already opened backend; nil means silent
func NewServiceWithBackend(cfg *Config, backend Backend, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		config:  cfg,
		backend: backend,
		logger:  logger,
		queue:   make(chan core.SoundID, parameter.AudioQueueSize),
		done:    make(chan struct{}),
	}
	s.muted.Store(!cfg.Enabled)

	if backend != nil {
		s.wg.Add(1)
		core.Go(func() {
			defer s.wg.Done()
			s.worker()
		})
	}
	return s
}

// OpenBackend selects a backend by configuration name
// auto prefers a system player pipe, then the native speaker
func OpenBackend(cfg *Config) (Backend, error) {
	switch cfg.Backend {
	case BackendNone:
		return nil, ErrAudioDisabled
	case BackendPipe:
		return openPipe(cfg.SampleRate)
	case BackendSpeaker:
		return openSpeaker(cfg.SampleRate)
	case BackendAuto, "":
		if b, err := openPipe(cfg.SampleRate); err == nil {
			return b, nil
		}
		return openSpeaker(cfg.SampleRate)
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrNoAudioBackend, cfg.Backend)
}

func openPipe(rate int) (Backend, error) {
	pb, err := newPipeBackend(rate)
	if err != nil {
		return nil, err
	}
	return pb, nil
}

func openSpeaker(rate int) (Backend, error) {
	sb, err := newSpeakerBackend(rate)
	if err != nil {
		return nil, err
	}
	return sb, nil
}

func (s *Service) worker() {
	for {
		select {
		case <-s.done:
			return
		case id := <-s.queue:
			st := GetSoundEffect(id, s.config)
			if st == nil {
				continue
			}
			s.backend.Play(st)
			s.played.Add(1)
		}
	}
}

// Play queues a sound; never blocks, drops when the queue is full
func (s *Service) Play(id core.SoundID) {
	if id == core.SoundNone || s.backend == nil || s.muted.Load() {
		return
	}
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.queue <- id:
	default:
		s.dropped.Add(1)
	}
}

// ToggleMute flips mute state, returns true if now audible
func (s *Service) ToggleMute() bool {
	newMute := !s.muted.Load()
	s.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (s *Service) IsMuted() bool {
	return s.muted.Load()
}

// IsSilent returns true if no backend could be opened
func (s *Service) IsSilent() bool {
	return s.backend == nil
}

// Stats returns played and dropped counts
func (s *Service) Stats() (played, dropped uint64) {
	return s.played.Load(), s.dropped.Load()
}

// Close stops the worker and releases the backend
func (s *Service) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		if s.backend != nil {
			err = s.backend.Close()
		}
	})
	return err
}
