package engine

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/grid"
	"github.com/lixenwraith/term-snake/parameter"
)

// SchedulerConfig wires a game to its clock and collaborators
type SchedulerConfig struct {
	Game   *Game
	Clock  Clock // PausableClock enables CmdPause
	Audio  AudioSink
	Sinks  []SnapshotSink // Every tick's snapshot
	Screen SnapshotSink   // Latest snapshot once per batch
	OnMute func()         // Invoked for CmdMute
	Logger *log.Logger
}

// Scheduler runs one Update per tick interval against a clock
// Every missed interval is simulated; ticks are never skipped
type Scheduler struct {
	game   *Game
	clock  Clock
	audio  AudioSink
	sinks  []SnapshotSink
	screen SnapshotSink
	onMute func()
	logger *log.Logger

	turns   []grid.Direction // Pending, at most one consumed per tick
	next    time.Time        // Next tick deadline in game time
	started bool
	quit    bool
	paused  bool

	over bool
	last Snapshot
}

// NewScheduler creates a scheduler; Run or Start before Advance
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	return &Scheduler{
		game:   cfg.Game,
		clock:  clock,
		audio:  cfg.Audio,
		sinks:  cfg.Sinks,
		screen: cfg.Screen,
		onMute: cfg.OnMute,
		logger: logger,
		turns:  make([]grid.Direction, 0, parameter.InputQueueDepth),
	}
}

// Start sets the first deadline one interval after now and publishes the opening frame
func (s *Scheduler) Start(now time.Time) {
	s.next = now.Add(s.game.TickInterval())
	s.started = true
	s.last = s.game.Snapshot(now)
	s.publish(s.last)
	s.show(s.last)
}

// Submit handles a command between ticks
func (s *Scheduler) Submit(cmd Command) {
	switch cmd.Kind {
	case CmdTurn:
		if !cmd.Dir.Valid() {
			return
		}
		if len(s.turns) >= parameter.InputQueueDepth {
			s.logger.Printf("input queue full, dropping %v", cmd.Dir)
			return
		}
		s.turns = append(s.turns, cmd.Dir)
	case CmdQuit:
		s.quit = true
	case CmdPause:
		s.togglePause()
	case CmdMute:
		if s.onMute != nil {
			s.onMute()
		}
	}
}

func (s *Scheduler) togglePause() {
	p, ok := s.clock.(Pauser)
	if !ok || s.game.Over() {
		return
	}
	if p.IsPaused() {
		p.Resume()
		s.paused = false
	} else {
		p.Pause()
		s.paused = true
	}
	s.last.Paused = s.paused
	s.publish(s.last)
	s.show(s.last)
}

// Quitting reports whether a quit command was seen
func (s *Scheduler) Quitting() bool {
	return s.quit
}

// Paused reports whether game time is frozen
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Last returns the most recently published snapshot
func (s *Scheduler) Last() Snapshot {
	return s.last
}

// NextDeadline is the game time of the next tick
func (s *Scheduler) NextDeadline() time.Time {
	return s.next
}

func (s *Scheduler) popTurn() grid.Direction {
	if len(s.turns) == 0 {
		return grid.DirNone
	}
	d := s.turns[0]
	copy(s.turns, s.turns[1:])
	s.turns = s.turns[:len(s.turns)-1]
	return d
}

// Advance runs every tick whose deadline is at or before now and returns the count
// Each tick runs at its own deadline so game time is independent of scheduling jitter
func (s *Scheduler) Advance(now time.Time) int {
	if !s.started {
		s.Start(now)
		return 0
	}
	if s.paused {
		return 0
	}

	n := 0
	for !s.game.Over() && !now.Before(s.next) {
		at := s.next
		ev := s.game.Update(at, Input{Turn: s.popTurn()})
		if ev.Sound != core.SoundNone && s.audio != nil {
			s.audio.Play(ev.Sound)
		}
		s.last = ev.Snapshot
		s.publish(ev.Snapshot)
		s.report(ev)
		s.next = at.Add(s.game.TickInterval())
		n++
	}

	if n > 0 {
		s.show(s.last)
	}
	if n > parameter.MaxCatchUpWarn {
		s.logger.Printf("scheduler caught up %d ticks", n)
	}
	return n
}

func (s *Scheduler) report(ev Events) {
	switch {
	case ev.Has(EvGameOver) && !s.over:
		s.over = true
		s.logger.Printf("game over at tick %d: score %d, level %d, length %d",
			ev.Tick, ev.Snapshot.Score, ev.Snapshot.Level, len(ev.Snapshot.Snake))
	case ev.Has(EvLevelUp):
		s.logger.Printf("level %d at tick %d, interval %v", ev.Snapshot.Level, ev.Tick, ev.Snapshot.Interval)
	case ev.Has(EvGroupComplete):
		s.logger.Printf("group complete at tick %d, interval reset to %v", ev.Tick, ev.Snapshot.Interval)
	}
}

func (s *Scheduler) publish(snap Snapshot) {
	for _, sink := range s.sinks {
		sink.Publish(snap)
	}
}

func (s *Scheduler) show(snap Snapshot) {
	if s.screen != nil {
		s.screen.Publish(snap)
	}
}

// Run drives the game until ctx is cancelled or a quit command arrives
// Commands are applied between ticks; returns nil on quit
func (s *Scheduler) Run(ctx context.Context, commands <-chan Command) error {
	if !s.started {
		s.Start(s.clock.Now())
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			s.Submit(cmd)
			if s.quit {
				return nil
			}
			continue

		case <-timer.C:
		}

		var wait time.Duration
		if s.paused {
			wait = parameter.PausedPollInterval
		} else {
			s.Advance(s.clock.Now())
			wait = s.next.Sub(s.clock.Now())
			if s.game.Over() {
				wait = parameter.PausedPollInterval
			}
		}
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}
