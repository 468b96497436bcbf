package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/grid"
)

type recordingSink struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recordingSink) Publish(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

type recordingAudio struct {
	played []core.SoundID
}

func (r *recordingAudio) Play(id core.SoundID) {
	r.played = append(r.played, id)
}

func newTestScheduler(g *Game, clock Clock) (*Scheduler, *recordingSink, *recordingAudio) {
	sink := &recordingSink{}
	audio := &recordingAudio{}
	s := NewScheduler(SchedulerConfig{Game: g, Clock: clock, Audio: audio, Sinks: []SnapshotSink{sink}})
	return s, sink, audio
}

func TestSchedulerCatchUp(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	g := NewTestGame(DefaultRules(), row(10, 40, 3), grid.Right, grid.Position{Row: 0, Col: 0})
	s, sink, _ := newTestScheduler(g, mock)

	s.Start(mock.Now())
	if sink.count() != 1 {
		t.Fatalf("opening frames = %d, want 1", sink.count())
	}

	if n := s.Advance(mock.Advance(50 * time.Millisecond)); n != 0 {
		t.Errorf("Advance before deadline ran %d ticks", n)
	}

	// A long stall runs every missed tick at its own deadline
	if n := s.Advance(mock.Advance(300 * time.Millisecond)); n != 3 {
		t.Fatalf("Advance after stall ran %d ticks, want 3", n)
	}
	if g.Head() != (grid.Position{Row: 10, Col: 43}) {
		t.Errorf("Head() = %v, want (10,43)", g.Head())
	}
	if want := TestEpoch.Add(400 * time.Millisecond); !s.NextDeadline().Equal(want) {
		t.Errorf("NextDeadline() = %v, want %v", s.NextDeadline(), want)
	}
	if got := s.Last().Elapsed; got != 200*time.Millisecond {
		t.Errorf("Elapsed = %v, want 200ms", got)
	}
	if sink.count() != 4 {
		t.Errorf("published %d snapshots, want 4", sink.count())
	}
}

func TestSchedulerScreenOncePerBatch(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	g := NewTestGame(DefaultRules(), row(10, 40, 3), grid.Right, grid.Position{Row: 0, Col: 0})
	screen := &recordingSink{}
	s := NewScheduler(SchedulerConfig{Game: g, Clock: mock, Screen: screen})

	s.Start(mock.Now())
	s.Advance(mock.Advance(500 * time.Millisecond))
	if screen.count() != 2 {
		t.Fatalf("screen frames = %d, want opening plus one per batch", screen.count())
	}
	if last := screen.snaps[1]; last.Tick != 5 {
		t.Errorf("screen got tick %d, want latest 5", last.Tick)
	}

	s.Advance(mock.Advance(10 * time.Millisecond))
	if screen.count() != 2 {
		t.Errorf("screen redrawn without a tick")
	}
}

func TestSchedulerOneTurnPerTick(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	g := NewTestGame(DefaultRules(), row(10, 40, 3), grid.Right, grid.Position{Row: 0, Col: 0})
	s, _, _ := newTestScheduler(g, mock)
	s.Start(mock.Now())

	s.Submit(Turn(grid.Up))
	s.Submit(Turn(grid.Left))

	s.Advance(mock.Advance(100 * time.Millisecond))
	if g.Direction() != grid.Up {
		t.Fatalf("Direction() = %v after first tick, want Up", g.Direction())
	}
	s.Advance(mock.Advance(100 * time.Millisecond))
	if g.Direction() != grid.Left {
		t.Errorf("Direction() = %v after second tick, want Left", g.Direction())
	}
}

func TestSchedulerInputQueueBound(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	g := NewTestGame(DefaultRules(), row(10, 40, 3), grid.Right, grid.Position{Row: 0, Col: 0})
	s, _, _ := newTestScheduler(g, mock)

	for i := 0; i < 10; i++ {
		s.Submit(Turn(grid.Up))
	}
	s.Submit(Turn(grid.DirNone))
	if len(s.turns) != 4 {
		t.Errorf("queued turns = %d, want 4", len(s.turns))
	}
}

func TestSchedulerPlaysSounds(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	r := DefaultRules()
	g := NewTestGame(r, row(10, 40, 3), grid.Right, grid.Position{Row: 10, Col: 41})
	s, _, audio := newTestScheduler(g, mock)
	s.Start(mock.Now())

	s.Advance(mock.Advance(time.Duration(r.ChompTotal+1) * r.BaseTick))
	if len(audio.played) != 1 {
		t.Fatalf("played %v, want one bite", audio.played)
	}
}

func TestSchedulerStopsAtGameOver(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	snake := []grid.Position{{Row: 10, Col: 40}, {Row: 11, Col: 40}, {Row: 11, Col: 41}, {Row: 10, Col: 41}}
	g := NewTestGame(DefaultRules(), snake, grid.Right, grid.Position{Row: 0, Col: 0})
	s, sink, audio := newTestScheduler(g, mock)
	s.Start(mock.Now())

	if n := s.Advance(mock.Advance(time.Second)); n != 1 {
		t.Errorf("ran %d ticks, want 1", n)
	}
	if !s.Last().GameOver {
		t.Error("last snapshot not game over")
	}
	if len(audio.played) != 1 || audio.played[0] != core.SoundCrash {
		t.Errorf("played %v, want crash", audio.played)
	}
	if n := s.Advance(mock.Advance(time.Second)); n != 0 || sink.count() != 2 {
		t.Errorf("ticks after game over: %d, published %d", n, sink.count())
	}
}

func TestSchedulerPause(t *testing.T) {
	mock := NewMockTimeProvider(TestEpoch)
	clock := NewPausableClock(mock)
	g := NewTestGame(DefaultRules(), row(10, 40, 3), grid.Right, grid.Position{Row: 0, Col: 0})
	s, sink, _ := newTestScheduler(g, clock)
	s.Start(clock.Now())

	s.Submit(Command{Kind: CmdPause})
	if !s.Paused() || !s.Last().Paused {
		t.Fatal("pause not reflected")
	}
	if sink.count() != 2 {
		t.Errorf("published %d, want opening plus paused frame", sink.count())
	}

	mock.Advance(10 * time.Second)
	if n := s.Advance(clock.Now()); n != 0 {
		t.Errorf("ran %d ticks while paused", n)
	}

	s.Submit(Command{Kind: CmdPause})
	if s.Paused() {
		t.Fatal("resume not reflected")
	}
	mock.Advance(100 * time.Millisecond)
	if n := s.Advance(clock.Now()); n != 1 {
		t.Errorf("ran %d ticks after resume, want 1", n)
	}
}

func TestSchedulerMute(t *testing.T) {
	muted := 0
	g := NewGame(DefaultRules(), 1)
	s := NewScheduler(SchedulerConfig{Game: g, OnMute: func() { muted++ }})
	s.Submit(Command{Kind: CmdMute})
	if muted != 1 {
		t.Errorf("OnMute called %d times, want 1", muted)
	}
}

func TestSchedulerRunQuit(t *testing.T) {
	g := NewGame(DefaultRules(), 1)
	sink := &recordingSink{}
	s := NewScheduler(SchedulerConfig{Game: g, Sinks: []SnapshotSink{sink}})

	commands := make(chan Command, 1)
	commands <- Command{Kind: CmdQuit}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Run(ctx, commands); err != nil {
		t.Fatalf("Run() = %v, want nil on quit", err)
	}
	if !s.Quitting() {
		t.Error("Quitting() = false")
	}
	if sink.count() < 1 {
		t.Error("no opening frame published")
	}
}

func TestSchedulerRunCancel(t *testing.T) {
	g := NewGame(DefaultRules(), 1)
	s := NewScheduler(SchedulerConfig{Game: g})

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx, nil); err != context.DeadlineExceeded {
		t.Fatalf("Run() = %v, want deadline exceeded", err)
	}
	if s.Last().Tick == 0 {
		t.Error("no ticks ran before cancel")
	}
}

func TestAudioSinksFanOut(t *testing.T) {
	a, b := &recordingAudio{}, &recordingAudio{}
	sinks := AudioSinks{a, nil, b}
	sinks.Play(core.SoundCrash)

	if len(a.played) != 1 || len(b.played) != 1 {
		t.Fatalf("played = %d/%d, want 1/1", len(a.played), len(b.played))
	}
	if b.played[0] != core.SoundCrash {
		t.Errorf("played %v, want crash", b.played[0])
	}
}
