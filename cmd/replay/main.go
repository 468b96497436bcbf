package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/record"
	"github.com/lixenwraith/term-snake/render"
)

var (
	speedFlag = flag.Float64("speed", 1.0, "Playback speed multiplier")
	muteFlag  = flag.Bool("mute", false, "Play back without sound")
)

const replayHelp = "Replay: P to pause, Q to quit."

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: replay [flags] recording\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 || *speedFlag <= 0 {
		flag.Usage()
		os.Exit(2)
	}
	log.SetOutput(io.Discard)

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	rec, err := record.Open(path)
	if err != nil {
		return err
	}
	defer rec.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	restore := sync.OnceFunc(screen.Fini)
	core.OnCrash(restore)
	defer restore()

	renderer := render.NewTerminalRenderer(screen)
	renderer.SetHelp(replayHelp)

	acfg := audio.LoadConfig()
	if *muteFlag {
		acfg.Enabled = false
	}
	sound := audio.NewService(acfg, nil)
	defer sound.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan engine.Command, 8)
	reader := input.NewReader(input.DefaultKeyMap(), func(w, h int) {
		renderer.UpdateDimensions(w, h)
		screen.Sync()
	})
	core.Go(func() { reader.Run(ctx, screen, commands) })

	p := &player{
		rec:      rec,
		renderer: renderer,
		sound:    sound,
		speed:    *speedFlag,
		commands: commands,
	}
	frames, err := p.play()
	restore()
	if err != nil {
		return err
	}
	fmt.Printf("Replayed %d frames of session %s\n", frames, rec.Header.Session)
	return nil
}

// frameSource yields recorded frames, io.EOF after the last
type frameSource interface {
	Next() (record.Frame, error)
}

// player paces recorded frames by their game-time offsets
type player struct {
	rec      frameSource
	renderer engine.SnapshotSink
	sound    engine.AudioSink
	speed    float64
	commands <-chan engine.Command
}

// play shows every frame, holds the last one and returns once the viewer quits
func (p *player) play() (int, error) {
	pending, err := p.rec.Next()
	done := errors.Is(err, io.EOF)
	if err != nil && !done {
		return 0, err
	}

	var (
		frames int
		paused bool
		last   engine.Snapshot
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case cmd, ok := <-p.commands:
			if !ok || cmd.Kind == engine.CmdQuit {
				return frames, nil
			}
			if cmd.Kind == engine.CmdPause && frames > 0 {
				paused = !paused
				last.Paused = paused
				p.renderer.Publish(last)
				if !paused && !done {
					timer.Reset(0)
				}
			}
			continue
		case <-timer.C:
		}
		if paused || done {
			continue
		}

		if pending.Sound != core.SoundNone {
			p.sound.Play(pending.Sound)
		}
		last = pending.Snapshot
		p.renderer.Publish(last)
		frames++

		next, err := p.rec.Next()
		if errors.Is(err, io.EOF) {
			done = true
			continue
		}
		if err != nil {
			return frames, err
		}

		gap := next.At - pending.At
		if gap <= 0 {
			gap = pending.Snapshot.Interval
		}
		pending = next
		timer.Reset(time.Duration(float64(gap) / p.speed))
	}
}
