package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/config"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/parameter"
	"github.com/lixenwraith/term-snake/record"
	"github.com/lixenwraith/term-snake/render"
	"github.com/lixenwraith/term-snake/score"
	"github.com/lixenwraith/term-snake/spectate"
)

var (
	configPath   = flag.String("config", "", "Path to a TOML config file")
	debugFlag    = flag.Bool("debug", false, "Write a debug log to logs/snake.log")
	muteFlag     = flag.Bool("mute", false, "Start with sound muted")
	seedFlag     = flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	recordPath   = flag.String("record", "", "Write a frame recording to this file")
	spectateAddr = flag.String("spectate", "", "Serve a websocket spectator stream on this address")
	scoresPath   = flag.String("scores", "", "High-score database path, \"off\" disables")
	playerName   = flag.String("name", "", "Player name stored with the score")
)

func main() {
	// Panic Recovery: terminal is restored through core.OnCrash hooks
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets explicit command-line values win over the config file
func applyFlags(cfg *config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["seed"] {
		cfg.Seed = *seedFlag
	}
	if set["record"] {
		cfg.Record.Path = *recordPath
	}
	if set["spectate"] {
		cfg.Spectate.Addr = *spectateAddr
		if cfg.Spectate.Addr == "" {
			cfg.Spectate.Addr = parameter.DefaultSpectateAddr
		}
	}
	if set["scores"] {
		if *scoresPath == "off" {
			cfg.Scores.Enabled = false
		} else {
			cfg.Scores.Enabled = true
			cfg.Scores.Path = *scoresPath
		}
	}
	if set["name"] {
		cfg.Scores.Name = *playerName
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rules := cfg.Rules()
	log.Printf("starting: seed %d, board %dx%d, tick %v", seed, rules.Rows, rules.Cols, rules.BaseTick)

	keys, err := cfg.KeyMap()
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

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
	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))

	renderer := render.NewTerminalRenderer(screen)

	sound := audio.NewService(cfg.AudioConfig(), log.Default())
	defer sound.Close()
	if *muteFlag && !sound.IsMuted() {
		sound.ToggleMute()
	}

	game := engine.NewGame(rules, seed)

	audioSinks := engine.AudioSinks{sound}
	var sinks []engine.SnapshotSink

	if cfg.Record.Path != "" {
		rec, err := record.Create(cfg.Record.Path, record.NewHeader(rules, seed, time.Now()), log.Default())
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("recording: %v", err)
			}
		}()
		audioSinks = append(audioSinks, rec)
		sinks = append(sinks, rec)
	}

	if cfg.Spectate.Addr != "" {
		hub := spectate.NewHub(log.Default())
		srv, err := serveSpectators(cfg.Spectate.Addr, hub)
		if err != nil {
			return err
		}
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		sinks = append(sinks, hub)
		renderer.SetHelp(render.DefaultHelp + " Spectators: ws://" + cfg.Spectate.Addr + "/ws")
	}

	scheduler := engine.NewScheduler(engine.SchedulerConfig{
		Game:   game,
		Clock:  engine.NewPausableClock(nil),
		Audio:  audioSinks,
		Sinks:  sinks,
		Screen: renderer,
		OnMute: func() {
			if sound.ToggleMute() {
				log.Printf("sound on")
			} else {
				log.Printf("sound muted")
			}
		},
		Logger: log.Default(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commands := make(chan engine.Command, parameter.InputQueueDepth)
	reader := input.NewReader(keys, func(w, h int) {
		renderer.UpdateDimensions(w, h)
		screen.Sync()
	})
	core.Go(func() { reader.Run(ctx, screen, commands) })

	runErr := scheduler.Run(ctx, commands)
	final := scheduler.Last()
	restore()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	played, dropped := sound.Stats()
	log.Printf("exit: tick %d, score %d, sounds %d played %d dropped", final.Tick, final.Score, played, dropped)

	fmt.Printf("Final score: %d (level %d, length %d, %d eaten, %s)\n",
		final.Score, final.Level, len(final.Snake), final.FoodEaten, final.Elapsed.Round(time.Second))

	if cfg.Scores.Enabled && final.Tick > 0 {
		if err := saveScore(cfg.Scores, final); err != nil {
			log.Printf("scores: %v", err)
			fmt.Fprintf(os.Stderr, "Could not save score: %v\n", err)
		}
	}
	return nil
}

// serveSpectators binds addr before returning so a bad address fails startup
func serveSpectators(addr string, hub *spectate.Hub) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("spectate: %v", err)
		}
	})
	log.Printf("spectate: serving on %s", ln.Addr())
	return srv, nil
}

func saveScore(sc config.ScoresConfig, final engine.Snapshot) error {
	store, err := score.Open(sc.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := store.Record(ctx, score.ResultFromSnapshot(sc.Name, final, time.Now()))
	if err != nil {
		return err
	}
	rank, err := store.Rank(ctx, saved.Score)
	if err != nil {
		return err
	}
	fmt.Printf("Rank #%d for %s\n", rank, saved.Name)

	shown := sc.Shown
	if shown <= 0 {
		shown = parameter.TopScoresShown
	}
	top, err := store.Top(ctx, shown)
	if err != nil {
		return err
	}
	fmt.Println("High scores:")
	for i, r := range top {
		marker := " "
		if r.ID == saved.ID {
			marker = "*"
		}
		fmt.Printf("%s%2d. %-16s %6d  level %-2d %s\n", marker, i+1, r.Name, r.Score, r.Level, r.PlayedAt.Format("2006-01-02"))
	}
	return nil
}
