// Package record writes and reads msgpack frame logs of a game session
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/parameter"
	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion tags the header of every recording
const FormatVersion = "term-snake/1"

var (
	ErrClosed    = errors.New("recorder closed")
	ErrBadFormat = errors.New("not a term-snake recording")
)

// Header opens every recording
type Header struct {
	Format    string        `msgpack:"format"`
	Session   string        `msgpack:"session"`
	StartedAt time.Time     `msgpack:"started"`
	Seed      uint64        `msgpack:"seed"`
	Rows      int           `msgpack:"rows"`
	Cols      int           `msgpack:"cols"`
	Interval  time.Duration `msgpack:"interval"`
}

// NewHeader stamps a fresh session id
func NewHeader(rules engine.Rules, seed uint64, startedAt time.Time) Header {
	return Header{
		Format:    FormatVersion,
		Session:   uuid.NewString(),
		StartedAt: startedAt,
		Seed:      seed,
		Rows:      rules.Rows,
		Cols:      rules.Cols,
		Interval:  rules.BaseTick,
	}
}

// Frame is one published tick
type Frame struct {
	Tick     uint64          `msgpack:"tick"`
	At       time.Duration   `msgpack:"at"`
	Sound    core.SoundID    `msgpack:"sound"`
	Snapshot engine.Snapshot `msgpack:"snap"`
}

// Recorder is a SnapshotSink and AudioSink that appends frames to a writer
// off the tick goroutine. Frames are dropped when the writer falls behind
type Recorder struct {
	header Header
	out    io.WriteCloser
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	logger *log.Logger

	mu      sync.Mutex
	closed  bool
	pending core.SoundID
	frames  chan Frame
	done    chan struct{}

	written atomic.Uint64
	dropped atomic.Uint64
	err     error
}

// Create opens path for writing, creating parent directories
func Create(path string, h Header, logger *log.Logger) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create recording dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r, err := NewRecorder(f, h, logger)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// NewRecorder writes the header synchronously and starts the writer goroutine
func NewRecorder(out io.WriteCloser, h Header, logger *log.Logger) (*Recorder, error) {
	return newRecorder(out, h, logger, parameter.RecorderBuffer)
}

func newRecorder(out io.WriteCloser, h Header, logger *log.Logger, buffer int) (*Recorder, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if h.Format == "" {
		h.Format = FormatVersion
	}

	buf := bufio.NewWriter(out)
	r := &Recorder{
		header: h,
		out:    out,
		buf:    buf,
		enc:    msgpack.NewEncoder(buf),
		logger: logger,
		frames: make(chan Frame, buffer),
		done:   make(chan struct{}),
	}

	if err := r.enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	core.Go(r.writeLoop)
	return r, nil
}

// Header returns the session header
func (r *Recorder) Header() Header {
	return r.header
}

// Play attaches id to the next published frame
func (r *Recorder) Play(id core.SoundID) {
	r.mu.Lock()
	r.pending = id
	r.mu.Unlock()
}

// Publish queues a frame without blocking
func (r *Recorder) Publish(s engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	f := Frame{Tick: s.Tick, At: s.Elapsed, Sound: r.pending, Snapshot: s}
	r.pending = core.SoundNone

	select {
	case r.frames <- f:
	default:
		if r.dropped.Add(1) == 1 {
			r.logger.Printf("recorder: writer behind, dropping frames")
		}
	}
}

// Stats returns frames written and dropped so far
func (r *Recorder) Stats() (written, dropped uint64) {
	return r.written.Load(), r.dropped.Load()
}

// Close drains queued frames, flushes and closes the writer
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	close(r.frames)
	r.mu.Unlock()

	<-r.done

	err := r.err
	if cerr := r.out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close recording: %w", cerr)
	}
	written, dropped := r.Stats()
	r.logger.Printf("recorder: session %s closed, %d frames, %d dropped", r.header.Session, written, dropped)
	return err
}

// writeLoop flushes per frame so a crash loses at most the frame in flight
func (r *Recorder) writeLoop() {
	defer close(r.done)
	for f := range r.frames {
		if r.err != nil {
			continue
		}
		if err := r.enc.Encode(&f); err != nil {
			r.fail(err)
			continue
		}
		if err := r.buf.Flush(); err != nil {
			r.fail(err)
			continue
		}
		r.written.Add(1)
	}
}

func (r *Recorder) fail(err error) {
	r.err = fmt.Errorf("write frame: %w", err)
	r.logger.Printf("recorder: %v", r.err)
}
