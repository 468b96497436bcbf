package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/parameter"
)

// pipeBackend mixes in-process and writes raw PCM to a system player
type pipeBackend struct {
	backend *BackendConfig
	cmd     *exec.Cmd
	output  io.WriteCloser

	mu    sync.Mutex // Protects mixer
	mixer *beep.Mixer
	rate  beep.SampleRate

	stopChan  chan struct{}
	stopped   atomic.Bool
	errChan   chan error
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func newPipeBackend(rate int) (*pipeBackend, error) {
	backend, err := DetectBackend(rate)
	if err != nil {
		return nil, err
	}

	var out io.WriteCloser
	var cmd *exec.Cmd
	if backend.Type == BackendOSS {
		// Direct file write for OSS
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
		}
		out = f
	} else {
		cmd = exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrNoAudioBackend, backend.Name, err)
		}
		out = stdin
	}

	return startPipe(backend, cmd, out, beep.SampleRate(rate)), nil
}

// startPipe launches the mix loop writing to out
func startPipe(backend *BackendConfig, cmd *exec.Cmd, out io.WriteCloser, rate beep.SampleRate) *pipeBackend {
	pb := &pipeBackend{
		backend:  backend,
		cmd:      cmd,
		output:   out,
		mixer:    &beep.Mixer{},
		rate:     rate,
		stopChan: make(chan struct{}),
		errChan:  make(chan error, 1),
	}
	pb.wg.Add(1)
	core.Go(func() {
		defer pb.wg.Done()
		pb.loop()
	})
	return pb
}

func (pb *pipeBackend) Name() string {
	return pb.backend.Name
}

func (pb *pipeBackend) Play(s beep.Streamer) {
	if pb.stopped.Load() {
		return
	}
	pb.mu.Lock()
	pb.mixer.Add(s)
	pb.mu.Unlock()
}

// Errors reports the first write failure
func (pb *pipeBackend) Errors() <-chan error {
	return pb.errChan
}

func (pb *pipeBackend) loop() {
	ticker := time.NewTicker(parameter.AudioBufferDuration)
	defer ticker.Stop()

	frames := pb.rate.N(parameter.AudioBufferDuration)
	mixBuf := make([][2]float64, frames)
	outBytes := make([]byte, frames*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-pb.stopChan:
			return
		case <-ticker.C:
		}

		pb.mu.Lock()
		n, _ := pb.mixer.Stream(mixBuf)
		pb.mu.Unlock()
		for i := n; i < frames; i++ {
			mixBuf[i] = [2]float64{}
		}

		// Silence keeps the pipe alive between effects
		floatToBytes(mixBuf, outBytes)
		if _, err := pb.output.Write(outBytes); err != nil {
			select {
			case pb.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
			default:
			}
			pb.stopped.Store(true)
			return
		}
	}
}

func (pb *pipeBackend) Close() error {
	pb.stopped.Store(true)
	pb.closeOnce.Do(func() {
		close(pb.stopChan)
		pb.wg.Wait()

		pb.closeErr = pb.output.Close()
		if pb.cmd != nil && pb.cmd.Process != nil {
			pb.cmd.Process.Kill()
			pb.cmd.Wait()
		}
	})
	return pb.closeErr
}

// floatToBytes converts stereo float frames to interleaved int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			// Soft limiter (tanh-style)
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}

			// Hard clip
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}

			binary.LittleEndian.PutUint16(out[i*parameter.AudioBytesPerFrame+ch*2:], uint16(int16(v*32767)))
		}
	}
}
