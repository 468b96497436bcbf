package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/term-snake/parameter"
)

// speaker.Init may only succeed once per process
var speakerOnce struct {
	sync.Mutex
	done bool
}

// speakerBackend plays through the native device via beep's speaker
type speakerBackend struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

func newSpeakerBackend(rate int) (*speakerBackend, error) {
	speakerOnce.Lock()
	defer speakerOnce.Unlock()

	if !speakerOnce.done {
		sr := beep.SampleRate(rate)
		if err := speaker.Init(sr, sr.N(parameter.AudioBufferDuration)); err != nil {
			return nil, fmt.Errorf("%w: speaker: %v", ErrNoAudioBackend, err)
		}
		speakerOnce.done = true
	}

	sb := &speakerBackend{mixer: &beep.Mixer{}}
	speaker.Play(sb.mixer)
	return sb, nil
}

func (sb *speakerBackend) Name() string {
	return BackendSpeaker
}

func (sb *speakerBackend) Play(s beep.Streamer) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.closed {
		return
	}
	speaker.Lock()
	sb.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer; the device stays open for the process lifetime
func (sb *speakerBackend) Close() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.closed {
		return nil
	}
	sb.closed = true
	speaker.Lock()
	sb.mixer.Clear()
	speaker.Unlock()
	return nil
}
