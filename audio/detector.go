package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// playerCandidate is a CLI player that reads raw stereo s16le on stdin
type playerCandidate struct {
	typ  BackendType
	bin  string
	name string
	args func(rate string) []string
}

// playerCandidates in probe order, lightest first
var playerCandidates = []playerCandidate{
	{BackendPulse, "pacat", "pacat", func(r string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}
	}},
	{BackendPipeWire, "pw-cat", "pw-cat", func(r string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"}
	}},
	{BackendALSA, "aplay", "aplay", func(r string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}
	}},
	{BackendSoX, "play", "sox", func(r string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}
	}},
	{BackendFFplay, "ffplay", "ffplay", func(r string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// DetectBackend finds a CLI player for raw stereo s16le at rate
// SNAKE_AUDIO_PLAYER restricts the probe to one binary name
func DetectBackend(rate int) (*BackendConfig, error) {
	return detectWith(rate, os.Getenv("SNAKE_AUDIO_PLAYER"), exec.LookPath)
}

func detectWith(rate int, only string, lookPath func(string) (string, error)) (*BackendConfig, error) {
	r := strconv.Itoa(rate)
	for _, c := range playerCandidates {
		if only != "" && only != c.bin && only != c.name {
			continue
		}
		if path, err := lookPath(c.bin); err == nil {
			return &BackendConfig{Type: c.typ, Name: c.name, Path: path, Args: c.args(r)}, nil
		}
	}

	// FreeBSD OSS takes PCM by direct device write
	if runtime.GOOS == "freebsd" && (only == "" || only == "oss") {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
