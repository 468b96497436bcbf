package audio

import (
	"errors"
	"os/exec"
	"testing"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(bin string) (string, error) {
		for _, a := range available {
			if a == bin {
				return "/usr/bin/" + bin, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestDetectPrefersFirstCandidate(t *testing.T) {
	cfg, err := detectWith(48000, "", fakeLookPath("aplay", "pacat"))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if cfg.Type != BackendPulse || cfg.Path != "/usr/bin/pacat" {
		t.Errorf("Expected pacat, got %s at %s", cfg.Name, cfg.Path)
	}
	var found bool
	for _, a := range cfg.Args {
		if a == "--rate=48000" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected rate in args, got %v", cfg.Args)
	}
}

func TestDetectRestrictedPlayer(t *testing.T) {
	cfg, err := detectWith(44100, "sox", fakeLookPath("pacat", "play"))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if cfg.Type != BackendSoX || cfg.Name != "sox" {
		t.Errorf("Expected sox, got %s", cfg.Name)
	}
}

func TestDetectNothingInstalled(t *testing.T) {
	if _, err := detectWith(44100, "aplay", fakeLookPath("pacat")); !errors.Is(err, ErrNoAudioBackend) {
		t.Errorf("Expected ErrNoAudioBackend, got %v", err)
	}
}
