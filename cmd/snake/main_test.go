package main

import (
	"flag"
	"testing"

	"github.com/lixenwraith/term-snake/config"
	"github.com/lixenwraith/term-snake/parameter"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Scores.Name = "file"

	// Unset flags leave the config alone
	applyFlags(cfg)
	if cfg.Seed != 3 || cfg.Scores.Name != "file" || !cfg.Scores.Enabled {
		t.Fatalf("Expected config untouched, got seed %d name %q", cfg.Seed, cfg.Scores.Name)
	}

	for name, value := range map[string]string{
		"seed":     "77",
		"name":     "cli",
		"scores":   "off",
		"spectate": "",
	} {
		if err := flag.Set(name, value); err != nil {
			t.Fatalf("flag.Set(%s) failed: %v", name, err)
		}
	}
	applyFlags(cfg)

	if cfg.Seed != 77 {
		t.Errorf("Expected seed 77, got %d", cfg.Seed)
	}
	if cfg.Scores.Name != "cli" {
		t.Errorf("Expected name cli, got %q", cfg.Scores.Name)
	}
	if cfg.Scores.Enabled {
		t.Error("Expected scores disabled by -scores off")
	}
	if cfg.Spectate.Addr != parameter.DefaultSpectateAddr {
		t.Errorf("Expected default spectate address, got %q", cfg.Spectate.Addr)
	}
}
