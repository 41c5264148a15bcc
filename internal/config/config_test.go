package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/splitbox/internal/splittree"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tree.Lifetime != 5000 {
		t.Errorf("expected lifetime 5000, got %f", cfg.Tree.Lifetime)
	}
	if cfg.Tree.SpawnDivisor != 20 {
		t.Errorf("expected spawn divisor 20, got %f", cfg.Tree.SpawnDivisor)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	dc, err := cfg.DriverConfig()
	if err != nil {
		t.Fatalf("driver config: %v", err)
	}
	if dc.InitialAxis != splittree.X {
		t.Errorf("expected initial axis x, got %v", dc.InitialAxis)
	}
	if dc.Box.Origin != (splittree.Vec3{-1.5, -1.5, -1.5}) {
		t.Errorf("unexpected box origin %v", dc.Box.Origin)
	}
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitbox.yaml")
	data := []byte("seed: 7\ntree:\n  lifetime: 2000\n  initial_axis: y\nbox:\n  extents: [1, 2, 3]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Tree.Lifetime != 2000 {
		t.Errorf("expected lifetime 2000, got %f", cfg.Tree.Lifetime)
	}
	if cfg.Tree.SpawnDivisor != DefaultSpawnDivisor {
		t.Errorf("unset field lost its default: %f", cfg.Tree.SpawnDivisor)
	}
	if cfg.Box.Extents != [3]float64{1, 2, 3} {
		t.Errorf("unexpected extents %v", cfg.Box.Extents)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("flicker")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", loaded, cfg)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("tree:\n  fade_alpha: 0.9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOver(path, GetPreset("calm"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Tree.FadeAlpha != 0.9 {
		t.Errorf("file value lost: %f", cfg.Tree.FadeAlpha)
	}
	if cfg.Tree.Lifetime != 9000 {
		t.Errorf("preset value lost: %f", cfg.Tree.Lifetime)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SPLITBOX_SEED", "99")
	t.Setenv("SPLITBOX_TREE_FADE_ALPHA", "0.7")
	t.Setenv("SPLITBOX_RENDER_WIDTH", "640")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Seed)
	}
	if cfg.Tree.FadeAlpha != 0.7 {
		t.Errorf("expected fade alpha 0.7, got %f", cfg.Tree.FadeAlpha)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != DefaultHeight {
		t.Errorf("unset variable changed height to %d", cfg.Render.Height)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("SPLITBOX_RUN_FRAMES", "many")
	if err := ApplyEnv(DefaultConfig()); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"bad axis", func(c *Config) { c.Tree.InitialAxis = "w" }},
		{"zero lifetime", func(c *Config) { c.Tree.Lifetime = 0 }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }},
		{"zero dt", func(c *Config) { c.Run.Dt = 0 }},
		{"negative frames", func(c *Config) { c.Run.Frames = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tree.Lifetime != 9000 {
		t.Errorf("expected lifetime 9000, got %f", cfg.Tree.Lifetime)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.Tree.Lifetime = 1
	if again := GetPreset("calm"); again.Tree.Lifetime != 9000 {
		t.Error("preset mutated through returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
