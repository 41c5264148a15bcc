package main

import (
	"strconv"
	"testing"

	"github.com/san-kum/splitbox/internal/config"
)

func TestFPSFlagDefaultsMatchConfig(t *testing.T) {
	root := newRootCmd()
	want := strconv.Itoa(config.DefaultConfig().Render.FPS)

	for _, name := range []string{"live", "gui", "serve"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil {
				t.Fatalf("find %s: %v", name, err)
			}
			f := cmd.Flags().Lookup("fps")
			if f == nil {
				t.Fatalf("%s has no --fps flag", name)
			}
			if f.DefValue != want {
				t.Errorf("%s --fps default %s, config default %s", name, f.DefValue, want)
			}
		})
	}
}

func TestApplyFlagsFPS(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unset keeps config", nil, config.DefaultFPS},
		{"explicit flag wins", []string{"--fps", "30"}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := newRootCmd().Find([]string{"serve"})
			if err != nil {
				t.Fatal(err)
			}
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			cfg := config.DefaultConfig()
			applyFlags(cmd, cfg)
			if cfg.Render.FPS != tt.want {
				t.Errorf("fps = %d, want %d", cfg.Render.FPS, tt.want)
			}
		})
	}
}
