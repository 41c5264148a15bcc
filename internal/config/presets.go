package config

import "sort"

var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"calm": func(c *Config) {
		c.Tree.Lifetime = 9000
		c.Tree.SpawnDivisor = 45
		c.Tree.FadeAlpha = 0.3
	},
	"dense": func(c *Config) {
		c.Tree.SpawnDivisor = 8
		c.Tree.MaxDepth = 10
		c.Tree.FadeAlpha = 0.25
	},
	"flicker": func(c *Config) {
		c.Tree.Lifetime = 1500
		c.Tree.FadeWindow = 0.3
		c.Tree.FadeAlpha = 0.5
	},
	"slab": func(c *Config) {
		c.Box.Origin = [3]float64{-2, -0.5, -1}
		c.Box.Extents = [3]float64{4, 1, 2}
		c.Tree.InitialAxis = "z"
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
