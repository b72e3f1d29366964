package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Pattern    string
	Preset     string
	ConfigPath string
	Scale      int
	FPS        int
	Size       int
	Batch      int
	Seed       int64
}

// NewConfig returns a Config populated with favicon-sized defaults.
func NewConfig() *Config {
	return &Config{Pattern: "burst", Scale: 96, FPS: 12, Size: 4, Batch: 12, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern to run")
	fs.StringVar(&c.Preset, "preset", c.Preset, "named preset (overrides -pattern)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "preset file overlaying the built-in defaults")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier per cell")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frame replay rate")
	fs.IntVar(&c.Size, "size", c.Size, "grid edge length")
	fs.IntVar(&c.Batch, "batch", c.Batch, "frames generated per batch")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for deterministic generation")
}
