package app

import (
	"flag"

	"terrain-ca/internal/config"
)

// Options represents the command-line parameters of the viewer.
type Options struct {
	ConfigPath string
	Size       int
	Density    float64
	Seed       int64
	Scale      int
	TPS        int
}

// NewOptions returns Options populated with the embedded-config defaults.
func NewOptions() *Options {
	return &Options{Size: 256, Density: 0.35, Seed: 42, Scale: 2, TPS: 30}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "optional YAML config file")
	fs.IntVar(&o.Size, "size", o.Size, "grid height and width")
	fs.Float64Var(&o.Density, "density", o.Density, "seeding density in [0, 1]")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "seed for the random source")
	fs.IntVar(&o.Scale, "scale", o.Scale, "pixel scale multiplier")
	fs.IntVar(&o.TPS, "tps", o.TPS, "generations per second while running")
}

// Apply overwrites cfg with the flags that were explicitly set on fs, so the
// command line wins over both embedded defaults and a config file.
func (o *Options) Apply(cfg *config.Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Grid.Size = o.Size
		case "density":
			cfg.Grid.Density = o.Density
		case "seed":
			cfg.Grid.Seed = o.Seed
		case "scale":
			cfg.Display.Scale = o.Scale
		case "tps":
			cfg.Display.TPS = o.TPS
		}
	})
}
