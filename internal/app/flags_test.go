package app

import (
	"flag"
	"testing"

	"terrain-ca/internal/config"
)

func TestOptionsApplyOnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := NewOptions()
	opts.Bind(fs)
	if err := fs.Parse([]string{"-size", "32", "-density", "0.5", "-tps", "10"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	opts.Apply(cfg, fs)

	if cfg.Grid.Size != 32 || cfg.Grid.Density != 0.5 {
		t.Fatalf("grid flags not applied: %+v", cfg.Grid)
	}
	if cfg.Display.TPS != 10 {
		t.Fatalf("tps flag not applied: %+v", cfg.Display)
	}
	// Flags that were not passed must leave the config alone.
	if cfg.Grid.Seed != 42 || cfg.Display.Scale != 2 {
		t.Fatalf("unset flags clobbered config: grid=%+v display=%+v", cfg.Grid, cfg.Display)
	}
}
