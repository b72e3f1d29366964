//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"neurogrid/internal/app"
	"neurogrid/internal/config"
	"neurogrid/pkg/core"
	_ "neurogrid/pkg/patterns/all"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(engine, cfg)
	n := engine.Size()

	ebiten.SetWindowTitle("neurogrid — " + engine.Rule().Name())
	ebiten.SetWindowSize(n*cfg.Scale, n*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func buildEngine(cfg *app.Config) (*core.Engine, error) {
	if cfg.Preset != "" {
		file, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, err := file.Preset(cfg.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Batch = preset.FrameCount()
		return preset.Build()
	}
	factory, ok := core.Patterns()[cfg.Pattern]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
	return core.New(factory(nil), cfg.Size, cfg.Seed), nil
}
