// Command framestats generates a run headlessly and reports per-frame
// statistics, optionally writing them to CSV for offline comparison of
// pattern tunings.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"neurogrid/internal/config"
	"neurogrid/internal/telemetry"
	"neurogrid/pkg/core"
	_ "neurogrid/pkg/patterns/all"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	pattern := flag.String("pattern", "burst", "pattern to run")
	preset := flag.String("preset", "", "named preset (overrides -pattern)")
	configPath := flag.String("config", "", "preset file overlaying the built-in defaults")
	frames := flag.Int("frames", 0, "frames to generate (0 uses the preset or default count)")
	size := flag.Int("size", 4, "grid edge length")
	seed := flag.Int64("seed", 42, "seed for deterministic generation")
	out := flag.String("out", "", "CSV output path (empty disables)")
	var overrides kvList
	flag.Var(&overrides, "set", "pattern option in key=value form (repeatable)")
	flag.Parse()

	engine, frameCount, err := buildEngine(*pattern, *preset, *configPath, *size, *seed, overrides)
	if err != nil {
		log.Fatal(err)
	}
	if *frames > 0 {
		frameCount = *frames
	}

	run := engine.Generate(frameCount)
	stats := telemetry.Collect(run, engine.Params().ActiveThreshold)
	summary := telemetry.Summarize(stats)

	fmt.Printf("pattern=%s size=%d frames=%d seed=%d\n", engine.Rule().Name(), engine.Size(), summary.Frames, *seed)
	fmt.Printf("mean activation %.4f peak %.4f\n", summary.MeanActivation, summary.PeakActivation)
	fmt.Printf("spikes %d connections %d\n", summary.TotalSpikes, summary.TotalConnections)

	if *out != "" {
		if err := telemetry.WriteCSV(*out, stats); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s\n", *out)
	}
}

func buildEngine(pattern, preset, configPath string, size int, seed int64, overrides kvList) (*core.Engine, int, error) {
	if preset != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return nil, 0, err
		}
		p, err := file.Preset(preset)
		if err != nil {
			return nil, 0, err
		}
		engine, err := p.Build()
		return engine, p.FrameCount(), err
	}

	factory, ok := core.Patterns()[pattern]
	if !ok {
		return nil, 0, fmt.Errorf("unknown pattern %q", pattern)
	}
	opts := map[string]string{}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		opts[parts[0]] = parts[1]
	}
	return core.New(factory(opts), size, seed), 12, nil
}
