package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes per-frame statistics to a CSV file at path.
func WriteCSV(path string, stats []FrameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&stats, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
