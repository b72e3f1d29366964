// Package telemetry derives per-frame statistics from generator output
// and writes them as CSV for offline inspection and parameter sweeps.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"neurogrid/pkg/core"
)

// FrameStats summarizes one generated frame.
type FrameStats struct {
	Frame          int     `csv:"frame"`
	MeanActivation float64 `csv:"mean_activation"`
	MaxActivation  float64 `csv:"max_activation"`
	StdActivation  float64 `csv:"std_activation"`
	ActiveCells    int     `csv:"active_cells"`
	Spikes         int     `csv:"spikes"`
	Connections    int     `csv:"connections"`
}

// Summary aggregates a whole run.
type Summary struct {
	Frames           int
	MeanActivation   float64
	PeakActivation   float64
	TotalSpikes      int
	TotalConnections int
}

// Collect computes per-frame statistics for a frame sequence. The
// activeThreshold matches the engine's neighbor-activation threshold.
func Collect(frames []core.Frame, activeThreshold float64) []FrameStats {
	out := make([]FrameStats, 0, len(frames))
	for i, f := range frames {
		var values []float64
		maxV := 0.0
		active := 0
		for _, row := range f.Cells {
			for _, v := range row {
				values = append(values, v)
				if v > maxV {
					maxV = v
				}
				if v > activeThreshold {
					active++
				}
			}
		}
		fs := FrameStats{
			Frame:         i,
			MaxActivation: maxV,
			ActiveCells:   active,
			Spikes:        len(f.Spikes),
			Connections:   len(f.Connections),
		}
		if len(values) > 0 {
			fs.MeanActivation = stat.Mean(values, nil)
		}
		if len(values) > 1 {
			fs.StdActivation = stat.StdDev(values, nil)
		}
		out = append(out, fs)
	}
	return out
}

// Summarize folds per-frame statistics into run totals.
func Summarize(stats []FrameStats) Summary {
	s := Summary{Frames: len(stats)}
	if len(stats) == 0 {
		return s
	}
	means := make([]float64, len(stats))
	for i, fs := range stats {
		means[i] = fs.MeanActivation
		if fs.MaxActivation > s.PeakActivation {
			s.PeakActivation = fs.MaxActivation
		}
		s.TotalSpikes += fs.Spikes
		s.TotalConnections += fs.Connections
	}
	s.MeanActivation = stat.Mean(means, nil)
	return s
}
