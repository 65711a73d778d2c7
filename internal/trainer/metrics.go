package trainer

import "time"

// window accumulates per-step measurements between log lines.
type window struct {
	samples  int
	steps    int
	elapsed  time.Duration
	lastLoss float32
}

// record adds one training step to the window.
func (w *window) record(batchSize int, stepTime time.Duration, loss float32) {
	w.samples += batchSize
	w.steps++
	w.elapsed += stepTime
	w.lastLoss = loss
}

// snapshot returns aggregated metrics and resets the window.
func (w *window) snapshot() Snapshot {
	snap := Snapshot{LastLoss: w.lastLoss}
	if w.elapsed > 0 {
		snap.ImagesPerSec = float64(w.samples) / w.elapsed.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepMS = w.elapsed.Seconds() * 1000 / float64(w.steps)
	}
	*w = window{}
	return snap
}

// Snapshot is a loggable view of recent training throughput.
type Snapshot struct {
	ImagesPerSec float64
	AvgStepMS    float64
	LastLoss     float32
}
