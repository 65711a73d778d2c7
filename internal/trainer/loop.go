// Package trainer runs the mini-batch gradient-descent training loop:
// zero gradients, forward, loss, backward, optimizer step, clear tape.
package trainer

import (
	"log"
	"time"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/mnist"
	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/optim"
)

// Trainer wires a model, loss, optimizer and tape into a training loop.
type Trainer struct {
	model     nn.Module
	criterion *nn.CrossEntropyLoss
	optimizer optim.Optimizer
	tape      *autodiff.Tape

	// LogEvery controls mid-epoch progress lines: every LogEvery steps a
	// throughput snapshot is logged. 0 disables mid-epoch logging.
	LogEvery int
}

// EpochStats summarizes one pass over a dataset.
type EpochStats struct {
	Loss     float32 // mean batch loss
	Accuracy float32 // fraction of correctly classified samples
}

// New creates a Trainer. The tape must be the one the model's layers record
// onto.
func New(model nn.Module, criterion *nn.CrossEntropyLoss, optimizer optim.Optimizer, tape *autodiff.Tape) *Trainer {
	return &Trainer{
		model:     model,
		criterion: criterion,
		optimizer: optimizer,
		tape:      tape,
	}
}

// TrainEpoch runs one full pass over the loader's data, updating parameters
// after every batch, and returns the epoch's mean loss and accuracy.
func (t *Trainer) TrainEpoch(loader *mnist.Loader) EpochStats {
	t.tape.StartRecording()
	defer t.tape.StopRecording()

	var (
		totalLoss    float32
		totalCorrect int
		totalSamples int
		numBatches   int
		win          window
	)

	for step, batch := range loader.Epoch() {
		start := time.Now()

		t.optimizer.ZeroGrad()

		logits := t.model.Forward(batch.Images)
		loss := t.criterion.Forward(logits, batch.Labels)
		lossValue := loss.Item()

		grads := t.tape.Backward(loss)
		t.optimizer.Step(grads)
		t.tape.Clear()

		totalLoss += lossValue
		totalCorrect += int(nn.Accuracy(logits, batch.Labels)*float32(batch.Size) + 0.5)
		totalSamples += batch.Size
		numBatches++

		win.record(batch.Size, time.Since(start), lossValue)
		if t.LogEvery > 0 && (step+1)%t.LogEvery == 0 {
			snap := win.snapshot()
			log.Printf("step %d: loss=%.4f, %.0f images/sec, %.1f ms/step",
				step+1, snap.LastLoss, snap.ImagesPerSec, snap.AvgStepMS)
		}
	}

	return EpochStats{
		Loss:     totalLoss / float32(numBatches),
		Accuracy: float32(totalCorrect) / float32(totalSamples),
	}
}

// Evaluate runs a forward-only pass over the loader's data with gradient
// recording disabled and returns mean loss and accuracy. A nil loader
// (no held-out split) yields zero stats.
func (t *Trainer) Evaluate(loader *mnist.Loader) EpochStats {
	if loader == nil {
		return EpochStats{}
	}
	wasRecording := t.tape.IsRecording()
	t.tape.StopRecording()
	defer func() {
		if wasRecording {
			t.tape.StartRecording()
		}
	}()

	var (
		totalLoss    float32
		totalCorrect int
		totalSamples int
		numBatches   int
	)

	for _, batch := range loader.Epoch() {
		logits := t.model.Forward(batch.Images)
		loss := t.criterion.Forward(logits, batch.Labels)

		totalLoss += loss.Item()
		totalCorrect += int(nn.Accuracy(logits, batch.Labels)*float32(batch.Size) + 0.5)
		totalSamples += batch.Size
		numBatches++
	}

	return EpochStats{
		Loss:     totalLoss / float32(numBatches),
		Accuracy: float32(totalCorrect) / float32(totalSamples),
	}
}
