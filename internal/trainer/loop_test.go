package trainer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/mnist"
	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/optim"
	"github.com/minigrad-ml/minigrad/internal/trainer"
)

func newTestSetup(t *testing.T, hidden int, lr float32) (*trainer.Trainer, *autodiff.Tape) {
	t.Helper()
	tape := autodiff.NewTape()
	model := nn.NewSequential(
		nn.NewLinear(mnist.NumPixels, hidden, tape),
		nn.NewReLU(tape),
		nn.NewLinear(hidden, mnist.NumClasses, tape),
	)
	criterion := nn.NewCrossEntropyLoss(tape)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: lr})
	return trainer.New(model, criterion, opt, tape), tape
}

// Training on a learnable dataset must reduce the loss across epochs.
func TestTrainingReducesLoss(t *testing.T) {
	ds := mnist.Synthetic(300)
	loader, err := mnist.NewLoader(ds, 32, true, 42)
	require.NoError(t, err)

	tr, tape := newTestSetup(t, 16, 0.5)

	first := tr.TrainEpoch(loader)
	var last trainer.EpochStats
	for epoch := 0; epoch < 4; epoch++ {
		last = tr.TrainEpoch(loader)
	}

	assert.Less(t, last.Loss, first.Loss, "loss should decrease over training")
	assert.Greater(t, last.Accuracy, float32(0.8))

	// The tape is cleared after every step and recording is switched off
	// once the epoch finishes.
	assert.Equal(t, 0, tape.Len())
	assert.False(t, tape.IsRecording())
}

func TestEvaluateDoesNotTrain(t *testing.T) {
	ds := mnist.Synthetic(100)
	loader, err := mnist.NewLoader(ds, 25, false, 1)
	require.NoError(t, err)

	tr, tape := newTestSetup(t, 8, 0.1)

	a := tr.Evaluate(loader)
	b := tr.Evaluate(loader)

	// No parameter updates between the two passes.
	assert.InDelta(t, float64(a.Loss), float64(b.Loss), 1e-6)
	assert.InDelta(t, float64(a.Accuracy), float64(b.Accuracy), 1e-6)

	// Nothing was recorded.
	assert.Equal(t, 0, tape.Len())
	assert.False(t, tape.IsRecording())
}

func TestEvaluateRestoresRecording(t *testing.T) {
	ds := mnist.Synthetic(50)
	loader, err := mnist.NewLoader(ds, 50, false, 1)
	require.NoError(t, err)

	tr, tape := newTestSetup(t, 8, 0.1)

	tape.StartRecording()
	tr.Evaluate(loader)
	assert.True(t, tape.IsRecording(), "Evaluate must restore the recording state it found")
	tape.Clear()
}

// val_ratio 0 means no held-out split: the validation dataset comes back
// empty and the run evaluates against a nil loader instead of dying.
func TestEvaluateNilLoaderForEmptySplit(t *testing.T) {
	ds := mnist.Synthetic(100)
	trainData, valData := ds.Split(0)
	assert.Equal(t, 100, trainData.NumSamples())
	assert.Equal(t, 0, valData.NumSamples())

	_, err := mnist.NewLoader(valData, 256, false, 1)
	require.Error(t, err, "an empty split must not get a loader")

	tr, _ := newTestSetup(t, 8, 0.1)
	assert.NotPanics(t, func() {
		stats := tr.Evaluate(nil)
		assert.Equal(t, trainer.EpochStats{}, stats)
	})
}

func TestUntrainedModelNearChance(t *testing.T) {
	ds := mnist.Synthetic(200)
	loader, err := mnist.NewLoader(ds, 50, false, 1)
	require.NoError(t, err)

	tr, _ := newTestSetup(t, 16, 0.1)
	stats := tr.Evaluate(loader)

	// Fresh Xavier weights give roughly uniform predictions:
	// loss near log(10) = 2.30.
	assert.InDelta(t, 2.30, float64(stats.Loss), 0.5)
}
