package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

func TestCrossEntropyLoss(t *testing.T) {
	tape := autodiff.NewTape()
	criterion := nn.NewCrossEntropyLoss(tape)

	logits := tensor.Zeros(tensor.Shape{8, 10})
	loss := criterion.Forward(logits, []int{0, 1, 2, 3, 4, 5, 6, 7})
	assert.InDelta(t, math.Log(10), float64(loss.Item()), 1e-5)
}

// Training a linear model on the loss should push the target logit up: a
// single gradient step must reduce the loss.
func TestCrossEntropyLossGradientStep(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	criterion := nn.NewCrossEntropyLoss(tape)
	logits := tensor.MustFromSlice([]float32{0.1, -0.2, 0.3}, tensor.Shape{1, 3})
	targets := []int{1}

	loss := criterion.Forward(logits, targets)
	before := loss.Item()

	grads := tape.Backward(loss)
	grad := grads[logits]
	require.NotNil(t, grad)

	// Manual descent step on the logits.
	data := logits.Data()
	for i, g := range grad.Data() {
		data[i] -= 0.5 * g
	}
	tape.Clear()

	after := criterion.Forward(logits, targets).Item()
	assert.Less(t, after, before)
}
