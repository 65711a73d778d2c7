package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

func TestCrossEntropyUniformLogits(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	// All-equal logits: loss is log(numClasses) regardless of target.
	logits := tensor.Zeros(tensor.Shape{4, 10})
	loss := tape.CrossEntropy(logits, []int{0, 3, 7, 9})
	assert.InDelta(t, math.Log(10), float64(loss.Item()), 1e-5)
}

func TestCrossEntropyKnownValue(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	logits := tensor.MustFromSlice([]float32{2, 1, 0}, tensor.Shape{1, 3})
	loss := tape.CrossEntropy(logits, []int{0})

	// softmax([2,1,0])[0] = e²/(e²+e¹+e⁰); loss = -log of that.
	want := -math.Log(math.Exp(2) / (math.Exp(2) + math.Exp(1) + 1))
	assert.InDelta(t, want, float64(loss.Item()), 1e-5)
}

func TestCrossEntropyGradient(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	logits := tensor.MustFromSlice([]float32{
		1, 2, 3,
		0.5, -0.5, 0,
	}, tensor.Shape{2, 3})
	targets := []int{2, 0}

	loss := tape.CrossEntropy(logits, targets)
	grads := tape.Backward(loss)
	grad := grads[logits]
	require.NotNil(t, grad)

	// Gradient is (softmax - one_hot)/batch: each row must sum to zero,
	// and the target entry must be negative.
	for r := 0; r < 2; r++ {
		rowSum := float64(0)
		for c := 0; c < 3; c++ {
			rowSum += float64(grad.At(r, c))
		}
		assert.InDelta(t, 0, rowSum, 1e-6)
		assert.Negative(t, grad.At(r, targets[r]))
	}
}

func TestCrossEntropyLargeLogitsStable(t *testing.T) {
	tape := autodiff.NewTape()

	// Without the log-sum-exp trick these would overflow float32.
	logits := tensor.MustFromSlice([]float32{500, 499, 498}, tensor.Shape{1, 3})
	loss := tape.CrossEntropy(logits, []int{0})

	v := float64(loss.Item())
	assert.False(t, math.IsInf(v, 0))
	assert.False(t, math.IsNaN(v))
	want := -math.Log(1 / (1 + math.Exp(-1) + math.Exp(-2)))
	assert.InDelta(t, want, v, 1e-5)
}

func TestCrossEntropyPanics(t *testing.T) {
	tape := autodiff.NewTape()
	logits := tensor.Zeros(tensor.Shape{2, 3})

	assert.Panics(t, func() { tape.CrossEntropy(logits, []int{0}) })            // batch mismatch
	assert.Panics(t, func() { tape.CrossEntropy(logits, []int{0, 3}) })         // target out of range
	assert.Panics(t, func() { tape.CrossEntropy(logits.Reshape(6), []int{0}) }) // not 2D
}
