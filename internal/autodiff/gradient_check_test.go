package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// TestGradientCheckMLP verifies the analytic gradients of a full
// two-layer network with cross-entropy loss against central finite
// differences. Tanh keeps the composite smooth, so the finite-difference
// estimate is trustworthy everywhere.
func TestGradientCheckMLP(t *testing.T) {
	const (
		batch   = 3
		in      = 4
		hidden  = 5
		classes = 3
	)

	tape := autodiff.NewTape()

	w1 := tensor.Randn(tensor.Shape{in, hidden}).Scale(0.5)
	b1 := tensor.Randn(tensor.Shape{hidden}).Scale(0.5)
	w2 := tensor.Randn(tensor.Shape{hidden, classes}).Scale(0.5)
	b2 := tensor.Randn(tensor.Shape{classes}).Scale(0.5)
	x := tensor.Randn(tensor.Shape{batch, in})
	targets := []int{0, 1, 2}

	forward := func() *tensor.Tensor {
		h := tape.Tanh(tape.AddBias(tape.MatMul(x, w1), b1))
		logits := tape.AddBias(tape.MatMul(h, w2), b2)
		return tape.CrossEntropy(logits, targets)
	}

	tape.StartRecording()
	loss := forward()
	grads := tape.Backward(loss)
	tape.StopRecording()
	tape.Clear()

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-3}

	for _, tc := range []struct {
		name  string
		param *tensor.Tensor
	}{
		{"w1", w1},
		{"b1", b1},
		{"w2", w2},
		{"b2", b2},
	} {
		analytic := grads[tc.param]
		require.NotNil(t, analytic, "%s: no gradient recorded", tc.name)

		data := tc.param.Data()
		original := make([]float32, len(data))
		copy(original, data)

		point := make([]float64, len(data))
		for i, v := range data {
			point[i] = float64(v)
		}

		// Loss as a function of this parameter's values, with the forward
		// pass re-run (unrecorded) at each probe point.
		f := func(v []float64) float64 {
			for i := range data {
				data[i] = float32(v[i])
			}
			return float64(forward().Item())
		}

		numeric := fd.Gradient(nil, f, point, settings)
		copy(data, original)

		for i := range numeric {
			require.InDelta(t, numeric[i], float64(analytic.Data()[i]), 5e-3,
				"%s[%d]: analytic %v vs numeric %v", tc.name, i, analytic.Data()[i], numeric[i])
		}
	}
}
