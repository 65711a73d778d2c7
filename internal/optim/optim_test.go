package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/optim"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

func gradsFor(pairs map[*nn.Parameter][]float32) map[*tensor.Tensor]*tensor.Tensor {
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	for p, g := range pairs {
		grads[p.Tensor()] = tensor.MustFromSlice(g, p.Tensor().Shape())
	}
	return grads
}

func TestSGDStep(t *testing.T) {
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{3}))
	sgd := optim.NewSGD([]*nn.Parameter{w}, optim.SGDConfig{LR: 0.1})

	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {10, 20, 30}}))

	// w <- w - lr*g
	assert.InDelta(t, 0, float64(w.Tensor().Data()[0]), 1e-6)
	assert.InDelta(t, 0, float64(w.Tensor().Data()[1]), 1e-6)
	assert.InDelta(t, 0, float64(w.Tensor().Data()[2]), 1e-6)
	assert.Equal(t, float32(0.1), sgd.LR())
}

func TestSGDMomentum(t *testing.T) {
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{0}, tensor.Shape{1}))
	sgd := optim.NewSGD([]*nn.Parameter{w}, optim.SGDConfig{LR: 1, Momentum: 0.5})

	// Constant gradient 1: velocities are 1, 1.5, 1.75...
	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {1}}))
	assert.InDelta(t, -1, float64(w.Tensor().Data()[0]), 1e-6)

	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {1}}))
	assert.InDelta(t, -2.5, float64(w.Tensor().Data()[0]), 1e-6)

	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {1}}))
	assert.InDelta(t, -4.25, float64(w.Tensor().Data()[0]), 1e-6)
}

func TestSGDSkipsParamsWithoutGradient(t *testing.T) {
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{5}, tensor.Shape{1}))
	unused := nn.NewParameter("unused", tensor.MustFromSlice([]float32{7}, tensor.Shape{1}))
	sgd := optim.NewSGD([]*nn.Parameter{w, unused}, optim.SGDConfig{LR: 1})

	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {1}}))

	assert.InDelta(t, 4, float64(w.Tensor().Data()[0]), 1e-6)
	assert.InDelta(t, 7, float64(unused.Tensor().Data()[0]), 1e-6)
	assert.Nil(t, unused.Grad())
}

func TestSGDZeroGrad(t *testing.T) {
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{1}, tensor.Shape{1}))
	sgd := optim.NewSGD([]*nn.Parameter{w}, optim.SGDConfig{})

	sgd.Step(gradsFor(map[*nn.Parameter][]float32{w: {1}}))
	require.NotNil(t, w.Grad())

	sgd.ZeroGrad()
	assert.Nil(t, w.Grad())
}

func TestSGDDefaults(t *testing.T) {
	sgd := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, float32(0.01), sgd.LR())

	sgd.SetLR(0.5)
	assert.Equal(t, float32(0.5), sgd.LR())
}

func TestAdamFirstStep(t *testing.T) {
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{1}, tensor.Shape{1}))
	adam := optim.NewAdam([]*nn.Parameter{w}, optim.AdamConfig{LR: 0.1})

	adam.Step(gradsFor(map[*nn.Parameter][]float32{w: {0.5}}))

	// After bias correction the first step is almost exactly -lr*sign(g):
	// m̂ = g, v̂ = g², update = lr*g/(|g|+eps).
	assert.InDelta(t, 1-0.1, float64(w.Tensor().Data()[0]), 1e-4)
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	// Minimize f(w) = w² from w=1; gradient is 2w.
	w := nn.NewParameter("w", tensor.MustFromSlice([]float32{1}, tensor.Shape{1}))
	adam := optim.NewAdam([]*nn.Parameter{w}, optim.AdamConfig{LR: 0.05})

	for i := 0; i < 200; i++ {
		g := 2 * w.Tensor().Data()[0]
		adam.Step(gradsFor(map[*nn.Parameter][]float32{w: {g}}))
	}
	assert.InDelta(t, 0, float64(w.Tensor().Data()[0]), 0.1)
}

func TestAdamDefaults(t *testing.T) {
	adam := optim.NewAdam(nil, optim.AdamConfig{})
	assert.Equal(t, float32(0.001), adam.LR())
}
