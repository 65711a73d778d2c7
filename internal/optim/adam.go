package optim

import (
	"github.com/chewxy/math32"

	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2014).
//
// Per parameter, Adam keeps exponential moving averages of the gradient (m)
// and its square (v), corrects their initialization bias, and scales the
// step by the inverse root of v:
//
//	m = beta1*m + (1-beta1)*grad
//	v = beta2*v + (1-beta2)*grad²
//	m̂ = m / (1 - beta1^t)
//	v̂ = v / (1 - beta2^t)
//	param = param - lr * m̂ / (sqrt(v̂) + eps)
type Adam struct {
	params []*nn.Parameter
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	step   int
	m      map[*nn.Parameter]*tensor.Tensor
	v      map[*nn.Parameter]*tensor.Tensor
}

// AdamConfig holds Adam hyperparameters. Zero values take the customary
// defaults: lr 0.001, betas (0.9, 0.999), eps 1e-8.
type AdamConfig struct {
	LR    float32
	Betas [2]float32
	Eps   float32
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float32{} {
		config.Betas = [2]float32{0.9, 0.999}
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter]*tensor.Tensor),
		v:      make(map[*nn.Parameter]*tensor.Tensor),
	}
}

// Step applies one Adam update to every parameter with a gradient in the map.
func (a *Adam) Step(grads map[*tensor.Tensor]*tensor.Tensor) {
	a.step++
	biasCorr1 := 1 - math32.Pow(a.beta1, float32(a.step))
	biasCorr2 := 1 - math32.Pow(a.beta2, float32(a.step))

	for _, param := range a.params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}
		param.SetGrad(grad)

		m, ok := a.m[param]
		if !ok {
			m = tensor.Zeros(param.Tensor().Shape())
			a.m[param] = m
			a.v[param] = tensor.Zeros(param.Tensor().Shape())
		}
		v := a.v[param]

		md := m.Data()
		vd := v.Data()
		g := grad.Data()
		w := param.Tensor().Data()
		for i := range w {
			md[i] = a.beta1*md[i] + (1-a.beta1)*g[i]
			vd[i] = a.beta2*vd[i] + (1-a.beta2)*g[i]*g[i]
			mHat := md[i] / biasCorr1
			vHat := vd[i] / biasCorr2
			w[i] -= a.lr * mHat / (math32.Sqrt(vHat) + a.eps)
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (a *Adam) LR() float32 { return a.lr }
