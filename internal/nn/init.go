package nn

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// Xavier returns a tensor initialized with Xavier/Glorot uniform values:
// U(-bound, bound) with bound = sqrt(6 / (fan_in + fan_out)).
//
// This keeps activation variance roughly constant across layers, which is
// what makes deep sigmoid/tanh stacks trainable; it also works well with
// ReLU at the depths used here.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	bound := math32.Sqrt(6 / float32(fanIn+fanOut))
	t := tensor.New(shape)
	data := t.Data()
	for i := range data {
		data[i] = (rand.Float32()*2 - 1) * bound
	}
	return t
}
