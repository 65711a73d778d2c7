package nn

import "github.com/minigrad-ml/minigrad/internal/tensor"

// Sequential is a container module that chains modules together: each
// module's output becomes the next module's input.
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, tape),
//	    nn.NewReLU(tape),
//	    nn.NewLinear(128, 10, tape),
//	)
//	logits := model.Forward(images)
type Sequential struct {
	modules []Module
}

// NewSequential creates a Sequential container over the given modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in order.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns the trainable parameters of all contained modules,
// in module order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence, allowing incremental construction.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}

// Len returns the number of contained modules.
func (s *Sequential) Len() int { return len(s.modules) }
