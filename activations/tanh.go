package activations

import (
	"math"
)

// tanh implements neurograph.Differentiable with phi(x) = tanh(x).
type tanh struct{}

// Tanh returns the hyperbolic tangent activation, with phi'(x) = 1 - tanh(x)^2.
func Tanh() *tanh {
	return new(tanh)
}

func (*tanh) Apply(x float64) float64 {
	return math.Tanh(x)
}

func (*tanh) Deriv(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

func (*tanh) String() string {
	return "tanh"
}
