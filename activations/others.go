package activations

import (
	"math"
)

// arctan implements neurograph.Differentiable with phi(x) = atan(x).
type arctan struct{}

// Arctan returns the arctangent activation, with phi'(x) = 1 / (1 + x^2).
func Arctan() *arctan {
	return new(arctan)
}

func (*arctan) Apply(x float64) float64 {
	return math.Atan(x)
}

func (*arctan) Deriv(x float64) float64 {
	return 1 / (1 + x*x)
}

func (*arctan) String() string {
	return "arctan"
}

// erf implements neurograph.Differentiable with the Gauss error function.
type erf struct{}

// Erf returns the error-function activation, with phi'(x) = 2/sqrt(pi) * exp(-x^2).
func Erf() *erf {
	return new(erf)
}

func (*erf) Apply(x float64) float64 {
	return math.Erf(x)
}

func (*erf) Deriv(x float64) float64 {
	return 2 / math.Sqrt(math.Pi) * math.Exp(-x*x)
}

func (*erf) String() string {
	return "erf"
}

// sign implements only neurograph.Activation; it has no derivative, so networks using it can
// be evaluated but not trained.
type sign struct{}

// Sign returns the sign activation: -1 for negative x, 1 otherwise.
func Sign() *sign {
	return new(sign)
}

func (*sign) Apply(x float64) float64 {
	if x < 0 {
		return -1
	}

	return 1
}

func (*sign) String() string {
	return "sign"
}
