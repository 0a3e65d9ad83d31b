package activations

import (
	"math"
	"strconv"
)

// logistic implements neurograph.Differentiable with the generalised logistic curve.
type logistic struct {
	x0, l, k float64
}

// Logistic returns the logistic activation
//
//	phi(x) = L / (1 + exp(-k * (x - x0)))
//
// with midpoint x0, supremum L, and steepness k. Its derivative is computed from the value
// itself: phi'(x) = k * (1 - phi(x)/L) * phi(x).
func Logistic(x0, l, k float64) *logistic {
	return &logistic{x0, l, k}
}

func (f *logistic) Apply(x float64) float64 {
	return f.l / (1 + math.Exp(-f.k*(x-f.x0)))
}

func (f *logistic) Deriv(x float64) float64 {
	phi := f.Apply(x)
	return f.k * (1 - phi/f.l) * phi
}

func (f *logistic) String() string {
	return "logistic(" + param(f.x0) + "," + param(f.l) + "," + param(f.k) + ")"
}

// param renders a parameter so it parses back to the identical float64.
func param(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
