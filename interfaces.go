package neurograph

// Activation is the capability the evaluator requires of an activation function: apply the
// function to a neuron's weighted input sum, and render the literal used by serialisation.
//
// All provided Activations can be found in the subpackage "activations".
type Activation interface {
	// Apply returns the activation's value at x.
	Apply(x float64) float64

	// String returns the activation literal, e.g. "identity" or "logistic(0,1,1)". The
	// literal must parse back to an equivalent Activation.
	String() string
}

// Differentiable is an Activation that can also supply its derivative. Backpropagation
// requires every trained neuron's activation to be Differentiable; plain forward evaluation
// does not.
type Differentiable interface {
	Activation

	// Deriv returns the activation's derivative at x.
	Deriv(x float64) float64
}

// Initializer supplies fresh weights for new dendrites, one call per weight.
//
// All provided Initializers can be found in the subpackage "initializers".
type Initializer func() float64

// Criterion is the learning-rate state machine consulted once per training step: per sample
// in on-line mode, per batch in batch mode.
//
// All provided Criteria can be found in the subpackage "criteria".
type Criterion interface {
	// Rate returns the step size to apply for the current squared error. A return of zero
	// means no update should be performed.
	Rate(err2 float64) float64

	// Updated returns whether the most recent call to Rate requested an update. Before any
	// call to Rate, Updated returns true.
	Updated() bool
}
