// Package neurograph provides a small framework for constructing, evaluating, and training
// neural networks whose topology is an explicit directed graph of neurons. Arbitrary wiring is
// allowed, including cycles; evaluation terminates on any graph.
//
// Building Topologies
//
// The center of everything is the Network, initialized by:
//
//		net := new(ng.Network)
//
// For brevity, neurograph is abbreviated 'ng'.
//
// Networks consist of individually indexed Neurons, each with a Role (Input, Inner, or Output),
// an activation function, and a list of Dendrites: weighted edges from source neurons. Neurons
// are added one at a time:
//
//		in := net.AddNeuron(ng.Input, activations.Identity())
//		h := net.AddNeuron(ng.Inner, activations.Logistic(0, 1, 1))
//		h.SetDendrite(in.Index(), 0.5)
//
// Activation functions are found in the subpackage "activations", weight initializers in
// "initializers", and learning-rate criteria in "criteria".
//
// Layered networks do not need to be wired by hand; FeedForward builds them:
//
//		ff, err := ng.NewFeedForward([]int{2, 2, 1}, activations.Logistic(0, 1, 1), nil, ng.Bias)
//
// Evaluation and Training
//
// Plain evaluation goes through a Function, training through a Backpropagation:
//
//		f := ff.Function()
//		outs, err := f.Run([]float64{1, 0})
//
//		bp, err := ff.Training()
//		err2, err := bp.TrainOne([]float64{1, 0}, []float64{1}, crit)
//
// Both are backed by the same memoising evaluator, which soft-fixes a default result before
// recursing into a neuron's sources so that feedback edges contribute a zero instead of
// recursing forever.
//
// Saving and Loading
//
// Networks serialise to a plain text format via WriteTo and ParseNetwork; feed-forward
// networks carry their feature flags through WriteTo and ParseFeedForward. The subpackage
// "storage" persists serialised networks by name in SQLite.
package neurograph
