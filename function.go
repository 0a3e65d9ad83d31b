package neurograph

import (
	"github.com/pkg/errors"
)

// Function is the forward-only evaluator of a Network: it maps an input vector to the output
// vector by lazily computing (net, phi(net)) per neuron. Cycles contribute a zero in place of
// recursing, so evaluation terminates on any topology; on acyclic networks the result is the
// plain mathematical composition.
type Function struct {
	net  *Network
	comp *Computation[ForwardResult]
}

// NewFunction returns a Function over net. The Function is invalidated if the network is
// grown or Reindexed afterwards.
func NewFunction(net *Network) *Function {
	f := &Function{net: net}
	f.comp = NewComputation(net, ForwardResult{}, f.weighIn)
	return f
}

// weighIn is the evaluation hook: net is the dendrite-weighted sum of the sources' phi
// values, and phi is the neuron's activation applied to it.
func (f *Function) weighIn(c *Computation[ForwardResult], n *Neuron) (ForwardResult, error) {
	net := 0.0
	for i := range n.dendrites {
		r, err := c.Fx(n.dendrites[i].Source)
		if err != nil {
			return ForwardResult{}, err
		}

		net += n.dendrites[i].Weight * r.PhiNet
	}

	return ForwardResult{net, n.act.Apply(net)}, nil
}

// Run evaluates the network on the given input vector, pairing inputs with the Input neurons
// in order, and returns the Output neurons' phi values in order. Returns type ShapeError if
// the input length does not equal the network's input dimension. Hard-pinned cells keep
// their values.
func (f *Function) Run(input []float64) ([]float64, error) {
	if len(input) != f.net.InputSize() {
		return nil, ShapeError{f.net.InputSize(), len(input), "inputs"}
	}

	f.comp.Reset()

	for i, idx := range f.net.inputs {
		if err := f.comp.softFx(idx, ForwardResult{0, input[i]}); err != nil {
			return nil, errors.Wrapf(err, "failed to seed input neuron %d", idx)
		}
	}

	out := make([]float64, 0, f.net.OutputSize())
	for _, idx := range f.net.outputs {
		r, err := f.comp.Fx(idx)
		if err != nil {
			return nil, err
		}

		out = append(out, r.PhiNet)
	}

	return out, nil
}

// Pin hard-fixes the phi value of the neuron at index, with net = 0. Pinned cells survive
// Resets, so the neuron acts as a constant source in every subsequent Run.
func (f *Function) Pin(index int, phi float64) error {
	return f.comp.ConstFx(index, ForwardResult{0, phi})
}
