package neurograph

import (
	"github.com/pkg/errors"
)

// ForwardResult is the per-neuron result of a forward pass: the weighted input sum and the
// activation applied to it. The zero value is the additive identity used to break cycles.
type ForwardResult struct {
	Net    float64
	PhiNet float64
}

// BackwardResult is the per-neuron result of a backward pass: the backpropagated error
// signal. The zero value is the additive identity used to break cycles.
type BackwardResult struct {
	Delta float64
}

// fmapEntry locates one outgoing edge of a source neuron: the consumer holding the dendrite,
// and the dendrite's position within the consumer's list. Positions are stored instead of
// references so the entries survive the dendrite slices being reallocated.
type fmapEntry struct {
	consumer int
	dendrite int
}

// buildFmap builds the reverse-adjacency map of net: for each source index, the list of edges
// leaving it. The map is only valid while the topology is structurally unchanged.
func buildFmap(net *Network) [][]fmapEntry {
	fmap := make([][]fmapEntry, net.SlotCount())

	net.Neurons(func(n *Neuron) bool {
		for di := range n.dendrites {
			src := n.dendrites[di].Source
			fmap[src] = append(fmap[src], fmapEntry{n.index, di})
		}

		return true
	})

	return fmap
}

// backward computes per-neuron deltas by walking the reverse-adjacency map, reading the
// sibling Function's cached forward results for the activation derivatives.
type backward struct {
	net  *Network
	fw   *Function
	fmap [][]fmapEntry
	comp *Computation[BackwardResult]
}

func newBackward(net *Network, fw *Function, fmap [][]fmapEntry) *backward {
	bw := &backward{net: net, fw: fw, fmap: fmap}
	bw.comp = NewComputation(net, BackwardResult{}, bw.deriveDelta)
	return bw
}

// deriveDelta is the evaluation hook: delta is the weighted sum of the consumers' deltas,
// scaled by the activation derivative at the neuron's own net. Output neurons never go
// through here; their deltas are seeded by Run before the sweep.
func (bw *backward) deriveDelta(c *Computation[BackwardResult], n *Neuron) (BackwardResult, error) {
	if n.role == Output {
		return BackwardResult{}, InvariantError{"delta of an output neuron must be set before the sweep"}
	}

	d, ok := n.act.(Differentiable)
	if !ok {
		return BackwardResult{}, ConfigError{"activation " + n.act.String() + " has no derivative"}
	}

	sum := 0.0
	for _, e := range bw.fmap[n.index] {
		consumer := bw.net.slots[e.consumer]

		r, err := c.Fx(e.consumer)
		if err != nil {
			return BackwardResult{}, err
		}

		sum += r.Delta * consumer.dendrites[e.dendrite].Weight
	}

	fwr, err := bw.fw.comp.PeekFx(n.index)
	if err != nil {
		return BackwardResult{}, errors.Wrapf(err, "no forward result for neuron %d", n.index)
	}

	return BackwardResult{sum * d.Deriv(fwr.Net)}, nil
}

// Run seeds the output deltas from the error vector and then forces evaluation of every
// delta reachable from the inputs. The sibling Function's cells must be fresh from a forward
// pass over the same sample.
func (bw *backward) Run(errv []float64) error {
	if len(errv) != bw.net.OutputSize() {
		return ShapeError{bw.net.OutputSize(), len(errv), "errors"}
	}

	bw.comp.Reset()

	for i, idx := range bw.net.outputs {
		n := bw.net.slots[idx]

		d, ok := n.act.(Differentiable)
		if !ok {
			return ConfigError{"activation " + n.act.String() + " has no derivative"}
		}

		fwr, err := bw.fw.comp.PeekFx(idx)
		if err != nil {
			return errors.Wrapf(err, "no forward result for output neuron %d", idx)
		}

		if err := bw.comp.softFx(idx, BackwardResult{errv[i] * d.Deriv(fwr.Net)}); err != nil {
			return errors.Wrapf(err, "failed to seed delta of output neuron %d", idx)
		}
	}

	for _, idx := range bw.net.inputs {
		if _, err := bw.comp.Fx(idx); err != nil {
			return err
		}
	}

	return nil
}
