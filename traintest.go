package neurograph

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Sample is one training example: an input vector paired with the targets expected of the
// network's outputs.
type Sample struct {
	Inputs  []float64
	Targets []float64
}

// Pin declares a neuron whose activation is held constant during training: its forward value
// is hard-fixed to Phi and its delta to zero, so it participates as a constant and absorbs no
// gradient. The feed-forward bias source is the usual case.
type Pin struct {
	Index int
	Phi   float64
}

// compSlot is a paired forward and backward evaluator processing one sample. Batch training
// keeps one slot per sample so that every backward cache is still live when the update step
// runs.
type compSlot struct {
	fw *Function
	bw *backward
}

// Backpropagation trains a Network by gradient descent. It owns the network's
// reverse-adjacency map, the list of hard pins, and a pool of computation slots; the map and
// the pool are built once and assume the topology stays structurally unchanged for the
// trainer's lifetime.
type Backpropagation struct {
	net  *Network
	fmap [][]fmapEntry
	pins []Pin

	slots []compSlot
}

// NewBackpropagation returns a trainer over net with the given pins. Every neuron's
// activation must be Differentiable; a neuron without a derivative is type ConfigError. Pin
// indices must refer to existing neurons.
func NewBackpropagation(net *Network, pins ...Pin) (*Backpropagation, error) {
	var cfgErr error
	net.Neurons(func(n *Neuron) bool {
		if _, ok := n.act.(Differentiable); !ok {
			cfgErr = ConfigError{"activation " + n.act.String() + " has no derivative"}
			return false
		}

		return true
	})
	if cfgErr != nil {
		return nil, cfgErr
	}

	for _, p := range pins {
		if _, err := net.Neuron(p.Index); err != nil {
			return nil, errors.Wrapf(err, "invalid pin")
		}
	}

	return &Backpropagation{
		net:  net,
		fmap: buildFmap(net),
		pins: pins,
	}, nil
}

// assertSlots grows the slot pool to at least n slots, applying every pin to each new slot.
func (bp *Backpropagation) assertSlots(n int) error {
	for len(bp.slots) < n {
		fw := NewFunction(bp.net)
		bw := newBackward(bp.net, fw, bp.fmap)

		for _, p := range bp.pins {
			if err := fw.Pin(p.Index, p.Phi); err != nil {
				return errors.Wrapf(err, "failed to pin neuron %d", p.Index)
			}
			if err := bw.comp.ConstFx(p.Index, BackwardResult{}); err != nil {
				return errors.Wrapf(err, "failed to pin delta of neuron %d", p.Index)
			}
		}

		bp.slots = append(bp.slots, compSlot{fw, bw})
	}

	return nil
}

// compute runs one full forward and backward pass of the sample through the slot, returning
// the squared-error norm of the outputs against the targets. Returns type ShapeError if the
// target length disagrees with the output dimension.
func (bp *Backpropagation) compute(s Sample, slot compSlot) (float64, error) {
	actual, err := slot.fw.Run(s.Inputs)
	if err != nil {
		return 0, errors.Wrapf(err, "forward pass failed")
	}

	if len(s.Targets) != len(actual) {
		return 0, ShapeError{len(actual), len(s.Targets), "targets"}
	}

	errv := make([]float64, len(actual))
	floats.SubTo(errv, actual, s.Targets)
	err2 := floats.Dot(errv, errv)

	if err := slot.bw.Run(errv); err != nil {
		return 0, errors.Wrapf(err, "backward pass failed")
	}

	return err2, nil
}

// update applies one gradient step from the slot's caches: for every dendrite, the weight
// moves by -alpha * delta(consumer) * phi(source). Neurons without dendrites are skipped
// before their delta cell is read.
func (bp *Backpropagation) update(alpha float64, slot compSlot) error {
	var updErr error

	bp.net.Neurons(func(n *Neuron) bool {
		if len(n.dendrites) == 0 {
			return true
		}

		d, err := slot.bw.comp.PeekFx(n.index)
		if err != nil {
			updErr = errors.Wrapf(err, "no delta for neuron %d", n.index)
			return false
		}

		for i := range n.dendrites {
			fwr, err := slot.fw.comp.PeekFx(n.dendrites[i].Source)
			if err != nil {
				updErr = errors.Wrapf(err, "no forward result for neuron %d", n.dendrites[i].Source)
				return false
			}

			n.dendrites[i].Weight -= alpha * d.Delta * fwr.PhiNet
		}

		return true
	})

	return updErr
}

// TrainOne performs one on-line training step: forward, backward, then a weight update at the
// rate the criterion requests (none if it requests zero). Returns the sample's squared error.
func (bp *Backpropagation) TrainOne(inputs, targets []float64, crit Criterion) (float64, error) {
	if err := bp.assertSlots(1); err != nil {
		return 0, err
	}

	err2, err := bp.compute(Sample{inputs, targets}, bp.slots[0])
	if err != nil {
		return 0, err
	}

	if alpha := crit.Rate(err2); alpha != 0 {
		if err := bp.update(alpha, bp.slots[0]); err != nil {
			return 0, err
		}
	}

	return err2, nil
}

// TrainBatch performs one batch training step over the whole set: every sample's forward and
// backward pass completes, in its own slot, before any weight moves. The criterion is
// consulted once with the mean squared error; the rate it returns is divided by the set size
// and applied per-slot, which yields the same weight delta as a single application of the
// averaged gradient. Returns the mean squared error.
func (bp *Backpropagation) TrainBatch(set []Sample, crit Criterion) (float64, error) {
	if len(set) == 0 {
		return 0, ConfigError{"empty training set"}
	}

	if err := bp.assertSlots(len(set)); err != nil {
		return 0, err
	}

	sum := 0.0
	for i, s := range set {
		err2, err := bp.compute(s, bp.slots[i])
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d failed", i)
		}

		sum += err2
	}

	avg := sum / float64(len(set))

	if alpha := crit.Rate(avg); alpha != 0 {
		alpha /= float64(len(set))
		for i := range set {
			if err := bp.update(alpha, bp.slots[i]); err != nil {
				return 0, errors.Wrapf(err, "update for sample %d failed", i)
			}
		}
	}

	return avg, nil
}
