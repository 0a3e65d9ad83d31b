package neurograph

import (
	"math/rand"
)

// Features is the bitmask configuring what a FeedForward wires beyond the plain layered
// dendrites.
type Features uint32

const (
	// None builds plain layered wiring.
	None Features = 0x0

	// Bias prepends a single bias-source neuron (always index 0), hard-pinned to a constant
	// activation of 1; every non-input neuron gets a dendrite from it.
	Bias Features = 0x1

	// LateralPrev gives every non-input neuron dendrites to the previously created siblings
	// in its own layer. The intra-layer wiring is strictly lower-triangular, so it stays
	// acyclic.
	LateralPrev Features = 0x2

	// DefaultFeatures is the bitmask EmptyFeedForward starts with.
	DefaultFeatures = None
)

// Default range of randomly initialised dendrite weights.
const (
	RandWeightMin float64 = 1.0 / 100000
	RandWeightMax float64 = 1.0 / 1000
)

// FeedForward builds and wraps a layered Network: an input layer, any number of hidden
// layers, and an output layer, with optional bias source and intra-layer lateral edges. It
// hands out pre-wired Function and Backpropagation values that hold the bias pin.
type FeedForward struct {
	net      *Network
	act      Activation
	features Features

	// biasIndex is the bias source's neuron index, or -1 without Bias.
	biasIndex int
}

// EmptyFeedForward returns a FeedForward with an empty topology and DefaultFeatures, ready
// for SetFeatures and Build. Every neuron Build creates will use act.
func EmptyFeedForward(act Activation) *FeedForward {
	return &FeedForward{
		net:       new(Network),
		act:       act,
		features:  DefaultFeatures,
		biasIndex: -1,
	}
}

// NewFeedForward builds a layered network in one call: layers gives the neuron count per
// layer, input first; wInit supplies the dendrite weights (nil for the default uniform range
// [RandWeightMin, RandWeightMax]). Returns type ConfigError if fewer than two layers are
// given.
func NewFeedForward(layers []int, act Activation, wInit Initializer, features Features) (*FeedForward, error) {
	ff := EmptyFeedForward(act)
	ff.features = features

	if err := ff.Build(layers, wInit); err != nil {
		return nil, err
	}

	return ff, nil
}

// NewShallow builds a two-layer network of inputD inputs wired straight to outputD outputs,
// with default uniform weights.
func NewShallow(inputD, outputD int, act Activation, features Features) (*FeedForward, error) {
	return NewFeedForward([]int{inputD, outputD}, act, nil, features)
}

// NewThreeLayer builds an inputD-hiddenD-outputD network with default uniform weights.
func NewThreeLayer(inputD, hiddenD, outputD int, act Activation, features Features) (*FeedForward, error) {
	return NewFeedForward([]int{inputD, hiddenD, outputD}, act, nil, features)
}

// Network returns the underlying topology.
func (ff *FeedForward) Network() *Network {
	return ff.net
}

// Features returns the current feature bitmask.
func (ff *FeedForward) Features() Features {
	return ff.features
}

// SetFeatures changes the feature bitmask. Features can only change while the topology is
// still empty; afterwards SetFeatures returns type InvariantError.
func (ff *FeedForward) SetFeatures(f Features) error {
	if ff.net.SlotCount() != 0 {
		return InvariantError{"cannot change features of a non-empty topology"}
	}

	ff.features = f
	return nil
}

// Build wires the layered topology into the (empty) network. The first layer is Input, the
// last Output, everything between Inner. Per non-input neuron, dendrites are added in the
// order: bias, laterals to earlier siblings, previous layer; each weight drawn from wInit.
// Returns type ConfigError if layers has fewer than two entries, and type InvariantError if
// the topology is not empty.
func (ff *FeedForward) Build(layers []int, wInit Initializer) error {
	if len(layers) < 2 {
		return ConfigError{"a feed-forward network needs at least input and output layers"}
	}
	if ff.net.SlotCount() != 0 {
		return InvariantError{"topology has already been built"}
	}

	if wInit == nil {
		wInit = defaultWeights()
	}

	if ff.features&Bias != 0 {
		ff.biasIndex = ff.net.AddNeuron(Inner, ff.act).Index()
	}

	prev := make([]*Neuron, 0, layers[0])
	for i := 0; i < layers[0]; i++ {
		prev = append(prev, ff.net.AddNeuron(Input, ff.act))
	}

	for li := 1; li < len(layers); li++ {
		role := Inner
		if li == len(layers)-1 {
			role = Output
		}

		cur := make([]*Neuron, 0, layers[li])
		for j := 0; j < layers[li]; j++ {
			n := ff.net.AddNeuron(role, ff.act)

			if ff.features&Bias != 0 {
				n.SetDendrite(ff.biasIndex, wInit())
			}

			if ff.features&LateralPrev != 0 {
				for _, sib := range cur {
					n.SetDendrite(sib.Index(), wInit())
				}
			}

			for _, p := range prev {
				n.SetDendrite(p.Index(), wInit())
			}

			cur = append(cur, n)
		}

		prev = cur
	}

	return nil
}

// Function returns a forward evaluator over the topology, with the bias source (if any)
// pinned to 1.
func (ff *FeedForward) Function() *Function {
	f := NewFunction(ff.net)
	if ff.biasIndex >= 0 {
		f.Pin(ff.biasIndex, 1)
	}

	return f
}

// Training returns a trainer over the topology, with the bias source (if any) pinned to 1.
func (ff *FeedForward) Training() (*Backpropagation, error) {
	var pins []Pin
	if ff.biasIndex >= 0 {
		pins = append(pins, Pin{ff.biasIndex, 1})
	}

	return NewBackpropagation(ff.net, pins...)
}

// defaultWeights is the fallback Initializer: uniformly random weights in [RandWeightMin,
// RandWeightMax].
func defaultWeights() Initializer {
	return func() float64 {
		return RandWeightMin + rand.Float64()*(RandWeightMax-RandWeightMin)
	}
}
