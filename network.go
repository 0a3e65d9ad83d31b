package neurograph

// Network is a neural network topology: an ordered sequence of neuron slots, some of which
// may be vacant after removal, plus ordered lists of the input and output neuron indices.
// Neurons are identified by their index; every non-vacant slot's stored index equals its
// position.
//
// The zero value is an empty Network, ready for use.
type Network struct {
	slots []*Neuron

	// inputs and outputs hold the indices of Input and Output neurons, in insertion order.
	inputs  []int
	outputs []int
}

// Size returns the number of (non-vacant) neurons in the Network.
func (net *Network) Size() int {
	size := 0
	for _, n := range net.slots {
		if n != nil {
			size++
		}
	}

	return size
}

// SlotCount returns the number of slots, including vacancies. Valid neuron indices are in the
// range [0, SlotCount()).
func (net *Network) SlotCount() int {
	return len(net.slots)
}

// InputSize returns the number of Input neurons.
func (net *Network) InputSize() int {
	return len(net.inputs)
}

// OutputSize returns the number of Output neurons.
func (net *Network) OutputSize() int {
	return len(net.outputs)
}

// Neuron returns the neuron at the given index, or type IndexError if the index is out of
// range or the slot is vacant.
func (net *Network) Neuron(index int) (*Neuron, error) {
	if index < 0 || index >= len(net.slots) || net.slots[index] == nil {
		return nil, IndexError{index, len(net.slots)}
	}

	return net.slots[index], nil
}

// AddNeuron appends a new neuron with the given role and activation, returning it. The new
// neuron's index is the previous SlotCount. AddNeuron panics with type ConfigError if act is
// nil.
func (net *Network) AddNeuron(role Role, act Activation) *Neuron {
	if act == nil {
		panic(ConfigError{"activation is nil"})
	}

	n := &Neuron{
		host:  net,
		index: len(net.slots),
		role:  role,
		act:   act,
	}

	net.slots = append(net.slots, n)
	net.ioAdd(n)
	return n
}

// SetNeuron installs a new neuron with the given role and activation at index, growing the
// slot sequence with vacancies as needed. If the slot already holds a neuron, that neuron is
// removed first: its role-list entry is dropped and every dendrite pointing to it is erased
// from the rest of the Network. Returns type IndexError if index is negative.
func (net *Network) SetNeuron(index int, role Role, act Activation) (*Neuron, error) {
	if index < 0 {
		return nil, IndexError{index, len(net.slots)}
	}
	if act == nil {
		panic(ConfigError{"activation is nil"})
	}

	for len(net.slots) <= index {
		net.slots = append(net.slots, nil)
	}

	if old := net.slots[index]; old != nil {
		net.ioRemove(old)
		net.synapsesRemove(index)
	}

	n := &Neuron{
		host:  net,
		index: index,
		role:  role,
		act:   act,
	}

	net.slots[index] = n
	net.ioAdd(n)
	return n, nil
}

// RemoveNeuron vacates the slot at index: the neuron is dropped from its role list, every
// dendrite pointing to it is erased from the rest of the Network, and the slot becomes
// vacant. The slot sequence is not compacted; use Reindex for that. Returns type IndexError
// if the index is out of range or already vacant.
func (net *Network) RemoveNeuron(index int) error {
	n, err := net.Neuron(index)
	if err != nil {
		return err
	}

	net.ioRemove(n)
	net.synapsesRemove(index)
	net.slots[index] = nil
	n.host = nil
	return nil
}

// Reindex compacts the slot sequence, dropping vacancies and rewriting each neuron's stored
// index (and every dendrite's source index) to its new position. The input and output lists
// are rebuilt in the new index order.
//
// Reindex invalidates any Computation, Function, or Backpropagation built on the Network.
func (net *Network) Reindex() {
	remap := make([]int, len(net.slots))

	compact := net.slots[:0]
	for _, n := range net.slots {
		if n == nil {
			continue
		}

		remap[n.index] = len(compact)
		compact = append(compact, n)
	}

	// clear the tail so dropped neurons aren't retained
	for i := len(compact); i < len(net.slots); i++ {
		net.slots[i] = nil
	}
	net.slots = compact

	net.inputs = net.inputs[:0]
	net.outputs = net.outputs[:0]

	for i, n := range net.slots {
		n.index = i
		for d := range n.dendrites {
			n.dendrites[d].Source = remap[n.dendrites[d].Source]
		}

		net.ioAdd(n)
	}
}

// Prune drops every dendrite whose weight is exactly zero, across the whole Network.
func (net *Network) Prune() {
	for _, n := range net.slots {
		if n != nil {
			n.MinimiseDendrites()
		}
	}
}

// Minimise prunes zero-weight dendrites, then repeatedly removes Inner neurons left with no
// dendrites, then Reindexes. Note that removing a dendrite-less neuron is only semantically
// neutral for activations with phi(0) = 0; for others the downstream sums change.
func (net *Network) Minimise() {
	net.Prune()

	for {
		removed := false
		for _, n := range net.slots {
			if n != nil && n.role == Inner && len(n.dendrites) == 0 {
				net.RemoveNeuron(n.index)
				removed = true
			}
		}

		if !removed {
			break
		}
	}

	net.Reindex()
}

// Neurons calls f for each (non-vacant) neuron in index order, until f returns false.
func (net *Network) Neurons(f func(*Neuron) bool) {
	for _, n := range net.slots {
		if n != nil && !f(n) {
			return
		}
	}
}

// Inputs calls f for each Input neuron, in insertion order, until f returns false.
func (net *Network) Inputs(f func(*Neuron) bool) {
	for _, i := range net.inputs {
		if !f(net.slots[i]) {
			return
		}
	}
}

// Outputs calls f for each Output neuron, in insertion order, until f returns false.
func (net *Network) Outputs(f func(*Neuron) bool) {
	for _, i := range net.outputs {
		if !f(net.slots[i]) {
			return
		}
	}
}

func (net *Network) ioAdd(n *Neuron) {
	switch n.role {
	case Input:
		net.inputs = append(net.inputs, n.index)
	case Output:
		net.outputs = append(net.outputs, n.index)
	}
}

func (net *Network) ioRemove(n *Neuron) {
	var list *[]int
	switch n.role {
	case Input:
		list = &net.inputs
	case Output:
		list = &net.outputs
	default:
		return
	}

	for i, idx := range *list {
		if idx == n.index {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// synapsesRemove erases every dendrite whose source is the given index.
func (net *Network) synapsesRemove(source int) {
	for _, n := range net.slots {
		if n != nil {
			n.UnsetDendrite(source)
		}
	}
}
