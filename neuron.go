package neurograph

// Role marks how a Neuron participates in evaluation: Input neurons are fed externally, Output
// neurons are read externally, and Inner neurons are everything in between.
type Role int8

const (
	Inner Role = iota
	Input
	Output
)

func (r Role) String() string {
	switch r {
	case Inner:
		return "INNER"
	case Input:
		return "INPUT"
	case Output:
		return "OUTPUT"
	}

	return "invalid"
}

// roleFromString is the inverse of Role.String. The second return is false for unknown names.
func roleFromString(s string) (Role, bool) {
	switch s {
	case "INNER":
		return Inner, true
	case "INPUT":
		return Input, true
	case "OUTPUT":
		return Output, true
	}

	return Inner, false
}

// Dendrite is an incoming weighted edge into a Neuron. Source is the index of the source
// neuron within the host Network; indices are the stable identity used for all
// cross-references.
type Dendrite struct {
	Source int
	Weight float64
}

// Neuron is a single node in a Network: a stable index, a Role, an activation function, and an
// ordered list of Dendrites. The dendrite order is stable under all operations except explicit
// removal and MinimiseDendrites.
type Neuron struct {
	host *Network

	index     int
	role      Role
	act       Activation
	dendrites []Dendrite
}

// Index returns the neuron's index within its host Network. Indices are stable until the
// Network is Reindexed.
func (n *Neuron) Index() int {
	return n.index
}

// Role returns the neuron's Role, set at creation.
func (n *Neuron) Role() Role {
	return n.role
}

// Activation returns the neuron's activation function.
func (n *Neuron) Activation() Activation {
	return n.act
}

// NumDendrites returns the number of dendrites into the neuron.
func (n *Neuron) NumDendrites() int {
	return len(n.dendrites)
}

// SetDendrite adds a dendrite from the neuron at index source with the given weight, or
// updates the weight if a dendrite from source already exists. Runs in O(number of dendrites).
// Returns type IndexError if source does not refer to a non-vacant neuron of the host Network.
//
// A neuron may have a dendrite to itself; cycles are allowed.
func (n *Neuron) SetDendrite(source int, weight float64) error {
	if _, err := n.host.Neuron(source); err != nil {
		return err
	}

	for i := range n.dendrites {
		if n.dendrites[i].Source == source {
			n.dendrites[i].Weight = weight
			return nil
		}
	}

	n.dendrites = append(n.dendrites, Dendrite{source, weight})
	return nil
}

// UnsetDendrite removes the dendrite from the neuron at index source, returning whether a
// dendrite was actually removed.
func (n *Neuron) UnsetDendrite(source int) bool {
	for i := range n.dendrites {
		if n.dendrites[i].Source == source {
			n.dendrites = append(n.dendrites[:i], n.dendrites[i+1:]...)
			return true
		}
	}

	return false
}

// Dendrite returns the weight of the dendrite from the neuron at index source, and whether
// such a dendrite exists.
func (n *Neuron) Dendrite(source int) (float64, bool) {
	for i := range n.dendrites {
		if n.dendrites[i].Source == source {
			return n.dendrites[i].Weight, true
		}
	}

	return 0, false
}

// Dendrites calls f for each dendrite of the neuron, in order, until f returns false.
func (n *Neuron) Dendrites(f func(Dendrite) bool) {
	for i := range n.dendrites {
		if !f(n.dendrites[i]) {
			return
		}
	}
}

// MinimiseDendrites removes every dendrite whose weight is exactly zero.
func (n *Neuron) MinimiseDendrites() {
	ds := n.dendrites[:0]
	for i := range n.dendrites {
		if n.dendrites[i].Weight != 0 {
			ds = append(ds, n.dendrites[i])
		}
	}

	n.dendrites = ds
}
