package neurograph

import (
	"github.com/pkg/errors"
)

// Computation is a memoising fixed-point evaluator over a Network, generic in its per-neuron
// result type. It holds one Fixable cell per slot and computes results lazily through a
// supplied evaluation hook, pre-fixing a default result before recursing so that cycles
// terminate: a back-edge reached during recursion reads the soft-fixed default instead of
// recursing again. For acyclic graphs the pre-fix is overwritten before anything reads it; for
// cyclic graphs each feedback edge contributes the default, which must therefore be the
// additive identity of the hook's aggregation.
type Computation[R any] struct {
	net *Network
	def R

	// f evaluates one neuron. It may call Fx on the neuron's sources.
	f func(c *Computation[R], n *Neuron) (R, error)

	cells []Fixable[R]

	// reset records that Reset has run and no cell has been evaluated since.
	reset bool
}

// NewComputation returns a Computation over net with the given default result and evaluation
// hook. The cell grid is sized to net.SlotCount(); growing the network afterwards invalidates
// the Computation.
func NewComputation[R any](net *Network, def R, f func(*Computation[R], *Neuron) (R, error)) *Computation[R] {
	c := &Computation[R]{
		net:   net,
		def:   def,
		f:     f,
		cells: make([]Fixable[R], net.SlotCount()),
		reset: true,
	}

	for i := range c.cells {
		c.cells[i].Reset(def)
	}

	return c
}

// Reset restores every cell to the default, unfixed state. Hard-fixed cells are left alone.
// If nothing has been evaluated since the last Reset, this is a no-op.
func (c *Computation[R]) Reset() {
	if c.reset {
		return
	}

	for i := range c.cells {
		c.cells[i].Reset(c.def)
	}

	c.reset = true
}

// Fx returns the result for the neuron at index, computing and memoising it if the cell is
// not already fixed. Returns type IndexError for an out-of-range index or vacant slot.
func (c *Computation[R]) Fx(index int) (R, error) {
	if index < 0 || index >= len(c.cells) {
		var zero R
		return zero, IndexError{index, len(c.cells)}
	}

	cell := &c.cells[index]
	if cell.Fixed() {
		return cell.Get(), nil
	}

	n, err := c.net.Neuron(index)
	if err != nil {
		var zero R
		return zero, err
	}

	// Soft-fix the default in advance so that a cycle back to this neuron reads it instead
	// of recursing forever.
	cell.FixValue(c.def, false, Soft)
	c.reset = false

	r, err := c.f(c, n)
	if err != nil {
		var zero R
		return zero, errors.Wrapf(err, "failed to evaluate neuron %d", index)
	}

	cell.Set(r, true)
	return r, nil
}

// PeekFx returns the result for the neuron at index without evaluating anything. Returns type
// IndexError for a bad index and type InvariantError if the cell is not fixed.
func (c *Computation[R]) PeekFx(index int) (R, error) {
	if index < 0 || index >= len(c.cells) {
		var zero R
		return zero, IndexError{index, len(c.cells)}
	}

	if !c.cells[index].Fixed() {
		var zero R
		return zero, InvariantError{"cell is not fixed"}
	}

	return c.cells[index].Get(), nil
}

// ConstFx hard-fixes the cell at index to v, pinning it across Resets. Returns type
// IndexError for a bad index and type InvariantError if the cell is already hard-fixed.
func (c *Computation[R]) ConstFx(index int, v R) error {
	if index < 0 || index >= len(c.cells) {
		return IndexError{index, len(c.cells)}
	}

	if err := c.cells[index].Set(v, true); err != nil {
		return err
	}

	c.cells[index].Fix(Hard)
	return nil
}

// softFx sets the cell at index to v and soft-fixes it, overriding an existing soft fix.
// Driver loops use this to seed boundary cells before a sweep.
func (c *Computation[R]) softFx(index int, v R) error {
	if index < 0 || index >= len(c.cells) {
		return IndexError{index, len(c.cells)}
	}

	if err := c.cells[index].Set(v, true); err != nil {
		return err
	}

	c.cells[index].Fix(Soft)
	c.reset = false
	return nil
}
