package neurograph

// Fixation is the memoisation state of a Fixable cell. The states form a lattice: Unfixed <
// Soft < Hard. Soft marks a value that is pinned for the duration of one evaluation sweep and
// cleared by Reset; Hard marks a permanent constant that Reset leaves alone.
type Fixation int8

const (
	Unfixed Fixation = iota
	Soft
	Hard
)

func (f Fixation) String() string {
	switch f {
	case Unfixed:
		return "unfixed"
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	}

	return "invalid"
}

// Fixable is a single-slot memoisation cell: a value plus its Fixation. The zero value is an
// unfixed cell holding the zero value of T.
type Fixable[T any] struct {
	value T
	state Fixation
}

// Fixed returns whether the cell holds a fixed value, at any mode.
func (c *Fixable[T]) Fixed() bool {
	return c.state != Unfixed
}

// State returns the cell's current Fixation.
func (c *Fixable[T]) State() Fixation {
	return c.state
}

// Get returns the cell's current value, fixed or not. Callers that require the value to have
// been set should check Fixed first.
func (c *Fixable[T]) Get() T {
	return c.value
}

// Set assigns v to the cell. If the cell is hard-fixed, or soft-fixed without overrideSoft,
// Set returns type InvariantError and leaves the cell unchanged.
func (c *Fixable[T]) Set(v T, overrideSoft bool) error {
	if c.state == Hard || (c.state == Soft && !overrideSoft) {
		return InvariantError{"cannot set " + c.state.String() + "-fixed cell"}
	}

	c.value = v
	return nil
}

// Fix raises the cell's state to mode, if mode is higher. Fixing never lowers the state.
func (c *Fixable[T]) Fix(mode Fixation) {
	if mode > c.state {
		c.state = mode
	}
}

// FixValue sets the cell to v and then fixes it at mode, subject to the same rules as Set.
func (c *Fixable[T]) FixValue(v T, overrideSoft bool, mode Fixation) error {
	if err := c.Set(v, overrideSoft); err != nil {
		return err
	}

	c.Fix(mode)
	return nil
}

// Reset restores the cell to (def, Unfixed), unless it is hard-fixed, in which case Reset does
// nothing.
func (c *Fixable[T]) Reset(def T) {
	if c.state == Hard {
		return
	}

	c.value = def
	c.state = Unfixed
}
