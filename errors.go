package neurograph

import "fmt"

// IndexError documents a neuron index that is out of range or refers to a vacant slot.
type IndexError struct {
	Index   int
	SlotCnt int
}

func (err IndexError) Error() string {
	return fmt.Sprintf("neuron index %d not available (slot count %d)", err.Index, err.SlotCnt)
}

// ShapeError documents a vector whose length disagrees with a dimension of the Network.
type ShapeError struct {
	Want, Got int

	// What gives the vector a name, e.g. "inputs" or "targets".
	What string
}

func (err ShapeError) Error() string {
	return fmt.Sprintf("wrong number of %s: expected %d, got %d", err.What, err.Want, err.Got)
}

// InvariantError documents an operation that would break an internal invariant: overwriting a
// hard-fixed cell, reading an unfixed cell through a const handle, asking the backward pass to
// derive an output neuron's delta, or reconfiguring a non-empty feed-forward topology.
type InvariantError struct{ string }

func (err InvariantError) Error() string {
	return err.string
}

// ConfigError documents invalid construction parameters, such as a feed-forward network with
// fewer than two layers or a weight initializer whose range is inverted.
type ConfigError struct{ Msg string }

func (err ConfigError) Error() string {
	return err.Msg
}

// ParseError documents serialised input that does not match the documented grammar. Line is
// 1-based; 0 means the line is unknown.
type ParseError struct {
	Line int
	Msg  string
}

func (err ParseError) Error() string {
	if err.Line == 0 {
		return "parse: " + err.Msg
	}

	return fmt.Sprintf("parse: line %d: %s", err.Line, err.Msg)
}
