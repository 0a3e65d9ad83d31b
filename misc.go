package neurograph

import (
	"strconv"
	"strings"
)

// activationParsers maps activation names to constructors taking the numeric parameters from
// the literal. Populated by RegisterActivation, usually from a subpackage's init.
var activationParsers = make(map[string]func(params []float64) (Activation, error))

// RegisterActivation registers a constructor for the activation literal beginning with name,
// so that ParseActivation can produce it. Returns type ConfigError if name is already taken,
// and panics with type ConfigError if parser is nil. Usually called from an init function; the
// subpackage "activations" registers all of its types this way.
func RegisterActivation(name string, parser func(params []float64) (Activation, error)) error {
	if parser == nil {
		panic(ConfigError{"activation parser for " + strconv.Quote(name) + " is nil"})
	}

	if _, ok := activationParsers[name]; ok {
		return ConfigError{"activation " + strconv.Quote(name) + " is already registered"}
	}

	activationParsers[name] = parser
	return nil
}

// ParseActivation parses an activation literal, e.g. "identity" or "logistic(0,1,15)", into
// the Activation registered under its name. Unknown names, malformed parameter lists, and
// constructor failures all return type ParseError.
func ParseActivation(literal string) (Activation, error) {
	literal = strings.TrimSpace(literal)

	name := literal
	var params []float64

	if i := strings.IndexByte(literal, '('); i >= 0 {
		if !strings.HasSuffix(literal, ")") {
			return nil, ParseError{0, "malformed activation literal " + strconv.Quote(literal)}
		}

		name = literal[:i]
		for _, p := range strings.Split(literal[i+1:len(literal)-1], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, ParseError{0, "bad activation parameter " + strconv.Quote(p)}
			}

			params = append(params, v)
		}
	}

	parser, ok := activationParsers[name]
	if !ok {
		return nil, ParseError{0, "unknown activation " + strconv.Quote(name)}
	}

	act, err := parser(params)
	if err != nil {
		return nil, ParseError{0, err.Error()}
	}

	return act, nil
}

// ParseActivationAs parses literal like ParseActivation and additionally requires the result
// to render the same literal as expect, returning type ParseError on mismatch. A nil expect
// skips the check. ParseNetwork and ParseFeedForward do not call it: they accept any
// registered activation literal.
func ParseActivationAs(literal string, expect Activation) (Activation, error) {
	act, err := ParseActivation(literal)
	if err != nil {
		return nil, err
	}

	if expect != nil && act.String() != expect.String() {
		return nil, ParseError{0, "activation " + strconv.Quote(act.String()) +
			" does not match expected " + strconv.Quote(expect.String())}
	}

	return act, nil
}
