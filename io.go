package neurograph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Networks serialise to a plain text block:
//
//	NNTopology
//	    Neuron <idx>
//	        type = <INPUT|INNER|OUTPUT>
//	        f    = <activation literal>
//	    NeuronEnd
//	    Synapsis <src> -> <dst> weight = <number>
//	NNTopologyEnd
//
// Comments start with '#' and run to end of line; blank lines and surrounding whitespace are
// ignored. A FeedForward wraps the same block with its feature bitmask:
//
//	FFNN
//	    features = 0x<hex>
//	    <topology block>
//	FFNNEnd

// countWriter accumulates bytes written and the first error, so the serialisers can print
// unconditionally and report once.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countWriter) printf(format string, args ...interface{}) {
	if cw.err != nil {
		return
	}

	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

// formatWeight renders a weight so that parsing it back yields the identical float64.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// WriteTo serialises the Network as an NNTopology block. Neurons appear in index order,
// followed by every synapse in (destination, dendrite) order, so that serialising a parsed
// network reproduces the input byte for byte.
func (net *Network) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	net.writeTopology(cw, "")
	return cw.n, cw.err
}

func (net *Network) writeTopology(cw *countWriter, indent string) {
	cw.printf("%sNNTopology\n", indent)

	net.Neurons(func(n *Neuron) bool {
		cw.printf("%s    Neuron %d\n", indent, n.index)
		cw.printf("%s        type = %s\n", indent, n.role)
		cw.printf("%s        f    = %s\n", indent, n.act)
		cw.printf("%s    NeuronEnd\n", indent)
		return true
	})

	net.Neurons(func(n *Neuron) bool {
		for _, d := range n.dendrites {
			cw.printf("%s    Synapsis %d -> %d weight = %s\n",
				indent, d.Source, n.index, formatWeight(d.Weight))
		}
		return true
	})

	cw.printf("%sNNTopologyEnd\n", indent)
}

// WriteTo serialises the FeedForward as an FFNN block wrapping its topology.
func (ff *FeedForward) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}

	cw.printf("FFNN\n")
	cw.printf("    features = %#x\n", uint32(ff.features))
	ff.net.writeTopology(cw, "    ")
	cw.printf("FFNNEnd\n")

	return cw.n, cw.err
}

// parser reads meaningful lines: comments stripped, whitespace trimmed, blanks skipped.
type parser struct {
	sc   *bufio.Scanner
	line int
}

func newParser(r io.Reader) *parser {
	return &parser{sc: bufio.NewScanner(r)}
}

func (p *parser) next() (string, bool) {
	for p.sc.Scan() {
		p.line++

		s := p.sc.Text()
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}

		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}

	return "", false
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return ParseError{p.line, fmt.Sprintf(format, args...)}
}

// keyValue splits a "key = value" line, reporting whether an '=' was present.
func keyValue(s string) (key, value string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}

	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

// ParseNetwork parses an NNTopology block into a fresh Network. Activations are produced
// through the literal registry; import the subpackage "activations" to make the provided
// ones available. Any deviation from the grammar returns type ParseError.
func ParseNetwork(r io.Reader) (*Network, error) {
	return parseTopology(newParser(r))
}

func parseTopology(p *parser) (*Network, error) {
	s, ok := p.next()
	if !ok || s != "NNTopology" {
		return nil, p.errorf("expected %q, got %q", "NNTopology", s)
	}

	net := new(Network)

	type synapse struct {
		src, dst int
		weight   float64
		line     int
	}
	var synapses []synapse

	for {
		s, ok := p.next()
		if !ok {
			return nil, p.errorf("missing %q", "NNTopologyEnd")
		}

		switch {
		case s == "NNTopologyEnd":
			// synapses are applied last so their order in the file doesn't matter
			for _, y := range synapses {
				dst, err := net.Neuron(y.dst)
				if err != nil {
					return nil, ParseError{y.line, "synapsis destination: " + err.Error()}
				}

				if err := dst.SetDendrite(y.src, y.weight); err != nil {
					return nil, ParseError{y.line, "synapsis source: " + err.Error()}
				}
			}

			return net, nil

		case strings.HasPrefix(s, "Neuron"):
			idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, "Neuron")))
			if err != nil || idx < 0 {
				return nil, p.errorf("bad neuron index in %q", s)
			}

			if err := parseNeuron(p, net, idx); err != nil {
				return nil, err
			}

		case strings.HasPrefix(s, "Synapsis"):
			fs := strings.Fields(s)
			if len(fs) != 7 || fs[2] != "->" || fs[4] != "weight" || fs[5] != "=" {
				return nil, p.errorf("malformed synapsis line %q", s)
			}

			src, err := strconv.Atoi(fs[1])
			if err != nil {
				return nil, p.errorf("bad synapsis source %q", fs[1])
			}

			dst, err := strconv.Atoi(fs[3])
			if err != nil {
				return nil, p.errorf("bad synapsis destination %q", fs[3])
			}

			weight, err := strconv.ParseFloat(fs[6], 64)
			if err != nil {
				return nil, p.errorf("bad synapsis weight %q", fs[6])
			}

			synapses = append(synapses, synapse{src, dst, weight, p.line})

		default:
			return nil, p.errorf("unrecognized line %q", s)
		}
	}
}

func parseNeuron(p *parser, net *Network, idx int) error {
	var (
		role              Role
		act               Activation
		haveRole, haveAct bool
	)

	for {
		s, ok := p.next()
		if !ok {
			return p.errorf("missing %q", "NeuronEnd")
		}

		if s == "NeuronEnd" {
			if !haveRole {
				return p.errorf("neuron %d has no type", idx)
			}
			if !haveAct {
				return p.errorf("neuron %d has no activation", idx)
			}

			_, err := net.SetNeuron(idx, role, act)
			return err
		}

		key, value, ok := keyValue(s)
		if !ok {
			return p.errorf("unrecognized line %q in neuron %d", s, idx)
		}

		switch key {
		case "type":
			if role, ok = roleFromString(value); !ok {
				return p.errorf("unknown neuron type %q", value)
			}
			haveRole = true

		case "f":
			a, err := ParseActivation(value)
			if err != nil {
				if pe, isParse := err.(ParseError); isParse {
					pe.Line = p.line
					return pe
				}
				return p.errorf("%s", err.Error())
			}

			act = a
			haveAct = true

		default:
			return p.errorf("unrecognized key %q in neuron %d", key, idx)
		}
	}
}

// ParseFeedForward parses an FFNN block into a FeedForward. The bias source, when the Bias
// feature is set, is taken to be neuron 0, matching how Build lays networks out.
func ParseFeedForward(r io.Reader) (*FeedForward, error) {
	p := newParser(r)

	s, ok := p.next()
	if !ok || s != "FFNN" {
		return nil, p.errorf("expected %q, got %q", "FFNN", s)
	}

	s, ok = p.next()
	if !ok {
		return nil, p.errorf("missing features line")
	}

	key, value, haveKV := keyValue(s)
	if !haveKV || key != "features" {
		return nil, p.errorf("expected features line, got %q", s)
	}

	bits, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return nil, p.errorf("bad features value %q", value)
	}

	net, err := parseTopology(p)
	if err != nil {
		return nil, err
	}

	if s, ok = p.next(); !ok || s != "FFNNEnd" {
		return nil, p.errorf("expected %q, got %q", "FFNNEnd", s)
	}

	ff := &FeedForward{
		net:       net,
		features:  Features(bits),
		biasIndex: -1,
	}

	if ff.features&Bias != 0 {
		ff.biasIndex = 0
	}

	net.Neurons(func(n *Neuron) bool {
		ff.act = n.act
		return false
	})

	return ff, nil
}
