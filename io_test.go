package neurograph_test

import (
	"bytes"
	"strings"
	"testing"

	ng "github.com/sharnoff/neurograph"
	"github.com/sharnoff/neurograph/activations"
)

func TestNetworkRoundTrip(t *testing.T) {
	net := threeLayer(t)

	var first bytes.Buffer
	if _, err := net.WriteTo(&first); err != nil {
		t.Fatalf("failed to serialise: %v", err)
	}

	parsed, err := ng.ParseNetwork(&first)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if s := parsed.Size(); s != net.Size() {
		t.Fatalf("parsed network has %d neurons, expected %d", s, net.Size())
	}
	if in, out := parsed.InputSize(), parsed.OutputSize(); in != 2 || out != 1 {
		t.Fatalf("parsed dimensions are %dx%d, expected 2x1", in, out)
	}

	// serialising the parsed network reproduces the text byte for byte
	var second bytes.Buffer
	if _, err := net.WriteTo(&first); err != nil {
		t.Fatalf("failed to re-serialise the original: %v", err)
	}
	if _, err := parsed.WriteTo(&second); err != nil {
		t.Fatalf("failed to serialise the parsed network: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("round trip changed the text:\n%s\nvs\n%s", first.Bytes(), second.Bytes())
	}
}

func TestParsedNetworkEvaluates(t *testing.T) {
	net := threeLayer(t)

	var buf bytes.Buffer
	if _, err := net.WriteTo(&buf); err != nil {
		t.Fatalf("failed to serialise: %v", err)
	}

	parsed, err := ng.ParseNetwork(&buf)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	input := []float64{3, 1}
	want, err := ng.NewFunction(net).Run(input)
	if err != nil {
		t.Fatalf("original run failed: %v", err)
	}
	got, err := ng.NewFunction(parsed).Run(input)
	if err != nil {
		t.Fatalf("parsed run failed: %v", err)
	}

	if got[0] != want[0] {
		t.Fatalf("parsed network computes %v, original computes %v", got[0], want[0])
	}
}

func TestFeedForwardRoundTrip(t *testing.T) {
	ff, err := ng.NewFeedForward([]int{2, 2, 1}, activations.Logistic(0, 1, 15), ones, ng.Bias)
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}

	var first bytes.Buffer
	if _, err := ff.WriteTo(&first); err != nil {
		t.Fatalf("failed to serialise: %v", err)
	}

	parsed, err := ng.ParseFeedForward(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if f := parsed.Features(); f != ng.Bias {
		t.Fatalf("parsed features are %#x, expected %#x", f, ng.Bias)
	}

	var second bytes.Buffer
	if _, err := parsed.WriteTo(&second); err != nil {
		t.Fatalf("failed to re-serialise: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("round trip changed the text:\n%s\nvs\n%s", first.Bytes(), second.Bytes())
	}

	// the parsed copy computes the same function, bias pin included
	input := []float64{0.3, -0.6}
	want, err := ff.Function().Run(input)
	if err != nil {
		t.Fatalf("original run failed: %v", err)
	}
	got, err := parsed.Function().Run(input)
	if err != nil {
		t.Fatalf("parsed run failed: %v", err)
	}
	if got[0] != want[0] {
		t.Fatalf("parsed network computes %v, original computes %v", got[0], want[0])
	}
}

func TestParseTolerant(t *testing.T) {
	// comments, blank lines, loose whitespace, and synapses ahead of their neurons are all fine
	src := `
# a hand-written network
NNTopology
    Synapsis 0 -> 1 weight = 0.5   # forward reference

    Neuron 1
        type = OUTPUT
        f = identity
    NeuronEnd
  Neuron 0
     type = INPUT
     f    = identity
  NeuronEnd
NNTopologyEnd
`

	net, err := ng.ParseNetwork(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	out, err := net.Neuron(1)
	if err != nil {
		t.Fatalf("failed to get neuron 1: %v", err)
	}
	if w, ok := out.Dendrite(0); !ok || w != 0.5 {
		t.Fatalf("forward-referenced synapsis is (%v, %v), expected (0.5, true)", w, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tcs := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"wrong header", "FFNN\n"},
		{"unterminated", "NNTopology\n"},
		{"bad line", "NNTopology\nnonsense\nNNTopologyEnd\n"},
		{"bad neuron index", "NNTopology\nNeuron x\nNeuronEnd\nNNTopologyEnd\n"},
		{"unterminated neuron", "NNTopology\nNeuron 0\ntype = INPUT\n"},
		{"missing type", "NNTopology\nNeuron 0\nf = identity\nNeuronEnd\nNNTopologyEnd\n"},
		{"missing activation", "NNTopology\nNeuron 0\ntype = INPUT\nNeuronEnd\nNNTopologyEnd\n"},
		{"unknown type", "NNTopology\nNeuron 0\ntype = SIDEWAYS\nf = identity\nNeuronEnd\nNNTopologyEnd\n"},
		{"unknown activation", "NNTopology\nNeuron 0\ntype = INPUT\nf = warp\nNeuronEnd\nNNTopologyEnd\n"},
		{"unknown key", "NNTopology\nNeuron 0\ntype = INPUT\ng = identity\nNeuronEnd\nNNTopologyEnd\n"},
		{"malformed synapsis", "NNTopology\nSynapsis 0 - 1 weight = 1\nNNTopologyEnd\n"},
		{"bad weight", "NNTopology\nSynapsis 0 -> 0 weight = w\nNNTopologyEnd\n"},
		{"dangling synapsis", "NNTopology\nSynapsis 0 -> 1 weight = 1\nNNTopologyEnd\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ng.ParseNetwork(strings.NewReader(tc.src))
			if err == nil {
				t.Fatalf("parsed %q", tc.src)
			}
			if _, ok := err.(ng.ParseError); !ok {
				t.Fatalf("got %T (%v), expected ParseError", err, err)
			}
		})
	}
}

func TestParseFeedForwardErrors(t *testing.T) {
	topology := "NNTopology\nNeuron 0\ntype = INPUT\nf = identity\nNeuronEnd\nNNTopologyEnd\n"

	tcs := []struct {
		name string
		src  string
	}{
		{"wrong header", topology},
		{"missing features", "FFNN\n" + topology + "FFNNEnd\n"},
		{"bad features", "FFNN\nfeatures = maybe\n" + topology + "FFNNEnd\n"},
		{"unterminated", "FFNN\nfeatures = 0x0\n" + topology},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ng.ParseFeedForward(strings.NewReader(tc.src))
			if err == nil {
				t.Fatalf("parsed %q", tc.src)
			}
			if _, ok := err.(ng.ParseError); !ok {
				t.Fatalf("got %T (%v), expected ParseError", err, err)
			}
		})
	}
}

func TestParseActivation(t *testing.T) {
	tcs := []struct {
		literal string
		want    string
	}{
		{"identity", "identity"},
		{"tanh", "tanh"},
		{" logistic(0, 1, 15) ", "logistic(0,1,15)"},
		{"logistic(-0.5,2,0.125)", "logistic(-0.5,2,0.125)"},
	}

	for _, tc := range tcs {
		act, err := ng.ParseActivation(tc.literal)
		if err != nil {
			t.Errorf("failed to parse %q: %v", tc.literal, err)
			continue
		}
		if got := act.String(); got != tc.want {
			t.Errorf("parsed %q renders %q, expected %q", tc.literal, got, tc.want)
		}
	}

	for _, literal := range []string{"", "warp", "logistic(1,2)", "logistic(a,b,c)", "identity(3)", "logistic(0,1,15"} {
		if _, err := ng.ParseActivation(literal); err == nil {
			t.Errorf("parsed %q", literal)
		} else if _, ok := err.(ng.ParseError); !ok {
			t.Errorf("%q returned %T, expected ParseError", literal, err)
		}
	}
}

func TestParseActivationAs(t *testing.T) {
	if _, err := ng.ParseActivationAs("tanh", activations.Tanh()); err != nil {
		t.Fatalf("matching literal rejected: %v", err)
	}

	if _, err := ng.ParseActivationAs("tanh", activations.Identity()); err == nil {
		t.Fatalf("mismatched literal accepted")
	} else if _, ok := err.(ng.ParseError); !ok {
		t.Fatalf("mismatch returned %T, expected ParseError", err)
	}
}

func TestRegisterActivation(t *testing.T) {
	if err := ng.RegisterActivation("identity", func([]float64) (ng.Activation, error) {
		return activations.Identity(), nil
	}); err == nil {
		t.Fatalf("re-registered an existing name")
	} else if _, ok := err.(ng.ConfigError); !ok {
		t.Fatalf("duplicate registration returned %T, expected ConfigError", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("nil parser did not panic")
		}
		if _, ok := r.(ng.ConfigError); !ok {
			t.Fatalf("nil parser panicked with %T, expected ConfigError", r)
		}
	}()

	ng.RegisterActivation("broken", nil)
}
