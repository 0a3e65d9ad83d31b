package activations

import (
	"github.com/pkg/errors"
	ng "github.com/sharnoff/neurograph"
)

// noParams wraps a parameterless constructor, rejecting any literal parameters.
func noParams(name string, build func() ng.Activation) func([]float64) (ng.Activation, error) {
	return func(params []float64) (ng.Activation, error) {
		if len(params) != 0 {
			return nil, errors.Errorf("%s takes no parameters, got %d", name, len(params))
		}

		return build(), nil
	}
}

func init() {
	list := map[string]func([]float64) (ng.Activation, error){
		"identity": noParams("identity", func() ng.Activation { return Identity() }),
		"tanh":     noParams("tanh", func() ng.Activation { return Tanh() }),
		"arctan":   noParams("arctan", func() ng.Activation { return Arctan() }),
		"erf":      noParams("erf", func() ng.Activation { return Erf() }),
		"sign":     noParams("sign", func() ng.Activation { return Sign() }),

		"logistic": func(params []float64) (ng.Activation, error) {
			if len(params) != 3 {
				return nil, errors.Errorf("logistic takes 3 parameters, got %d", len(params))
			}

			return Logistic(params[0], params[1], params[2]), nil
		},
	}

	for s, f := range list {
		if err := ng.RegisterActivation(s, f); err != nil {
			panic(err.Error())
		}
	}
}
