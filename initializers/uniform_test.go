package initializers

import (
	"testing"

	ng "github.com/sharnoff/neurograph"
)

func TestUniformDefaults(t *testing.T) {
	rng, err := Uniform().Seed(1).Build()
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}

	for i := 0; i < 1000; i++ {
		if v := rng(); v < 0 || v > 1 {
			t.Fatalf("draw %d is %v, outside the default range [0, 1]", i, v)
		}
	}
}

func TestUniformRange(t *testing.T) {
	rng, err := Uniform().Range(-10, 10).Seed(1).Build()
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}

	low, high := false, false
	for i := 0; i < 1000; i++ {
		v := rng()
		if v < -10 || v > 10 {
			t.Fatalf("draw %d is %v, outside [-10, 10]", i, v)
		}

		low = low || v < 0
		high = high || v > 0
	}

	if !low || !high {
		t.Fatalf("a thousand draws never crossed zero")
	}
}

func TestUniformSeeded(t *testing.T) {
	build := func() ng.Initializer {
		rng, err := Uniform().Range(-1, 1).Seed(42).Build()
		if err != nil {
			t.Fatalf("failed to build: %v", err)
		}
		return rng
	}

	a, b := build(), build()
	for i := 0; i < 100; i++ {
		if va, vb := a(), b(); va != vb {
			t.Fatalf("seeded sequences diverge at draw %d: %v vs %v", i, va, vb)
		}
	}
}

func TestUniformGranularity(t *testing.T) {
	rng, err := Uniform().Range(0, 1).Granularity(2).Seed(7).Build()
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}

	seen := map[float64]bool{}
	for i := 0; i < 200; i++ {
		v := rng()
		if v != 0 && v != 0.5 && v != 1 {
			t.Fatalf("draw %d is %v, expected one of the 3 quantised values", i, v)
		}

		seen[v] = true
	}

	// with two hundred draws over three values, the endpoints show up
	if !seen[0] || !seen[1] {
		t.Fatalf("the inclusive endpoints never appeared: %v", seen)
	}
}

func TestUniformConfigErrors(t *testing.T) {
	tcs := []struct {
		name  string
		build *uniform
	}{
		{"inverted range", Uniform().Range(2, 1)},
		{"zero granularity", Uniform().Granularity(0)},
		{"negative granularity", Uniform().Granularity(-5)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.build.Build(); err == nil {
				t.Fatalf("built an invalid initializer")
			} else if _, ok := err.(ng.ConfigError); !ok {
				t.Fatalf("got %T, expected ConfigError", err)
			}
		})
	}
}
