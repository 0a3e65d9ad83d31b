package initializers

import (
	"math/rand"

	ng "github.com/sharnoff/neurograph"
)

// DefaultGranularity is the number of quantisation steps a Uniform initializer uses unless
// Granularity is called.
const DefaultGranularity int64 = 1 << 20

type uniform struct {
	min, max float64
	gran     int64
	src      rand.Source
}

// Uniform returns a builder for an Initializer drawing weights uniformly from [min, max],
// quantised to a fixed number of steps. The defaults are the range [0, 1], DefaultGranularity
// steps, and the shared global random source; Range, Granularity, and Seed override them,
// each returning the same builder.
func Uniform() *uniform {
	return &uniform{min: 0, max: 1, gran: DefaultGranularity}
}

// Range sets the inclusive range weights are drawn from, returning the same builder.
func (u *uniform) Range(min, max float64) *uniform {
	u.min = min
	u.max = max
	return u
}

// Granularity sets the number of quantisation steps across the range, returning the same
// builder.
func (u *uniform) Granularity(gran int64) *uniform {
	u.gran = gran
	return u
}

// Seed gives the Initializer its own random source with the given seed, making the drawn
// weights reproducible. Returns the same builder.
func (u *uniform) Seed(seed int64) *uniform {
	u.src = rand.NewSource(seed)
	return u
}

// Build returns the Initializer. Returns type ConfigError if min > max or the granularity is
// not positive.
func (u *uniform) Build() (ng.Initializer, error) {
	if u.min > u.max {
		return nil, ng.ConfigError{Msg: "uniform initializer range is inverted"}
	}
	if u.gran < 1 {
		return nil, ng.ConfigError{Msg: "uniform initializer granularity must be positive"}
	}

	intn := rand.Int63n
	if u.src != nil {
		intn = rand.New(u.src).Int63n
	}

	min, span, gran := u.min, u.max-u.min, u.gran
	return func() float64 {
		return min + span*float64(intn(gran+1))/float64(gran)
	}, nil
}
