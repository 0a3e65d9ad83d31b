package criteria

// adaptive implements neurograph.Criterion with a rate that grows while the error keeps
// falling and shrinks when it stops.
type adaptive struct {
	sigma float64

	alpha   float64
	conv    int
	lastErr float64
	updated bool

	cmax, cmin       int
	incCoef, decCoef float64
}

// Adaptive returns a Criterion that adjusts its rate as training progresses. Starting from
// alpha0, a convergence counter tracks the recent trend: each step with a lower squared error
// than the last increments it, each other step decrements it. When the counter reaches the
// upper threshold the rate is multiplied by the increase coefficient; at the lower threshold,
// by the decrease coefficient; either way the counter restarts at zero. Within the tolerance
// sigma, no update is requested and the rate, counter, and last error are left untouched.
//
// The thresholds and coefficients default to (5, -2) and (1.15, 0.3); Thresholds and Coefs
// change them, returning the same Criterion.
func Adaptive(sigma, alpha0 float64) *adaptive {
	return &adaptive{
		sigma:   sigma,
		alpha:   alpha0,
		updated: true,

		cmax:    5,
		cmin:    -2,
		incCoef: 1.15,
		decCoef: 0.3,
	}
}

// Thresholds sets the convergence-counter bounds at which the rate changes.
func (a *adaptive) Thresholds(cmax, cmin int) *adaptive {
	a.cmax = cmax
	a.cmin = cmin
	return a
}

// Coefs sets the factors applied to the rate at the upper and lower thresholds.
func (a *adaptive) Coefs(incCoef, decCoef float64) *adaptive {
	a.incCoef = incCoef
	a.decCoef = decCoef
	return a
}

// Alpha returns the current learning rate.
func (a *adaptive) Alpha() float64 {
	return a.alpha
}

func (a *adaptive) Rate(err2 float64) float64 {
	if err2 <= a.sigma {
		a.updated = false
		return 0
	}

	a.updated = true

	if err2 < a.lastErr {
		a.conv++
		if a.conv >= a.cmax {
			a.conv = 0
			a.alpha *= a.incCoef
		}
	} else {
		a.conv--
		if a.conv <= a.cmin {
			a.conv = 0
			a.alpha *= a.decCoef
		}
	}

	a.lastErr = err2
	return a.alpha
}

func (a *adaptive) Updated() bool {
	return a.updated
}
