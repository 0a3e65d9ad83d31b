package criteria

// constant implements neurograph.Criterion with a fixed learning rate.
type constant struct {
	sigma, alpha float64
	updated      bool
}

// Constant returns a Criterion with a fixed rate: as long as the squared error stays above
// the tolerance sigma, every step uses alpha; once the error is within tolerance, no further
// update is requested. For a fixed training set this makes Updated a termination witness:
// after it first returns false, it stays false.
func Constant(sigma, alpha float64) *constant {
	return &constant{sigma: sigma, alpha: alpha, updated: true}
}

func (c *constant) Rate(err2 float64) float64 {
	if err2 > c.sigma {
		c.updated = true
		return c.alpha
	}

	c.updated = false
	return 0
}

func (c *constant) Updated() bool {
	return c.updated
}
