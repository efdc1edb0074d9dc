package weights

// Constant implements the distuv.Rander interface for a distribution
// with all its mass on a single value
type Constant float64

// Rand returns the constant
func (c Constant) Rand() float64 {
	return float64(c)
}
