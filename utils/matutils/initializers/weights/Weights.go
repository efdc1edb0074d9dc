// Package weights implements initializers for value function weights
package weights

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"golang.org/x/exp/rand"
)

// Initializer initializes weights in place
type Initializer interface {
	Initialize(weights *mat.Dense)
}

// UV initializes every weight of a matrix with an independent draw from
// a univariate distribution
type UV struct {
	distuv.Rander
}

// NewUV creates and returns a new UV
func NewUV(rand distuv.Rander) UV {
	if rand == nil {
		panic("newUV: rand cannot be nil")
	}
	return UV{rand}
}

// Initialize sets each weight to a new draw from the distribution
func (u UV) Initialize(weights *mat.Dense) {
	if weights == nil || weights.IsEmpty() {
		return
	}

	r, c := weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			weights.Set(i, j, u.Rand())
		}
	}
}

// NewZero returns an Initializer which sets all weights to 0
func NewZero() UV {
	return UV{Constant(0)}
}

// NewUniform returns an Initializer which draws weights uniformly from
// [-scale, scale] using the random source src
func NewUniform(scale float64, src rand.Source) UV {
	if scale <= 0 {
		panic("newUniform: scale must be positive")
	}
	return UV{distuv.Uniform{Min: -scale, Max: scale, Src: src}}
}
