package matutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{0, 0, 0, 0}, 0},
		{[]float64{1, 5, 5, 2}, 1},
		{[]float64{-3, -2, -1, -1}, 2},
		{[]float64{7}, 0},
	}

	for _, test := range tests {
		v := mat.NewVecDense(len(test.values), test.values)
		assert.Equal(t, test.want, MaxVec(v), "%v", test.values)
	}
}

func TestMaxAbs(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, -9, 3, 4})
	assert.Equal(t, 9.0, MaxAbs(m))
	assert.Equal(t, 0.0, MaxAbs(mat.NewDense(1, 1, nil)))
}
