// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0

	for i := 1; i < values.Len(); i++ {
		if values.AtVec(i) > max {
			max = values.AtVec(i)
			idx = i
		}
	}
	return idx
}

// MaxAbs returns the maximum absolute value in a matrix
func MaxAbs(X mat.Matrix) float64 {
	r, c := X.Dims()

	max := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			max = math.Max(max, math.Abs(X.At(i, j)))
		}
	}
	return max
}
