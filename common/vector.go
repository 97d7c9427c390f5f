package common

import (
	"gonum.org/v1/gonum/blas/blas64"
)

const tol = 1e-6

// NewVec creates new blas vector
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// CosineDist calculates cosine distance btw the two given vectors,
// returns false if one of them is a zero vector
func CosineDist(a, b blas64.Vector) (float64, bool) {
	denom := blas64.Nrm2(a) * blas64.Nrm2(b)
	if denom <= tol {
		return 0.0, false
	}
	return 1.0 - blas64.Dot(a, b)/denom, true
}

// ConvertTo64 __
func ConvertTo64(ar []float32) []float64 {
	newar := make([]float64, len(ar))
	for i, v := range ar {
		newar[i] = float64(v)
	}
	return newar
}

// ConvertToInt __
func ConvertToInt(ar []int32) []int {
	newar := make([]int, len(ar))
	for i, v := range ar {
		newar[i] = int(v)
	}
	return newar
}
