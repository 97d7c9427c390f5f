package lsh

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	planeCoefsStd = 2.0
	// NOTE: bit is set only when the projection exceeds 1, not 0 as in the classic simhash
	projectionThrsh = 1.0
)

var (
	// ErrDimensionMismatch is returned when the vector length differs from the configured one
	ErrDimensionMismatch = errors.New("vector dimensions do not match")
	// ErrInvalidConfig is returned when one of the index parameters is not a positive integer
	ErrInvalidConfig = errors.New("invalid config")
)

func newRandSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// NewHasher creates hasher with nPlanes random hyperplanes; coefficients are
// sampled from N(0, 2) using the provided source
func NewHasher(nPlanes, dims int, src rand.Source) (*Hasher, error) {
	if nPlanes < 1 {
		return nil, fmt.Errorf("%w: planes number must be a positive integer, got %d", ErrInvalidConfig, nPlanes)
	}
	if dims < 1 {
		return nil, fmt.Errorf("%w: dimensions number must be a positive integer, got %d", ErrInvalidConfig, dims)
	}
	if src == nil {
		src = newRandSource()
	}
	dist := distuv.Normal{
		Mu:    0,
		Sigma: planeCoefsStd,
		Src:   src,
	}
	planes := make([]blas64.Vector, nPlanes)
	for i := range planes {
		coefs := make([]float64, dims)
		for j := range coefs {
			coefs[j] = dist.Rand()
		}
		planes[i] = blas64.Vector{N: dims, Inc: 1, Data: coefs}
	}
	return &Hasher{
		nPlanes: nPlanes,
		dims:    dims,
		planes:  planes,
	}, nil
}

// NewHasherFromPlanes creates hasher with the fixed projection matrix
func NewHasherFromPlanes(planes [][]float64) (*Hasher, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: planes number must be a positive integer", ErrInvalidConfig)
	}
	dims := len(planes[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: dimensions number must be a positive integer", ErrInvalidConfig)
	}
	hasher := &Hasher{
		nPlanes: len(planes),
		dims:    dims,
		planes:  make([]blas64.Vector, len(planes)),
	}
	for i, p := range planes {
		if len(p) != dims {
			return nil, fmt.Errorf("%w: plane %d has %d coefficients, want %d", ErrInvalidConfig, i, len(p), dims)
		}
		coefs := make([]float64, dims)
		copy(coefs, p)
		hasher.planes[i] = blas64.Vector{N: dims, Inc: 1, Data: coefs}
	}
	return hasher, nil
}

// NPlanes returns signature length
func (h *Hasher) NPlanes() int {
	return h.nPlanes
}

// Dims returns expected vector dimensions
func (h *Hasher) Dims() int {
	return h.dims
}

// Sign calculates the vector signature
func (h *Hasher) Sign(vec []float64) (Signature, error) {
	if len(vec) != h.dims {
		return "", fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), h.dims)
	}
	inpVec := blas64.Vector{N: len(vec), Inc: 1, Data: vec}
	bits := make([]bool, h.nPlanes)
	for i, plane := range h.planes {
		bits[i] = blas64.Dot(plane, inpVec) > projectionThrsh
	}
	return newSignature(bits), nil
}
