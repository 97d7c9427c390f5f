package common

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas/blas64"
)

func TestNewVec(t *testing.T) {
	var v blas64.Vector
	v = NewVec([]float64{0.0, 42.0})
	if blas64.Asum(v) != 42.0 {
		t.Fatal("Corrupted conversion to blas vector")
	}
	v = NewVec(nil)
	if blas64.Asum(v) != 0.0 {
		t.Fatal("Corrupted conversion to blas vector: nil should return empty vector")
	}
}

func TestCosineDist(t *testing.T) {
	v1 := NewVec([]float64{0.0, 1.0})
	v2 := NewVec([]float64{0.0, 1.0})
	v3 := NewVec([]float64{1.0, 0.0})
	v4 := NewVec([]float64{0.0, -1.0})
	dist1, _ := CosineDist(v1, v2)
	if math.Abs(dist1) > tol {
		t.Fatal("Cosine distance must be 0.0 for equal vectors")
	}
	dist2, _ := CosineDist(v1, v3)
	if math.Abs(dist2-1.0) > tol {
		t.Fatal("Cosine distance must be 1.0 for orthogonal vectors")
	}
	dist3, _ := CosineDist(v1, v4)
	if math.Abs(dist3-2.0) > tol {
		t.Fatal("Cosine distance must be 2.0 for multidirectional vectors")
	}
	_, ok := CosineDist(v1, NewVec([]float64{0.0, 0.0}))
	if ok {
		t.Fatal("Cosine distance can't be calculated with zero vector")
	}
}

func TestConvert(t *testing.T) {
	f := ConvertTo64([]float32{1.5, -2})
	if len(f) != 2 || f[0] != 1.5 || f[1] != -2.0 {
		t.Fatal("Wrong float conversion")
	}
	ints := ConvertToInt([]int32{3, 7})
	if len(ints) != 2 || ints[0] != 3 || ints[1] != 7 {
		t.Fatal("Wrong int conversion")
	}
}
