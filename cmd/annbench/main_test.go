package main

import (
	"errors"
	"math"
	"testing"

	"github.com/gasparian/lsh-index-go/lsh"
)

func TestLimitTestSet(t *testing.T) {
	test := [][]float64{{1}, {2}, {3}}
	neighbors := [][]int{{0}, {1}}

	limited, err := limitTestSet(test, neighbors, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 test vectors, got %v", len(limited))
	}
	if _, err := limitTestSet(test, neighbors, 0); err == nil {
		t.Error("Test vectors without ground truth must be rejected")
	}
	if _, err := limitTestSet(test, neighbors, 10); err == nil {
		t.Error("Limit above the test set size must not skip the ground truth check")
	}
}

func TestMeanHamming(t *testing.T) {
	d, err := meanHamming(
		[]lsh.Signature{"0000", "1111"},
		[]lsh.Signature{"0001", "0011"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-1.5) > 1e-9 {
		t.Errorf("meanHamming() = %v, want 1.5", d)
	}
	if d, err := meanHamming(nil, nil); err != nil || d != 0 {
		t.Errorf("Empty signatures must give zero distance, got %v, %v", d, err)
	}
	if _, err := meanHamming([]lsh.Signature{"01"}, nil); err == nil {
		t.Error("Different tables number must be rejected")
	}
	_, err = meanHamming([]lsh.Signature{"01"}, []lsh.Signature{"011"})
	if !errors.Is(err, lsh.ErrSignatureLengthMismatch) {
		t.Errorf("Expected signature length error, got %v", err)
	}
}
