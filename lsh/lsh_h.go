package lsh

import (
	"sync"

	cm "github.com/gasparian/lsh-index-go/common"
	"github.com/gasparian/lsh-index-go/store"
	"gonum.org/v1/gonum/blas/blas64"
)

// Config holds all needed constants for creating the Index instance
type Config struct {
	NPlanes int // signature length, one bit per hyperplane
	Dims    int // vectors dimensionality
	NTables int // number of independent hash tables
}

// Hasher holds the random projection matrix, one row per hyperplane
type Hasher struct {
	nPlanes int
	dims    int
	planes  []blas64.Vector
}

// Signature is a string of '0' and '1' characters, bit i lives at position i
type Signature string

// Collision describes a bucket which just got one more vector
type Collision struct {
	Table  int
	Prefix string
	Size   int
}

// CollisionObserver receives diagnostic notifications about filled buckets
type CollisionObserver interface {
	OnCollision(c Collision)
}

// Hit describes a non-empty bucket matched by a query
type Hit struct {
	Table      int
	Candidates int
}

// HitObserver receives diagnostic notifications about matched buckets
type HitObserver interface {
	OnHit(h Hit)
}

// CandidateSet holds deduplicated ids found across all tables
type CandidateSet map[string]struct{}

// Stats holds per-table sizes taken as one consistent snapshot
type Stats struct {
	Tables []store.TableStats
}

// Index holds NTables hashers and the store with the same number of hash tables
type Index struct {
	mx          sync.RWMutex
	config      Config
	hashers     []*Hasher
	store       store.Store
	observer    CollisionObserver
	hitObserver HitObserver
	logger      *cm.Logger
}
