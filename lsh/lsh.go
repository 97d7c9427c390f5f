package lsh

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"

	cm "github.com/gasparian/lsh-index-go/common"
	"github.com/gasparian/lsh-index-go/store"
	"github.com/gasparian/lsh-index-go/store/kv"
	"golang.org/x/sync/errgroup"
)

const (
	collisionPrefixLen = 8
	minCollisionSize   = 2
	maxCollisionSize   = 5
)

// Validate returns an error if any of the index parameters is invalid
func (c Config) Validate() error {
	if c.NPlanes < 1 {
		return fmt.Errorf("%w: planes number must be a positive integer, got %d", ErrInvalidConfig, c.NPlanes)
	}
	if c.Dims < 1 {
		return fmt.Errorf("%w: dimensions number must be a positive integer, got %d", ErrInvalidConfig, c.Dims)
	}
	if c.NTables < 1 {
		return fmt.Errorf("%w: tables number must be a positive integer, got %d", ErrInvalidConfig, c.NTables)
	}
	return nil
}

type options struct {
	src      rand.Source
	observer CollisionObserver
	store    store.Store
	logger   *cm.Logger
}

// Option configures the Index
type Option func(*options)

// WithSource sets the random source used to generate all projection matrices
func WithSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithObserver sets the collisions observer; if it also implements
// HitObserver it gets notified about the matched buckets on every query
func WithObserver(observer CollisionObserver) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithStore sets the storage for hash tables
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger
func WithLogger(logger *cm.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates the index with NTables independent hashers.
// Hashers draw from the same source one after another,
// so the i-th table stays the same for any number of tables
func New(config Config, opts ...Option) (*Index, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = newRandSource()
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}
	if o.store == nil {
		o.store = kv.NewKVStore()
	}

	hashers := make([]*Hasher, config.NTables)
	for i := range hashers {
		hasher, err := NewHasher(config.NPlanes, config.Dims, o.src)
		if err != nil {
			return nil, err
		}
		hashers[i] = hasher
	}
	if o.logger != nil {
		o.logger.Info.Printf("Index created: %v tables, %v planes, %v dims", config.NTables, config.NPlanes, config.Dims)
	}
	hitObserver, _ := o.observer.(HitObserver)
	return &Index{
		config:      config,
		hashers:     hashers,
		store:       o.store,
		observer:    o.observer,
		hitObserver: hitObserver,
		logger:      o.logger,
	}, nil
}

// Config returns the index parameters
func (index *Index) Config() Config {
	return index.config
}

// Hashes returns signatures of the vector for every table
func (index *Index) Hashes(vec []float64) ([]Signature, error) {
	if len(vec) != index.config.Dims {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), index.config.Dims)
	}
	hashes := make([]Signature, len(index.hashers))
	if len(index.hashers) == 1 {
		sig, err := index.hashers[0].Sign(vec)
		if err != nil {
			return nil, err
		}
		hashes[0] = sig
		return hashes, nil
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, hasher := range index.hashers {
		g.Go(func() error {
			sig, err := hasher.Sign(vec)
			if err != nil {
				return err
			}
			hashes[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// Insert appends the id to the matched bucket of every table.
// The store applies all appends or none of them under the write lock,
// so readers never see the id in one table and miss it in another
func (index *Index) Insert(vec []float64, id string) error {
	hashes, err := index.Hashes(vec)
	if err != nil {
		return err
	}
	keys := make([]string, len(hashes))
	for table, sig := range hashes {
		keys[table] = string(sig)
	}
	index.mx.Lock()
	sizes, err := index.store.SetHashes(keys, id)
	index.mx.Unlock()
	if err != nil {
		return err
	}

	for table, size := range sizes {
		if size >= minCollisionSize && size <= maxCollisionSize {
			index.observer.OnCollision(Collision{
				Table:  table,
				Prefix: hashes[table].Prefix(collisionPrefixLen),
				Size:   size,
			})
		}
	}
	return nil
}

// Query returns union of the ids stored in the matched buckets of all tables
func (index *Index) Query(vec []float64) (CandidateSet, error) {
	hashes, err := index.Hashes(vec)
	if err != nil {
		return nil, err
	}
	candidates := make(CandidateSet)
	hits := make([]Hit, 0, len(hashes))
	index.mx.RLock()
	for table, sig := range hashes {
		it, err := index.store.GetHashIterator(table, string(sig))
		if errors.Is(err, store.ErrBucketNotFound) {
			continue
		}
		if err != nil {
			index.mx.RUnlock()
			return nil, err
		}
		n := 0
		for id, ok := it.Next(); ok; id, ok = it.Next() {
			candidates[id] = struct{}{}
			n++
		}
		hits = append(hits, Hit{Table: table, Candidates: n})
	}
	index.mx.RUnlock()

	if index.hitObserver != nil {
		for _, h := range hits {
			index.hitObserver.OnHit(h)
		}
	}
	return candidates, nil
}

// Stats returns sizes of all tables
func (index *Index) Stats() Stats {
	index.mx.RLock()
	defer index.mx.RUnlock()

	stats := Stats{Tables: make([]store.TableStats, len(index.hashers))}
	for i := range stats.Tables {
		stats.Tables[i] = index.store.TableStats(i)
	}
	return stats
}

// Contains checks if the id is in the set
func (c CandidateSet) Contains(id string) bool {
	_, ok := c[id]
	return ok
}

// Len returns the number of candidates
func (c CandidateSet) Len() int {
	return len(c)
}

// Sorted returns candidates as a sorted slice
func (c CandidateSet) Sorted() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
