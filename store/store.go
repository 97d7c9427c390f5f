package store

import (
	"errors"
)

var (
	// ErrBucketNotFound is returned when no vector has been hashed into the bucket yet
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrEmptyHash is returned when one of the hashes to store is empty
	ErrEmptyHash = errors.New("hash can't be empty")
)

// Iterator consists from only one method which returns uid of the next vector
type Iterator interface {
	Next() (string, bool)
}

// TableStats holds the size summary of a single hash table
type TableStats struct {
	Buckets       int
	Entries       int
	MaxBucketSize int
}

// Store holds the hash tables of the search index.
// Every table maps the lsh hash to the ordered list of vector uids,
// so the same uid may be stored several times in one bucket.
// SetHashes puts vecID into table i under hashes[i] for every i; it either
// stores all of them or nothing, and returns the new bucket sizes
type Store interface {
	SetHashes(hashes []string, vecID string) ([]int, error)
	GetHashIterator(table int, hash string) (Iterator, error)
	TableStats(table int) TableStats
}
