package kv

import (
	"fmt"
	"sync"

	"github.com/gasparian/lsh-index-go/store"
)

// KVStore keeps all hash tables in memory
type KVStore struct {
	mx    sync.RWMutex
	m     map[string][]string
	stats map[int]*store.TableStats
}

// NewKVStore creates empty in-memory store
func NewKVStore() *KVStore {
	return &KVStore{
		m:     make(map[string][]string),
		stats: make(map[int]*store.TableStats),
	}
}

// KeysIterator walks over the snapshot of a bucket
type KeysIterator struct {
	vecIDs []string
	pos    int
}

// Next returns the next vector uid and false when the bucket is exhausted
func (it *KeysIterator) Next() (string, bool) {
	if it.pos >= len(it.vecIDs) {
		return "", false
	}
	vecID := it.vecIDs[it.pos]
	it.pos++
	return vecID, true
}

func getBucketName(table int, hash string) string {
	return fmt.Sprintf("%v_%v", table, hash)
}

// SetHashes appends vector uid to the bucket of every table and returns the new bucket sizes.
// Hashes are checked before the first append, so a failed call leaves the store untouched
func (s *KVStore) SetHashes(hashes []string, vecID string) ([]int, error) {
	for table, hash := range hashes {
		if len(hash) == 0 {
			return nil, fmt.Errorf("%w: table %d", store.ErrEmptyHash, table)
		}
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	sizes := make([]int, len(hashes))
	for table, hash := range hashes {
		sizes[table] = s.setHash(table, hash, vecID)
	}
	return sizes, nil
}

func (s *KVStore) setHash(table int, hash, vecID string) int {
	bucketName := getBucketName(table, hash)
	bucket, ok := s.m[bucketName]
	st, has := s.stats[table]
	if !has {
		st = &store.TableStats{}
		s.stats[table] = st
	}
	if !ok {
		st.Buckets++
	}
	bucket = append(bucket, vecID)
	s.m[bucketName] = bucket
	st.Entries++
	if len(bucket) > st.MaxBucketSize {
		st.MaxBucketSize = len(bucket)
	}
	return len(bucket)
}

// GetHashIterator returns iterator over the copy of the bucket content
func (s *KVStore) GetHashIterator(table int, hash string) (store.Iterator, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	bucket, ok := s.m[getBucketName(table, hash)]
	if !ok {
		return nil, store.ErrBucketNotFound
	}
	vecIDs := make([]string, len(bucket))
	copy(vecIDs, bucket)
	return &KeysIterator{vecIDs: vecIDs}, nil
}

// TableStats returns the current size of the table
func (s *KVStore) TableStats(table int) store.TableStats {
	s.mx.RLock()
	defer s.mx.RUnlock()

	st, ok := s.stats[table]
	if !ok {
		return store.TableStats{}
	}
	return *st
}
