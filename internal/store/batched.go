package store

import "sync"

// BatchedStore buffers fit records in memory using fake (negative) IDs
// until CommitBatch writes them in a single transaction.
//
// Thread safety: the mutex protects fake ID allocation and slice appends.
type BatchedStore struct {
	mu   sync.Mutex
	Fits []FitRecord

	nextFakeID int64 // starts at -1, decrements
}

// Compile-time check: *BatchedStore satisfies Recorder.
var _ Recorder = (*BatchedStore)(nil)

// NewBatchedStore creates an empty BatchedStore.
func NewBatchedStore() *BatchedStore {
	return &BatchedStore{nextFakeID: -1}
}

func (b *BatchedStore) InsertFit(rec *FitRecord) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextFakeID
	b.nextFakeID--
	rec.ID = id
	b.Fits = append(b.Fits, *rec)
	return id, nil
}

// Len returns the number of buffered records.
func (b *BatchedStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Fits)
}
