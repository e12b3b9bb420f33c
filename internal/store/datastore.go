package store

// Recorder is the write side of the fit log. Both Store (direct SQLite)
// and BatchedStore (in-memory buffering) implement it.
type Recorder interface {
	InsertFit(rec *FitRecord) (int64, error)
}

// Compile-time check: *Store satisfies Recorder.
var _ Recorder = (*Store)(nil)
