package store

import "fmt"

// CommitBatch inserts all buffered records from a BatchedStore within a
// single transaction and returns the real IDs in buffer order. The batch is
// left untouched so a failed commit can be retried.
func (s *Store) CommitBatch(batch *BatchedStore) ([]int64, error) {
	batch.mu.Lock()
	defer batch.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertFitSQL)
	if err != nil {
		return nil, fmt.Errorf("commit batch: prepare: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(batch.Fits))
	for i := range batch.Fits {
		rec := &batch.Fits[i]
		res, err := stmt.Exec(fitArgs(rec)...)
		if err != nil {
			return nil, fmt.Errorf("commit batch: insert fit %d: %w", i, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("commit batch: last insert id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: commit: %w", err)
	}
	return ids, nil
}
