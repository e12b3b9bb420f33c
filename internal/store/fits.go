package store

import (
	"database/sql"
	"fmt"
)

const insertFitSQL = `INSERT INTO fits (source, shape, formula, radius, shape_width, hole_width, fits, checked_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const selectFitSQL = `SELECT id, source, shape, formula, radius, shape_width, hole_width, fits, checked_at FROM fits`

// fitArgs stores checked_at in UTC. The driver writes times as text with
// their zone offset and ordering compares that text.
func fitArgs(rec *FitRecord) []any {
	return []any{rec.Source, rec.Shape, rec.Formula, rec.Radius, rec.ShapeWidth, rec.HoleWidth, rec.Fits, rec.CheckedAt.UTC()}
}

func (s *Store) InsertFit(rec *FitRecord) (int64, error) {
	res, err := s.db.Exec(insertFitSQL, fitArgs(rec)...)
	if err != nil {
		return 0, fmt.Errorf("insert fit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (s *Store) FitByID(id int64) (*FitRecord, error) {
	rec, err := scanFit(s.db.QueryRow(selectFitSQL+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fit by id: %w", err)
	}
	return rec, nil
}

// RecentFits returns the newest records first. limit <= 0 returns all.
func (s *Store) RecentFits(limit int) ([]*FitRecord, error) {
	fits, err := s.newestFits("", nil, limit)
	if err != nil {
		return nil, fmt.Errorf("recent fits: %w", err)
	}
	return fits, nil
}

// FitsBySource returns the records of one source, newest first.
// limit <= 0 returns all.
func (s *Store) FitsBySource(source string, limit int) ([]*FitRecord, error) {
	fits, err := s.newestFits(" WHERE source = ?", []any{source}, limit)
	if err != nil {
		return nil, fmt.Errorf("fits by source: %w", err)
	}
	return fits, nil
}

func (s *Store) newestFits(where string, args []any, limit int) ([]*FitRecord, error) {
	query := selectFitSQL + where + " ORDER BY checked_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return collectFits(rows)
}

func (s *Store) Stats() (FitStats, error) {
	var st FitStats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN fits THEN 1 ELSE 0 END), 0) FROM fits",
	).Scan(&st.Total, &st.Fitting)
	if err != nil {
		return FitStats{}, fmt.Errorf("fit stats: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFit(row rowScanner) (*FitRecord, error) {
	rec := &FitRecord{}
	var radius sql.NullFloat64
	if err := row.Scan(&rec.ID, &rec.Source, &rec.Shape, &rec.Formula, &radius,
		&rec.ShapeWidth, &rec.HoleWidth, &rec.Fits, &rec.CheckedAt); err != nil {
		return nil, err
	}
	if radius.Valid {
		r := radius.Float64
		rec.Radius = &r
	}
	return rec, nil
}

func collectFits(rows *sql.Rows) ([]*FitRecord, error) {
	defer rows.Close()
	var fits []*FitRecord
	for rows.Next() {
		rec, err := scanFit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fit: %w", err)
		}
		fits = append(fits, rec)
	}
	return fits, rows.Err()
}
