package store

import "time"

// FitRecord is one fit-test outcome. Radius is nil for shapes that report
// a width natively.
type FitRecord struct {
	ID         int64
	Source     string // "check", "batch:<file>", "script:<name>", ...
	Shape      string
	Formula    string
	Radius     *float64
	ShapeWidth float64
	HoleWidth  float64
	Fits       bool
	CheckedAt  time.Time
}

// FitStats summarizes the fit log.
type FitStats struct {
	Total   int
	Fitting int
}
