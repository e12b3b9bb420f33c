// Package batch runs fit-tests described in YAML files.
//
// A batch file names one hole and a list of shapes:
//
//	hole: 7
//	formula: diameter   # optional: diameter (default) or diagonal
//	shapes:
//	  - name: small
//	    radius: 1
//	  - name: peg
//	    width: 3        # a square peg, no adapter needed
//
// Values are decoded without a fixed type so that a non-numeric radius is
// reported by the roundpeg constructors with the same error kinds a Go
// caller would see.
package batch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jward/roundpeg"
	"github.com/jward/roundpeg/internal/store"
)

// File is a decoded batch file.
type File struct {
	Hole    any     `yaml:"hole"`
	Formula string  `yaml:"formula"`
	Shapes  []Shape `yaml:"shapes"`
}

// Shape is one entry of a batch file. Exactly one of Radius and Width must
// be set.
type Shape struct {
	Name   string `yaml:"name"`
	Radius any    `yaml:"radius"`
	Width  any    `yaml:"width"`
}

// Result is the outcome for one shape. Err is set when the shape could not
// be built or tested; the other fields are then zero.
type Result struct {
	Name   string
	Kind   string // "circle" or "square"
	Radius *float64
	Width  float64
	Fits   bool
	Err    error
}

// Report collects the results of one batch run.
type Report struct {
	HoleWidth float64
	Formula   roundpeg.Formula
	Results   []Result
}

// Parse decodes a batch file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("batch: decode: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the batch file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	return Parse(data)
}

// Run fits every shape against the file's hole. An invalid hole or formula
// fails the whole run. A shape that cannot be built is recorded on its own
// Result and the run continues.
func (f *File) Run() (*Report, error) {
	hole, err := roundpeg.SquareHoleFrom(f.Hole)
	if err != nil {
		return nil, fmt.Errorf("batch: hole: %w", err)
	}
	formula, err := roundpeg.ParseFormula(f.Formula)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	report := &Report{
		HoleWidth: hole.Width(),
		Formula:   formula,
		Results:   make([]Result, 0, len(f.Shapes)),
	}
	for i, s := range f.Shapes {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("shape-%d", i+1)
		}
		report.Results = append(report.Results, runShape(hole, formula, name, s))
	}
	return report, nil
}

var errShapeKind = errors.New("shape must set exactly one of radius or width")

func runShape(hole *roundpeg.SquareHole, formula roundpeg.Formula, name string, s Shape) Result {
	res := Result{Name: name}

	var shape roundpeg.WidthReporter
	switch {
	case s.Radius != nil && s.Width == nil:
		res.Kind = "circle"
		c, err := roundpeg.CircleFrom(s.Radius)
		if err != nil {
			res.Err = err
			return res
		}
		a, err := roundpeg.NewCircleAdapter(c, roundpeg.WithFormula(formula))
		if err != nil {
			res.Err = err
			return res
		}
		r := c.Radius()
		res.Radius = &r
		shape = a
	case s.Width != nil && s.Radius == nil:
		res.Kind = "square"
		p, err := roundpeg.SquarePegFrom(s.Width)
		if err != nil {
			res.Err = err
			return res
		}
		shape = p
	default:
		res.Err = errShapeKind
		return res
	}

	fits, err := hole.Fits(shape)
	if err != nil {
		res.Err = err
		return res
	}
	res.Width = shape.Width()
	res.Fits = fits
	return res
}

// Failed returns the number of shapes that could not be tested.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Record writes every successful result to rec under the given source.
func (r *Report) Record(rec store.Recorder, source string, at time.Time) error {
	for _, res := range r.Results {
		if res.Err != nil {
			continue
		}
		fr := &store.FitRecord{
			Source:     source,
			Shape:      res.Kind,
			Radius:     res.Radius,
			ShapeWidth: res.Width,
			HoleWidth:  r.HoleWidth,
			Fits:       res.Fits,
			CheckedAt:  at,
		}
		if res.Kind == "circle" {
			fr.Formula = r.Formula.String()
		}
		if _, err := rec.InsertFit(fr); err != nil {
			return fmt.Errorf("batch: record %s: %w", res.Name, err)
		}
	}
	return nil
}
