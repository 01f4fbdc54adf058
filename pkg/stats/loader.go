package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anrid/population-charts/pkg/logging"
)

var fieldSetters = map[string]func(r *Row, v float64){
	ColumnBirthRate:  func(r *Row, v float64) { r.BirthRate = v },
	ColumnDeathRate:  func(r *Row, v float64) { r.DeathRate = v },
	ColumnEmigrants:  func(r *Row, v float64) { r.Emigrants = v },
	ColumnImmigrants: func(r *Row, v float64) { r.Immigrants = v },
}

// Loader turns tabular records into Rows. Year is always converted;
// Fields names the other columns to convert. Columns not listed stay NaN.
type Loader struct {
	Fields []string
	// FromYear, when non-zero, drops rows before that year.
	FromYear int
}

// Loaders used by the two charts, and one for the whole table.
var (
	BirthDeathLoader = Loader{Fields: []string{ColumnBirthRate, ColumnDeathRate}}
	MigrationLoader  = Loader{Fields: []string{ColumnEmigrants, ColumnImmigrants}, FromYear: 2008}
	FullLoader       = Loader{Fields: []string{ColumnBirthRate, ColumnDeathRate, ColumnEmigrants, ColumnImmigrants}}
)

// Diagnostic describes one cell that did not parse as a number. The row
// is kept and the field holds NaN.
type Diagnostic struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d, column '%s': %q: %v", d.Line, d.Column, d.Value, d.Err)
}

// Result is the outcome of a load.
type Result struct {
	Rows        Rows
	Diagnostics []Diagnostic
}

var (
	ErrNoHeader      = errors.New("no header row")
	ErrMissingColumn = errors.New("missing column")
	ErrNotANumber    = errors.New("not a number")
	ErrMissingCell   = errors.New("missing cell")
	ErrBadYear       = errors.New("year is not an integer")
)

// Load reads src (path or URL) and parses it.
func (l Loader) Load(src string) (*Result, error) {
	f, err := OpenFile(src)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(f)
}

// LoadFile parses an already fetched file.
func (l Loader) LoadFile(f *File) (*Result, error) {
	var records [][]string
	err := ExtractDataFromFile(f, func(r []string) {
		records = append(records, r)
	})
	if err != nil {
		return nil, err
	}

	res, err := l.Parse(records)
	if err != nil {
		return nil, fmt.Errorf("load '%s': %w", f.URL, err)
	}
	for _, d := range res.Diagnostics {
		logging.Warnf("%s: %s", f.URL, d)
	}
	logging.Debugf("%s: %d rows, %d diagnostics", f.URL, len(res.Rows), len(res.Diagnostics))
	return res, nil
}

// Parse converts records, the first of which is the header.
func (l Loader) Parse(records [][]string) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	index := make(map[string]int)
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	columns := append([]string{ColumnYear}, l.Fields...)
	for _, c := range columns {
		if c != ColumnYear {
			if _, ok := fieldSetters[c]; !ok {
				return nil, fmt.Errorf("unknown numeric column '%s'", c)
			}
		}
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w '%s'", ErrMissingColumn, c)
		}
	}

	res := &Result{Rows: make(Rows, 0, len(records)-1)}

	for i, rec := range records[1:] {
		// Empty spreadsheet rows carry no cells at all. A record of blank
		// cells is still a row: every blank field reads as 0.
		if len(rec) == 0 {
			continue
		}
		line := i + 2

		cell := func(column string) (string, bool) {
			j := index[column]
			if j >= len(rec) {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: line, Column: column, Err: ErrMissingCell})
				return "", false
			}
			return rec[j], true
		}

		row := NewRow(0)
		row.YearValid = false
		if s, ok := cell(ColumnYear); ok {
			v, err := parseNumber(s)
			switch {
			case err != nil:
				res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: line, Column: ColumnYear, Value: s, Err: err})
			case v != math.Trunc(v) || math.Abs(v) > math.MaxInt32:
				res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: line, Column: ColumnYear, Value: s, Err: ErrBadYear})
			default:
				row.Year = int(v)
				row.YearValid = true
			}
		}

		for _, c := range l.Fields {
			v := math.NaN()
			if s, ok := cell(c); ok {
				var err error
				v, err = parseNumber(s)
				if err != nil {
					res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: line, Column: c, Value: s, Err: err})
				}
			}
			fieldSetters[c](&row, v)
		}

		if l.FromYear != 0 && !(row.YearValid && row.Year >= l.FromYear) {
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// parseNumber mirrors a lenient numeric coercion: surrounding whitespace
// is ignored and a blank cell is 0. Anything else unparsable is NaN.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return math.NaN(), ErrNotANumber
	}
	return v, nil
}
