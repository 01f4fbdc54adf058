package stats

import "math"

// Column headers in the demographic dataset. Rows are matched on these
// names, never on column position.
const (
	ColumnYear       = "Year"
	ColumnBirthRate  = "Birth rate"
	ColumnDeathRate  = "Death rate"
	ColumnEmigrants  = "Emigrants"
	ColumnImmigrants = "Immigrants"
)

// Row is one country-year observation.
//
// Fields that failed to parse hold NaN. Emigrants and Immigrants are
// whole counts but are carried as float64 so that NaN can propagate into
// the charts the same way it does for the rates.
type Row struct {
	Year       int
	YearValid  bool
	BirthRate  float64
	DeathRate  float64
	Emigrants  float64
	Immigrants float64
}

// NewRow returns a row with a valid year and every numeric field set to
// NaN until it is assigned.
func NewRow(year int) Row {
	nan := math.NaN()
	return Row{
		Year:       year,
		YearValid:  true,
		BirthRate:  nan,
		DeathRate:  nan,
		Emigrants:  nan,
		Immigrants: nan,
	}
}

// Rows is the sequence produced by one load.
type Rows []Row

// FromYear keeps rows whose year is valid and >= cutoff. The order of the
// remaining rows is preserved; the receiver is not modified.
func (rs Rows) FromYear(cutoff int) Rows {
	out := make(Rows, 0, len(rs))
	for _, r := range rs {
		if r.YearValid && r.Year >= cutoff {
			out = append(out, r)
		}
	}
	return out
}

// Max returns the largest non-NaN value of f over the rows. With no
// usable value it returns NaN.
func (rs Rows) Max(f func(Row) float64) float64 {
	max := math.NaN()
	for _, r := range rs {
		v := f(r)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// Min is the counterpart of Max.
func (rs Rows) Min(f func(Row) float64) float64 {
	min := math.NaN()
	for _, r := range rs {
		v := f(r)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// Accessors for use with Max/Min and the chart scales.

func YearOf(r Row) float64 {
	if !r.YearValid {
		return math.NaN()
	}
	return float64(r.Year)
}

func BirthRateOf(r Row) float64  { return r.BirthRate }
func DeathRateOf(r Row) float64  { return r.DeathRate }
func EmigrantsOf(r Row) float64  { return r.Emigrants }
func ImmigrantsOf(r Row) float64 { return r.Immigrants }

// MigrationOf is the larger of the two migration counts. NaN in either
// count yields NaN.
func MigrationOf(r Row) float64 {
	if math.IsNaN(r.Emigrants) || math.IsNaN(r.Immigrants) {
		return math.NaN()
	}
	return math.Max(r.Emigrants, r.Immigrants)
}
