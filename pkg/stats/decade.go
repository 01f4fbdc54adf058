package stats

import "strings"

// Decade is one of the fixed year ranges used to colour and group the
// bubble chart.
type Decade struct {
	From  int
	To    int
	Class string
	Color string
}

// Label is the class without its "decade" prefix, e.g. "1990-1999".
func (d Decade) Label() string {
	return strings.TrimPrefix(d.Class, "decade")
}

// Decades lists the buckets in order. Together they partition 1960..2022.
var Decades = []Decade{
	{1960, 1969, "decade1960-1969", "#E81212"},
	{1970, 1979, "decade1970-1979", "#DE7520"},
	{1980, 1989, "decade1980-1989", "#099B82"},
	{1990, 1999, "decade1990-1999", "#0148CB"},
	{2000, 2009, "decade2000-2009", "#D80880"},
	{2010, 2019, "decade2010-2019", "#8A04E0"},
	{2020, 2022, "decade2020-2022", "#69094E"},
}

// DecadeOf classifies a year. Years outside 1960..2022 have no bucket and
// report false; callers must not substitute a default.
func DecadeOf(year int) (Decade, bool) {
	for _, d := range Decades {
		if year >= d.From && year <= d.To {
			return d, true
		}
	}
	return Decade{}, false
}

// DecadeOfRow is DecadeOf for a row, treating an invalid year as
// unclassified.
func DecadeOfRow(r Row) (Decade, bool) {
	if !r.YearValid {
		return Decade{}, false
	}
	return DecadeOf(r.Year)
}

// FindDecade looks a bucket up by class name.
func FindDecade(class string) (Decade, bool) {
	for _, d := range Decades {
		if d.Class == class {
			return d, true
		}
	}
	return Decade{}, false
}
