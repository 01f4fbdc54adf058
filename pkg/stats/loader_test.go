package stats

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

const sampleCSV = `Year,Birth rate,Death rate,Emigrants,Immigrants
1960,24.1,9.8,1200,900
1961,23.5,9.6,1300,950
2007,10.2,11.0,4000,3500
2008,10.0,11.2,4100,3600
2009,9.8,11.5,4300,3900
`

func TestLoaderBirthDeath(t *testing.T) {
	res, err := BirthDeathLoader.LoadFile(NewFile("data.csv", []byte(sampleCSV)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(res.Rows))
	}
	r := res.Rows[0]
	if r.Year != 1960 || !r.YearValid || r.BirthRate != 24.1 || r.DeathRate != 9.8 {
		t.Fatalf("unexpected first row: %s", spew.Sdump(r))
	}
	// Columns not configured for this chart stay NaN.
	if !math.IsNaN(r.Emigrants) || !math.IsNaN(r.Immigrants) {
		t.Fatalf("unconfigured fields should be NaN: %s", spew.Sdump(r))
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestLoaderMigrationFiltersAndKeepsOrder(t *testing.T) {
	res, err := MigrationLoader.LoadFile(NewFile("data.csv", []byte(sampleCSV)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows from 2008 on, got %d: %s", len(res.Rows), spew.Sdump(res.Rows))
	}
	if res.Rows[0].Year != 2008 || res.Rows[1].Year != 2009 {
		t.Fatalf("order not preserved: %d, %d", res.Rows[0].Year, res.Rows[1].Year)
	}
	if res.Rows[1].Emigrants != 4300 || res.Rows[1].Immigrants != 3900 {
		t.Fatalf("unexpected counts: %s", spew.Sdump(res.Rows[1]))
	}
}

func TestLoaderMatchesHeaderNamesNotPositions(t *testing.T) {
	records := [][]string{
		{"Immigrants", "Death rate", "Year", "Birth rate", "Emigrants"},
		{"5", "9.5", "2010", "12.5", "10"},
	}
	res, err := FullLoader.Parse(records)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := res.Rows[0]
	if r.Year != 2010 || r.BirthRate != 12.5 || r.DeathRate != 9.5 || r.Emigrants != 10 || r.Immigrants != 5 {
		t.Fatalf("columns mismatched: %s", spew.Sdump(r))
	}
}

// Unparsable numbers become NaN and are kept; this is the accepted
// behaviour, diagnostics only report it.
func TestLoaderNaNOnParseFailure(t *testing.T) {
	records := [][]string{
		{"Year", "Birth rate", "Death rate"},
		{"1970", "n/a", " 8.5 "},
		{"abc", "20", ""},
		{"1971", "19"},
	}
	res, err := BirthDeathLoader.Parse(records)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows with bad fields must not be rejected, got %d", len(res.Rows))
	}
	if !math.IsNaN(res.Rows[0].BirthRate) || res.Rows[0].DeathRate != 8.5 {
		t.Fatalf("row 0: %s", spew.Sdump(res.Rows[0]))
	}
	if res.Rows[1].YearValid {
		t.Fatalf("year 'abc' must be invalid")
	}
	if res.Rows[1].DeathRate != 0 {
		t.Fatalf("blank cell should be 0, got %v", res.Rows[1].DeathRate)
	}
	if !math.IsNaN(res.Rows[2].DeathRate) {
		t.Fatalf("missing cell should be NaN, got %v", res.Rows[2].DeathRate)
	}

	if len(res.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Line != 2 || d.Column != ColumnBirthRate || d.Value != "n/a" || !errors.Is(d.Err, ErrNotANumber) {
		t.Fatalf("unexpected diagnostic: %s", spew.Sdump(d))
	}
	if !errors.Is(res.Diagnostics[2].Err, ErrMissingCell) || res.Diagnostics[2].Line != 4 {
		t.Fatalf("unexpected diagnostic: %s", res.Diagnostics[2])
	}
}

func TestLoaderRejectsNonIntegralYear(t *testing.T) {
	res, err := BirthDeathLoader.Parse([][]string{
		{"Year", "Birth rate", "Death rate"},
		{"1980.5", "1", "2"},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Rows[0].YearValid {
		t.Fatalf("1980.5 should not be a valid year")
	}
	if !errors.Is(res.Diagnostics[0].Err, ErrBadYear) {
		t.Fatalf("expected ErrBadYear, got %v", res.Diagnostics[0].Err)
	}
}

func TestLoaderRejectsHugeYear(t *testing.T) {
	res, err := BirthDeathLoader.Parse([][]string{
		{"Year", "Birth rate", "Death rate"},
		{"1e20", "1", "2"},
		{"2000", "1", "2"},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Rows[0].YearValid || res.Rows[0].Year != 0 {
		t.Fatalf("1e20 should not be a valid year: %s", spew.Sdump(res.Rows[0]))
	}
	if len(res.Diagnostics) != 1 || !errors.Is(res.Diagnostics[0].Err, ErrBadYear) {
		t.Fatalf("expected one ErrBadYear, got %v", res.Diagnostics)
	}
	if !res.Rows[1].YearValid || res.Rows[1].Year != 2000 {
		t.Fatalf("2000 should load: %s", spew.Sdump(res.Rows[1]))
	}
}

func TestLoaderKeepsBlankRecords(t *testing.T) {
	res, err := BirthDeathLoader.Parse([][]string{
		{"Year", "Birth rate", "Death rate"},
		{"1970", "20", "9"},
		{"", "", ""},
		{"", "12", ""},
		{},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %s", len(res.Rows), spew.Sdump(res.Rows))
	}
	blank := res.Rows[1]
	if !blank.YearValid || blank.Year != 0 || blank.BirthRate != 0 || blank.DeathRate != 0 {
		t.Fatalf("all-blank record should read as zeros: %s", spew.Sdump(blank))
	}
	if res.Rows[2].BirthRate != 12 || res.Rows[2].Year != 0 {
		t.Fatalf("unexpected row: %s", spew.Sdump(res.Rows[2]))
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("blank cells are not parse failures: %v", res.Diagnostics)
	}
}

func TestLoaderMissingColumn(t *testing.T) {
	_, err := MigrationLoader.Parse([][]string{{"Year", "Emigrants"}})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	_, err = MigrationLoader.Parse(nil)
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}

func TestLoaderStripsBOM(t *testing.T) {
	data := "\xef\xbb\xbf" + sampleCSV
	res, err := BirthDeathLoader.LoadFile(NewFile("data.csv", []byte(data)))
	if err != nil {
		t.Fatalf("load with BOM: %v", err)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(res.Rows))
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	rows := Rows{NewRow(2008), NewRow(2009)}
	rows[0].Emigrants, rows[0].Immigrants = 10, 5
	rows[1].Emigrants = 20
	rows[1].BirthRate, rows[1].DeathRate = 9.5, 11

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	all := FullLoader
	res, err := all.LoadFile(NewFile("rows.xlsx", buf.Bytes()))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Rows))
	}
	got := res.Rows[1]
	if got.Year != 2009 || got.Emigrants != 20 || got.BirthRate != 9.5 || got.DeathRate != 11 {
		t.Fatalf("round trip mismatch: %s", spew.Sdump(got))
	}
	if !math.IsNaN(got.Immigrants) || !math.IsNaN(res.Rows[0].BirthRate) {
		t.Fatalf("NaN should survive the round trip: %s", spew.Sdump(res.Rows))
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"data.csv":                       ".csv",
		"https://example.org/t.XLSX?x=1": ".xlsx",
		"/tmp/book.xls#sheet":            ".xls",
		"noext":                          "",
	}
	for in, want := range cases {
		if got := extension(in); got != want {
			t.Errorf("extension(%q) = %q want %q", in, got, want)
		}
	}
}
