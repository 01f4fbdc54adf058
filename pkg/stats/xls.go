package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"

	"github.com/anrid/population-charts/pkg/logging"
)

// ExtractDataFromFile calls handler once per record of f, header
// included. The format is chosen by the file extension.
func ExtractDataFromFile(f *File, handler func(r []string)) error {
	switch extension(f.URL) {
	case ".xlsx":
		return ExtractDataFromXLSX(f, handler)
	case ".xls":
		return ExtractDataFromXLS(f, handler)
	default:
		return ExtractDataFromCSV(f, handler)
	}
}

func extension(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return strings.ToLower(path.Ext(url))
}

func ExtractDataFromCSV(f *File, handler func(r []string)) error {
	logging.Debugf("Loading CSV data: %s", f.URL)

	rawData, err := f.Content()
	if err != nil {
		return err
	}
	rawData = bytes.TrimPrefix(rawData, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(rawData))
	reader.FieldsPerRecord = -1

	for {
		r, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read CSV file '%s' (%s): %w", f.Title, f.URL, err)
		}
		handler(r)
	}
}

func ExtractDataFromXLS(f *File, handler func(r []string)) error {
	logging.Debugf("Loading XLS data: %s", f.URL)

	rawData, err := f.Content()
	if err != nil {
		return err
	}
	wb, err := xls.OpenReader(bytes.NewReader(rawData), "utf-8")
	if err != nil {
		return fmt.Errorf("could not read XLS file '%s' (%s): %w", f.Title, f.URL, err)
	}

	if sheet := wb.GetSheet(0); sheet != nil {
		logging.Debugf("Sheet name : %s", sheet.Name)
		logging.Debugf("Sheet rows : %d", sheet.MaxRow)

		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row != nil {
				var cols []string
				for j := 0; j <= row.LastCol(); j++ {
					cols = append(cols, row.Col(j))
				}
				handler(cols)
			}
		}
	}
	return nil
}

func ExtractDataFromXLSX(f *File, handler func(r []string)) error {
	logging.Debugf("Loading XLSX data: %s", f.URL)

	rawData, err := f.Content()
	if err != nil {
		return err
	}
	wb, err := xlsx.OpenReader(bytes.NewReader(rawData))
	if err != nil {
		return fmt.Errorf("could not read XLSX file '%s' (%s): %w", f.Title, f.URL, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("XLSX file '%s' has no sheets", f.URL)
	}
	defaultSheet := sheets[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return fmt.Errorf("could not get rows for default sheet '%s': %w", defaultSheet, err)
	}

	logging.Debugf("Sheet name : %s", defaultSheet)
	logging.Debugf("Sheet rows : %d", len(rows))

	for _, r := range rows {
		handler(r)
	}
	return nil
}

// XLSXSheet is the sheet name used by WriteXLSX.
const XLSXSheet = "Data"

// WriteXLSX writes rows to a single-sheet workbook with the dataset's
// header names. NaN fields are written as the text "NaN" so they load
// back as NaN rather than as blank (which loads as 0).
func WriteXLSX(w io.Writer, rows Rows) error {
	wb := xlsx.NewFile()
	wb.SetSheetName("Sheet1", XLSXSheet)

	header := []interface{}{ColumnYear, ColumnBirthRate, ColumnDeathRate, ColumnEmigrants, ColumnImmigrants}
	if err := wb.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("write XLSX header: %w", err)
	}

	for i, r := range rows {
		cell, err := xlsx.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var year interface{} = "NaN"
		if r.YearValid {
			year = r.Year
		}
		values := []interface{}{
			year,
			xlsxNumber(r.BirthRate),
			xlsxNumber(r.DeathRate),
			xlsxNumber(r.Emigrants),
			xlsxNumber(r.Immigrants),
		}
		if err := wb.SetSheetRow(XLSXSheet, cell, &values); err != nil {
			return fmt.Errorf("write XLSX row %d: %w", i+2, err)
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write XLSX: %w", err)
	}
	return nil
}

func xlsxNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return v
}
