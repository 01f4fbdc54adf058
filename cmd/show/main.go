package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/population-charts/pkg/logging"
	"github.com/anrid/population-charts/pkg/stats"
)

const populationDatabase = "/tmp/population-charts.json"

func main() {
	dbFile := flag.String("db", populationDatabase, "database file")
	data := flag.String("data", "", "CSV, XLS or XLSX file or URL, instead of the database")
	match := flag.String("match", "", "use the database file whose URL or title contains this")
	dump := flag.Bool("dump", false, "dump every parsed row")
	flag.Parse()

	// Diagnostics are listed below.
	logging.SetLevel("error")

	f, err := stats.OpenSource(*dbFile, *data, *match)
	if err != nil {
		log.Fatalf("No dataset: %v", err)
	}

	res, err := stats.FullLoader.LoadFile(f)
	if err != nil {
		log.Fatalf("Could not load %s: %v", f.URL, err)
	}
	rows := res.Rows

	// New locale number printer.
	p := message.NewPrinter(language.English)

	p.Printf("\n%s\n\n", f.URL)
	p.Printf("Rows        : %d\n", len(rows))
	p.Printf("Diagnostics : %d\n", len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		p.Printf("  %s\n", d)
	}
	if len(rows) == 0 {
		return
	}

	// Years are printed without grouping.
	p.Printf("Years       : %s - %s\n", fmt.Sprint(rows.Min(stats.YearOf)), fmt.Sprint(rows.Max(stats.YearOf)))
	p.Printf("Birth rate  : %.1f - %.1f\n", rows.Min(stats.BirthRateOf), rows.Max(stats.BirthRateOf))
	p.Printf("Death rate  : %.1f - %.1f\n", rows.Min(stats.DeathRateOf), rows.Max(stats.DeathRateOf))
	p.Printf("Emigrants   : %.f - %.f\n", rows.Min(stats.EmigrantsOf), rows.Max(stats.EmigrantsOf))
	p.Printf("Immigrants  : %.f - %.f\n\n", rows.Min(stats.ImmigrantsOf), rows.Max(stats.ImmigrantsOf))

	p.Printf("%-6s %-10s %6s %6s %10s %10s\n", "Year", "Decade", "Birth", "Death", "Emigrants", "Immigrants")
	for _, r := range rows {
		decade := "-"
		if d, ok := stats.DecadeOfRow(r); ok {
			decade = d.Label()
		}
		year := "NaN"
		if r.YearValid {
			year = strconv.Itoa(r.Year)
		}
		p.Printf("%-6s %-10s %6.1f %6.1f %10.f %10.f\n", year, decade, r.BirthRate, r.DeathRate, r.Emigrants, r.Immigrants)
	}

	if *dump {
		spew.Fdump(os.Stdout, rows)
	}
}
