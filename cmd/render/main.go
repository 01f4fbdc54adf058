package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/anrid/population-charts/pkg/chart"
	"github.com/anrid/population-charts/pkg/export"
	"github.com/anrid/population-charts/pkg/logging"
	"github.com/anrid/population-charts/pkg/page"
	"github.com/anrid/population-charts/pkg/stats"
)

const populationDatabase = "/tmp/population-charts.json"

func main() {
	dbFile := flag.String("db", populationDatabase, "database file")
	data := flag.String("data", "", "CSV, XLS or XLSX file or URL, instead of the database")
	match := flag.String("match", "", "use the database file whose URL or title contains this")
	configFile := flag.String("config", "", "JSON file overriding the chart defaults")
	title := flag.String("title", "Population statistics", "page title")
	out := flag.String("out", "index.html", "HTML page to write, empty to skip")
	pngDir := flag.String("png", "", "write PNG snapshots into this directory")
	svgDir := flag.String("svg", "", "write SVG snapshots into this directory")
	xlsxFile := flag.String("xlsx", "", "write the parsed rows to this XLSX file")
	serve := flag.String("serve", "", "serve the page on this address, e.g. :8080")
	logging.RegisterFlag(flag.CommandLine)
	flag.Parse()

	cfg := chart.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = chart.LoadConfig(*configFile); err != nil {
			log.Fatalf("Bad config: %v", err)
		}
	}

	src := func() (*stats.File, error) {
		return stats.OpenSource(*dbFile, *data, *match)
	}

	if *serve != "" {
		logging.Infof("serving on %s", *serve)
		log.Fatal(http.ListenAndServe(*serve, page.Handler(*title, src, cfg)))
	}

	defer logging.TimeTrack(time.Now(), "render")

	p := page.New(*title, cfg)
	p.Build(src)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Could not create %s: %v", *out, err)
		}
		if err := p.WriteHTML(f); err != nil {
			f.Close()
			log.Fatalf("Could not write %s: %v", *out, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Could not write %s: %v", *out, err)
		}
		logging.Infof("wrote %s", *out)
	}

	for ext, dir := range map[string]string{"png": *pngDir, "svg": *svgDir} {
		if dir == "" {
			continue
		}
		written, err := export.WriteFiles(dir, ext, p.Bubble, p.Migration, cfg)
		if err != nil {
			log.Fatalf("Could not write %s snapshots: %v", ext, err)
		}
		for _, path := range written {
			logging.Infof("wrote %s", path)
		}
	}

	if *xlsxFile != "" {
		if err := writeXLSX(*xlsxFile, src); err != nil {
			log.Fatalf("Could not write %s: %v", *xlsxFile, err)
		}
		logging.Infof("wrote %s", *xlsxFile)
	}
}

func writeXLSX(path string, src page.Source) error {
	f, err := src()
	if err != nil {
		return err
	}
	res, err := stats.FullLoader.LoadFile(f)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := stats.WriteXLSX(out, res.Rows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
