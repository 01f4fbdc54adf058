package main

import (
	"flag"
	"log"
	"os"

	"github.com/anrid/population-charts/pkg/logging"
	"github.com/anrid/population-charts/pkg/stats"
)

const populationDatabase = "/tmp/population-charts.json"

func main() {
	dbFile := flag.String("db", populationDatabase, "database file")
	dataURL := flag.String("url", "", "dataset URL to download")
	indexURL := flag.String("index", "", "HTML page linking to dataset files")
	match := flag.String("match", "", "download the index links whose title contains this")
	force := flag.Bool("force", false, "download again even if the database exists")
	logging.RegisterFlag(flag.CommandLine)
	flag.Parse()

	db, found, err := stats.LoadIfExists(*dbFile)
	if err != nil {
		log.Fatalf("Could not read database: %v", err)
	}
	if found && !*force {
		logging.Infof("database %s already exists, use -force to download again", *dbFile)
		db.Info(os.Stdout)
		return
	}
	if !found {
		db = stats.NewDatabase()
	}

	var files []*stats.File
	switch {
	case *indexURL != "":
		index := &stats.Index{RootURL: *indexURL}
		if err := index.FindFiles(*match); err != nil {
			log.Fatalf("Could not read index: %v", err)
		}
		logging.Infof("index %s", index)
		files = index.Files
	case *dataURL != "":
		files = append(files, &stats.File{URL: *dataURL})
	default:
		log.Fatal("Pass -url or -index")
	}
	if len(files) == 0 {
		log.Fatalf("No files matching '%s' found", *match)
	}

	if err := db.Download(files...); err != nil {
		log.Fatalf("Download failed: %v", err)
	}
	if err := db.Save(*dbFile); err != nil {
		log.Fatalf("Could not save database: %v", err)
	}

	db.Info(os.Stdout)
}
