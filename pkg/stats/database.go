package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"time"
)

// Database is a local JSON cache of downloaded dataset files, so charts
// can be rendered without fetching again.
type Database struct {
	Files      []*File
	Downloaded time.Time
}

func NewDatabase() *Database {
	return &Database{}
}

// LoadIfExists reads dbFile. A missing file is reported with found=false
// and no error.
func LoadIfExists(dbFile string) (db *Database, found bool, err error) {
	_, err = os.Stat(dbFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	data, err := ioutil.ReadFile(dbFile)
	if err != nil {
		return nil, false, err
	}

	db = new(Database)
	if err = json.Unmarshal(data, db); err != nil {
		return nil, false, fmt.Errorf("parse database '%s': %w", dbFile, err)
	}

	return db, true, nil
}

func (db *Database) Info(w io.Writer) {
	contentSize := 0
	for _, f := range db.Files {
		contentSize += len(f.ContentBase64)
	}

	downloaded := "never"
	if !db.Downloaded.IsZero() {
		downloaded = db.Downloaded.Format(time.RFC3339)
	}

	fmt.Fprintf(w, `
	Files        : %d
	Content Size : %d
	Downloaded   : %s
	`, len(db.Files), contentSize, downloaded)
	fmt.Fprintln(w, "")
}

func (db *Database) Save(dbFile string) error {
	js, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(dbFile, js, 0644)
}

// Add stores f, replacing any file with the same URL.
func (db *Database) Add(f *File) {
	for i, e := range db.Files {
		if e.URL == f.URL {
			db.Files[i] = f
			return
		}
	}
	db.Files = append(db.Files, f)
}

// Download fetches every file and adds it to the database. It stops at
// the first failure.
func (db *Database) Download(files ...*File) error {
	for _, f := range files {
		if err := f.DownloadContent(); err != nil {
			return err
		}
		db.Add(f)
	}
	db.Downloaded = time.Now()
	return nil
}

// GetFile returns the first file whose URL or title contains match. An
// empty match returns the first file.
func (db *Database) GetFile(match string) (f *File, found bool) {
	for _, f := range db.Files {
		if strings.Contains(f.URL, match) || strings.Contains(f.Title, match) {
			return f, true
		}
	}
	return nil, false
}

// OpenSource picks the dataset: data (a path or URL) when set, otherwise
// the file in the database at dbFile matching match.
func OpenSource(dbFile, data, match string) (*File, error) {
	if data != "" {
		return OpenFile(data)
	}

	db, found, err := LoadIfExists(dbFile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no database at '%s', run the create command first or pass a data file", dbFile)
	}
	f, ok := db.GetFile(match)
	if !ok {
		return nil, fmt.Errorf("no file matching '%s' in '%s'", match, dbFile)
	}
	return f, nil
}
