package stats

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Index is an HTML page linking to dataset files, e.g. a directory
// listing or a data portal page.
type Index struct {
	RootURL string
	Files   []*File
}

var (
	linkRegex = regexp.MustCompile(`<a href=\"(.*?)\">(.*?)</a>`)
	stripTags = regexp.MustCompile(`<.*?>`)
)

// FindFiles collects the links whose title contains one of patterns.
func (s *Index) FindFiles(patterns ...string) error {
	indexHTML, err := get(s.RootURL)
	if err != nil {
		return err
	}
	s.Files = append(s.Files, findLinks(s.RootURL, indexHTML, patterns)...)
	return nil
}

func findLinks(rootURL, indexHTML string, patterns []string) []*File {
	base, err := url.Parse(rootURL)
	if err != nil {
		return nil
	}

	var files []*File
	for _, m := range linkRegex.FindAllStringSubmatch(indexHTML, -1) {
		href := m[1]
		title := strings.Trim(stripTags.ReplaceAllString(m[2], " "), " ")

		var found bool
		for _, p := range patterns {
			if strings.Contains(title, p) {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		link := base.ResolveReference(ref)

		files = append(files, &File{
			URL:   link.String(),
			Title: title,
		})
	}
	return files
}

func (s *Index) FindFile(title string) *File {
	for _, f := range s.Files {
		if f.Title == title {
			return f
		}
	}
	return nil
}

func (s *Index) String() string {
	return fmt.Sprintf("%s (%d files)", s.RootURL, len(s.Files))
}
