package stats

import (
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"strings"
)

// File represents a resource containing statistical data.
// This is typically a CSV table, but Excel workbooks are accepted too.
type File struct {
	URL           string
	Title         string
	ContentBase64 string
}

func (f *File) DownloadContent() error {
	data, err := download(f.URL)
	if err != nil {
		return err
	}
	f.ContentBase64 = base64.StdEncoding.EncodeToString(data)
	return nil
}

// Content returns the decoded raw bytes of the file.
func (f *File) Content() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(f.ContentBase64)
	if err != nil {
		return nil, fmt.Errorf("decode content of '%s': %w", f.URL, err)
	}
	return data, nil
}

// IsRemote reports whether src should be fetched over HTTP.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// OpenFile reads src, a local path or an HTTP(S) URL, into a File.
func OpenFile(src string) (*File, error) {
	f := &File{URL: src, Title: src}
	if IsRemote(src) {
		if err := f.DownloadContent(); err != nil {
			return nil, err
		}
		return f, nil
	}

	data, err := ioutil.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read '%s': %w", src, err)
	}
	f.ContentBase64 = base64.StdEncoding.EncodeToString(data)
	return f, nil
}

// NewFile wraps in-memory content, e.g. a test fixture.
func NewFile(name string, data []byte) *File {
	return &File{
		URL:           name,
		Title:         name,
		ContentBase64: base64.StdEncoding.EncodeToString(data),
	}
}
