package stats

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/anrid/population-charts/pkg/logging"
)

// Pause between requests so a batch of downloads does not hammer the
// origin.
var downloadPause = 250 * time.Millisecond

func get(url string) (string, error) {
	data, err := download(url)
	return string(data), err
}

func download(url string) ([]byte, error) {
	logging.Infof("Download: '%s'", url)

	time.Sleep(downloadPause)

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download '%s': unexpected status %s", url, resp.Status)
	}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download '%s': %w", url, err)
	}

	return data, nil
}
