package page

import (
	"bytes"
	"net/http"

	"github.com/anrid/population-charts/pkg/chart"
	"github.com/anrid/population-charts/pkg/logging"
)

// Handler serves a freshly built page on every request. Nothing is
// shared between requests.
func Handler(title string, src Source, cfg chart.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}

		p := New(title, cfg)
		p.Build(src)

		var buf bytes.Buffer
		if err := p.WriteHTML(&buf); err != nil {
			logging.Errorf("render page: %v", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
	return mux
}
