// Package page assembles both charts into one HTML document and serves
// it.
package page

import (
	"html/template"
	"io"
	"time"

	"github.com/anrid/population-charts/pkg/chart"
	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/logging"
	"github.com/anrid/population-charts/pkg/stats"
)

// Container ids the charts render into.
const (
	BubbleID    = "d_b"
	MigrationID = "migration"
)

// Source fetches the dataset. It is called once per chart, so each chart
// succeeds or fails on its own.
type Source func() (*stats.File, error)

// Page is the document holding both chart containers.
type Page struct {
	Title     string
	Body      *dom.Node
	Config    chart.Config
	Bubble    *chart.BubbleChart
	Migration *chart.MigrationChart
}

func New(title string, cfg chart.Config) *Page {
	body := dom.New("body")
	body.Append("div").Attr("id", BubbleID)
	body.Append("div").Attr("id", MigrationID)
	return &Page{Title: title, Body: body, Config: cfg}
}

// Container returns the element with the given id.
func (p *Page) Container(id string) *dom.Node {
	return p.Body.ByID(id)
}

// Build renders both charts from src. A chart whose data cannot be
// loaded is left out and its container stays empty.
func (p *Page) Build(src Source) {
	defer logging.TimeTrack(time.Now(), "page build")

	if rows, ok := load(src, stats.BirthDeathLoader, BubbleID); ok {
		p.Bubble = chart.RenderBubble(p.Container(BubbleID), rows, p.Config)
	} else {
		p.Container(BubbleID).Clear()
		p.Bubble = nil
	}

	if rows, ok := load(src, stats.MigrationLoader, MigrationID); ok {
		p.Migration = chart.RenderMigration(p.Container(MigrationID), rows, p.Config)
	} else {
		p.Container(MigrationID).Clear()
		p.Migration = nil
	}
}

func load(src Source, l stats.Loader, id string) (stats.Rows, bool) {
	f, err := src()
	if err != nil {
		logging.Warnf("#%s: fetch failed, chart left empty: %v", id, err)
		return nil, false
	}
	res, err := l.LoadFile(f)
	if err != nil {
		logging.Warnf("#%s: load failed, chart left empty: %v", id, err)
		return nil, false
	}
	return res.Rows, true
}

type templateData struct {
	Title      string
	Body       template.HTML
	DimOpacity float64
}

// WriteHTML writes the complete document.
func (p *Page) WriteHTML(w io.Writer) error {
	var body []byte
	for _, c := range p.Body.Children() {
		body = append(body, c.String()...)
	}
	return pageTemplate.Execute(w, templateData{
		Title: p.Title,
		// Markup comes from dom, which escapes all text and attributes.
		Body:       template.HTML(body),
		DimOpacity: p.Config.Bubble.DimOpacity,
	})
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
.axis-label { font-size: 12px; }
.tooltip { position: absolute; pointer-events: none; }
</style>
</head>
<body>
{{.Body}}
<script>
(function () {
  var dim = {{.DimOpacity}};
  document.querySelectorAll('[data-highlight]').forEach(function (el) {
    var svg = el.closest('svg');
    var marks = svg.querySelectorAll('.bubbles');
    el.addEventListener('mouseover', function () {
      marks.forEach(function (m) {
        m.style.opacity = m.classList.contains(el.dataset.highlight) ? 1 : dim;
      });
    });
    el.addEventListener('mouseleave', function () {
      marks.forEach(function (m) { m.style.opacity = 1; });
    });
  });
  document.querySelectorAll('[data-tooltip]').forEach(function (el) {
    var tip = el.closest('svg').parentNode.querySelector('.tooltip');
    var dx = +tip.dataset.offsetX, dy = +tip.dataset.offsetY;
    el.addEventListener('mouseover', function () { tip.style.opacity = 1; });
    el.addEventListener('mousemove', function (ev) {
      var parts = el.dataset.tooltip.split('|');
      tip.textContent = '';
      for (var i = 0; i + 1 < parts.length; i += 2) {
        if (i > 0) tip.appendChild(document.createElement('br'));
        var label = document.createElement('strong');
        label.textContent = parts[i] + ':';
        tip.appendChild(label);
        tip.appendChild(document.createTextNode(' ' + parts[i + 1]));
      }
      tip.style.left = (ev.pageX + dx) + 'px';
      tip.style.top = (ev.pageY + dy) + 'px';
    });
    el.addEventListener('mouseleave', function () { tip.style.opacity = 0; });
  });
})();
</script>
</body>
</html>
`))
