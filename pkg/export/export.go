// Package export writes static snapshots of the rendered charts with
// go-chart, for places where the interactive page cannot be used.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/anrid/population-charts/pkg/chart"
	"github.com/anrid/population-charts/pkg/logging"
	"github.com/anrid/population-charts/pkg/scale"
	"github.com/anrid/population-charts/pkg/stats"
)

// ErrNoData is returned when a chart has no plottable point.
var ErrNoData = errors.New("no plottable data")

var namedColors = map[string]string{
	"steelblue": "4682B4",
	"red":       "FF0000",
	"black":     "000000",
}

// colorOf converts a CSS colour ("#E81212" or a few names) for go-chart.
func colorOf(css string) drawing.Color {
	if strings.HasPrefix(css, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(css, "#"))
	}
	if hex, ok := namedColors[strings.ToLower(css)]; ok {
		return drawing.ColorFromHex(hex)
	}
	return gochart.ColorBlack
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color, radius float64) gochart.Style {
	return gochart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    radius,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, width, radius float64) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: width,
		DotWidth:    radius,
		DotColor:    col,
	}
}

func ticks(s scale.Linear, count float64, format func(float64) string) []gochart.Tick {
	var out []gochart.Tick
	for _, v := range s.Ticks(count) {
		out = append(out, gochart.Tick{Value: v, Label: format(v)})
	}
	return out
}

func axisRange(s scale.Linear) *gochart.ContinuousRange {
	lo, hi := s.Domain[0], s.Domain[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func usable(s scale.Linear) bool {
	for _, v := range s.Domain {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Domain[0] != s.Domain[1]
}

// Bubble draws the birth/death rate chart, one point series per decade.
func Bubble(w io.Writer, c *chart.BubbleChart, cfg chart.Config, rp gochart.RendererProvider) error {
	if !usable(c.X) || !usable(c.Y) {
		return ErrNoData
	}

	type group struct {
		name   string
		color  drawing.Color
		xs, ys []float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, m := range c.Marks {
		if math.IsNaN(m.Row.DeathRate) || math.IsNaN(m.Row.BirthRate) {
			continue
		}
		key, name, col := "", "other", gochart.ColorBlack
		if m.HasDecade {
			key, name, col = m.Decade.Class, m.Decade.Label(), colorOf(m.Decade.Color)
		}
		g, ok := groups[key]
		if !ok {
			g = &group{name: name, color: col}
			groups[key] = g
			order = append(order, key)
		}
		g.xs = append(g.xs, m.Row.DeathRate)
		g.ys = append(g.ys, m.Row.BirthRate)
	}
	if len(order) == 0 {
		return ErrNoData
	}

	var series []gochart.Series
	for _, key := range order {
		g := groups[key]
		series = append(series, gochart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style:   pointStyle(g.color, cfg.Bubble.Radius/2),
		})
	}

	yTicks := cfg.Height() / 40
	ch := gochart.Chart{
		Title:      "Birth rate vs. mortality rate",
		Width:      int(cfg.OuterWidth),
		Height:     int(cfg.OuterHeight),
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "Mortality rate (%)",
			Range: axisRange(c.X),
			Ticks: ticks(c.X, scale.DefaultTickCount, c.X.TickFormat(scale.DefaultTickCount)),
		},
		YAxis: gochart.YAxis{
			Name:  "Birth rate (%)",
			Range: axisRange(c.Y),
			Ticks: ticks(c.Y, yTicks, c.Y.TickFormat(yTicks)),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendLeft(&ch)}

	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render bubble chart: %w", err)
	}
	return nil
}

// Migration draws the emigrants and immigrants lines.
func Migration(w io.Writer, c *chart.MigrationChart, cfg chart.Config, rp gochart.RendererProvider) error {
	if !usable(c.X) || !usable(c.Y) {
		return ErrNoData
	}

	o := cfg.Migration
	var series []gochart.Series
	add := func(name, color string, value func(stats.Row) float64) {
		var xs, ys []float64
		for _, r := range c.Rows {
			v := value(r)
			if math.IsNaN(v) {
				continue
			}
			xs = append(xs, float64(r.Year))
			ys = append(ys, v)
		}
		if len(xs) == 0 {
			return
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(colorOf(color), o.StrokeWidth, o.DotRadius/2),
		})
	}
	add(c.Emigrants.Name, c.Emigrants.Color, stats.EmigrantsOf)
	add(c.Immigrants.Name, c.Immigrants.Color, stats.ImmigrantsOf)
	if len(series) == 0 {
		return ErrNoData
	}

	yTicks := cfg.Height() / 40
	ch := gochart.Chart{
		Title:      "Emigrants and immigrants",
		Width:      int(cfg.OuterWidth),
		Height:     int(cfg.OuterHeight),
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "Year",
			Range: axisRange(c.X),
			Ticks: ticks(c.X, scale.DefaultTickCount, scale.IntegerFormat),
		},
		YAxis: gochart.YAxis{
			Name:  "Emigrants/Immigrants (N)",
			Range: axisRange(c.Y),
			Ticks: ticks(c.Y, yTicks, c.Y.TickFormat(yTicks)),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render migration chart: %w", err)
	}
	return nil
}

// WriteFiles writes bubble.<ext> and migration.<ext> into dir for the
// charts that exist and have data. ext is "png" or "svg".
func WriteFiles(dir, ext string, bubble *chart.BubbleChart, migration *chart.MigrationChart, cfg chart.Config) ([]string, error) {
	rp := gochart.PNG
	switch ext {
	case "png":
	case "svg":
		rp = gochart.SVG
	default:
		return nil, fmt.Errorf("unsupported snapshot format '%s'", ext)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(dir, name+"."+ext)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	// A chart without plottable data is skipped so the other one is still
	// written.
	skip := func(name string, err error) error {
		if errors.Is(err, ErrNoData) {
			logging.Warnf("%s snapshot skipped: %v", name, err)
			return nil
		}
		return err
	}

	if bubble != nil {
		err := write("bubble", func(w io.Writer) error { return Bubble(w, bubble, cfg, rp) })
		if err = skip("bubble", err); err != nil {
			return written, err
		}
	}
	if migration != nil {
		err := write("migration", func(w io.Writer) error { return Migration(w, migration, cfg, rp) })
		if err = skip("migration", err); err != nil {
			return written, err
		}
	}
	return written, nil
}
