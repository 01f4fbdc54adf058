package chart

import (
	"sort"

	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/scale"
	"github.com/anrid/population-charts/pkg/stats"
)

// Series is one line of the migration chart with its hover dots.
type Series struct {
	Name     string
	Color    string
	Path     *dom.Node
	Vertices []Point
	Dots     []*dom.Node
}

// MigrationChart is the rendered emigrants/immigrants chart.
type MigrationChart struct {
	SVG        *dom.Node
	Plot       *dom.Node
	X, Y       scale.Linear
	Rows       stats.Rows
	Emigrants  *Series
	Immigrants *Series
	Tooltip    *Tooltip
}

// RenderMigration replaces the content of container with the migration
// chart. Rows before the configured first year are dropped and the rest
// are drawn in year order. Rendering again into the same container
// leaves exactly one chart and one tooltip.
func RenderMigration(container *dom.Node, rows stats.Rows, cfg Config) *MigrationChart {
	container.Clear()

	o := cfg.Migration
	width, height := cfg.Width(), cfg.Height()

	rows = rows.FromYear(o.FromYear)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

	svg, plot := newSVG(container, cfg)

	x := scale.NewLinear(float64(o.FromYear), rows.Max(stats.YearOf), 0, width)
	y := scale.NewLinear(0, rows.Max(stats.MigrationOf), height, 0).Nice(scale.DefaultTickCount)

	xAxis := plot.Append("g").Attr("transform", translate(0, height))
	axisBottom(xAxis, x, scale.DefaultTickCount, scale.IntegerFormat).Class("axis-label")

	yTicks := height / 40
	axisLeft(plot.Append("g"), y, yTicks, y.TickFormat(yTicks))

	axisLabel(plot, "Year", width, height+cfg.Margin.Bottom-10)
	axisLabel(plot, "Emigrants/Immigrants (N)", cfg.Margin.Top+40, cfg.Margin.Left-70)

	c := &MigrationChart{SVG: svg, Plot: plot, X: x, Y: y, Rows: rows}

	c.Emigrants = drawSeries(plot, "Emigrants", o.EmigrantsColor, o.StrokeWidth, rows, x, y, stats.EmigrantsOf)
	c.Immigrants = drawSeries(plot, "Immigrants", o.ImmigrantsColor, o.StrokeWidth, rows, x, y, stats.ImmigrantsOf)

	legend := plot.Append("g").Class("legend").Attr("transform", translate(width+10, 20))
	for i, s := range []*Series{c.Emigrants, c.Immigrants} {
		top := float64(i) * 20
		legend.Append("rect").AttrNum("x", 0).AttrNum("y", top).
			AttrNum("width", 10).AttrNum("height", 10).Attr("fill", s.Color)
		legend.Append("text").AttrNum("x", 20).AttrNum("y", top+10).
			Attr("text-anchor", "start").SetText(s.Name)
	}

	// The tooltip is a sibling of the svg so it can float over the page.
	c.Tooltip = newTooltip(container, o)

	c.Emigrants.Dots = drawDots(plot, c.Tooltip, "emigrantsDot", o.EmigrantsColor, o.DotRadius, rows, c.Emigrants.Vertices)
	c.Immigrants.Dots = drawDots(plot, c.Tooltip, "immigrantsDot", o.ImmigrantsColor, o.DotRadius, rows, c.Immigrants.Vertices)

	return c
}

func drawSeries(plot *dom.Node, name, color string, strokeWidth float64, rows stats.Rows, x, y scale.Linear, value func(stats.Row) float64) *Series {
	s := &Series{Name: name, Color: color}
	for _, r := range rows {
		s.Vertices = append(s.Vertices, Point{X: x.Apply(stats.YearOf(r)), Y: y.Apply(value(r))})
	}
	s.Path = plot.Append("path").Class("line", name).
		Attr("fill", "none").
		Attr("stroke", color).
		AttrNum("stroke-width", strokeWidth).
		Attr("d", linePath(s.Vertices))
	return s
}

func drawDots(plot *dom.Node, tip *Tooltip, class, color string, radius float64, rows stats.Rows, at []Point) []*dom.Node {
	dots := make([]*dom.Node, 0, len(rows))
	for i, r := range rows {
		n := plot.Append("circle").Class(class).
			AttrNum("cx", at[i].X).
			AttrNum("cy", at[i].Y).
			AttrNum("r", radius).
			Attr("fill", color)
		tip.Bind(n, r)
		dots = append(dots, n)
	}
	return dots
}
