package chart

import (
	"fmt"
	"time"

	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/scale"
	"github.com/anrid/population-charts/pkg/stats"
)

const svgNS = "http://www.w3.org/2000/svg"

// BubbleMark is one row's circle in the birth/death rate chart. X and Y
// are the final position the entry transition moves to.
type BubbleMark struct {
	Row       stats.Row
	Node      *dom.Node
	X, Y      float64
	Decade    stats.Decade
	HasDecade bool
	Delay     time.Duration
}

// BubbleChart is the rendered birth rate vs. death rate chart.
type BubbleChart struct {
	SVG       *dom.Node
	Plot      *dom.Node
	X, Y      scale.Linear
	Marks     []BubbleMark
	Legend    []*dom.Node
	Highlight *Highlighter
}

// RenderBubble replaces the content of container with the bubble chart
// for rows. Death rate runs along x, birth rate along y, and bubbles are
// coloured by decade.
func RenderBubble(container *dom.Node, rows stats.Rows, cfg Config) *BubbleChart {
	container.Clear()

	o := cfg.Bubble
	width, height := cfg.Width(), cfg.Height()
	svg, plot := newSVG(container, cfg)

	x := scale.NewLinear(o.XFloor, rows.Max(stats.DeathRateOf), 0, width-20).Nice(scale.DefaultTickCount)
	y := scale.NewLinear(0, rows.Max(stats.BirthRateOf), height, 0).Nice(scale.DefaultTickCount)

	xAxis := plot.Append("g").Attr("transform", translate(0, height)).Class("myXaxis").Attr("opacity", "0")
	axisBottom(xAxis, x, scale.DefaultTickCount, x.TickFormat(scale.DefaultTickCount))
	Transition{Duration: o.duration()}.Attr(xAxis, "opacity", "1")

	yTicks := height / 40
	axisLeft(plot.Append("g"), y, yTicks, y.TickFormat(yTicks))

	axisLabel(plot, "Mortality rate (%)", width-10+cfg.Margin.Left, height+cfg.Margin.Top+5)
	axisLabel(plot, "Birth rate (%)", cfg.Margin.Top+20, cfg.Margin.Left-70)

	c := &BubbleChart{SVG: svg, Plot: plot, X: x, Y: y}

	nodes := make([]*dom.Node, 0, len(rows))
	for i, r := range rows {
		n := plot.Append("circle").Class("bubbles").Datum(r).
			AttrNum("cx", 0).
			AttrNum("cy", height).
			AttrNum("r", o.Radius)

		m := BubbleMark{
			Row:   r,
			Node:  n,
			X:     x.Apply(r.DeathRate),
			Y:     y.Apply(r.BirthRate),
			Delay: o.delay(i),
		}
		m.Decade, m.HasDecade = stats.DecadeOfRow(r)
		if m.HasDecade {
			n.Class(m.Decade.Class).Style("fill", m.Decade.Color)
		}

		t := Transition{Delay: m.Delay, Duration: o.duration()}
		t.Attr(n, "cx", dom.Num(m.X))
		t.Attr(n, "cy", dom.Num(m.Y))

		c.Marks = append(c.Marks, m)
		nodes = append(nodes, n)
	}

	c.Highlight = NewHighlighter(nodes, o.DimOpacity)
	for _, m := range c.Marks {
		if m.HasDecade {
			c.Highlight.Bind(m.Node, m.Decade.Class)
		}
	}

	step := o.LegendSize + 5
	for i, d := range stats.Decades {
		dot := plot.Append("circle").Class("legend", d.Class).
			AttrNum("cx", height+200).
			AttrNum("cy", 10+float64(i)*step).
			AttrNum("r", o.LegendRadius).
			Style("fill", d.Color)
		label := plot.Append("text").Class("legend", d.Class).
			AttrNum("x", height+210).
			AttrNum("y", float64(i)*step+o.LegendSize/2).
			Style("fill", d.Color).
			Style("alignment-baseline", "middle").
			SetText(d.Label())

		c.Highlight.Bind(dot, d.Class)
		c.Highlight.Bind(label, d.Class)
		c.Legend = append(c.Legend, dot, label)
	}

	return c
}

func newSVG(container *dom.Node, cfg Config) (svg, plot *dom.Node) {
	svg = container.Append("svg").
		Attr("xmlns", svgNS).
		AttrNum("width", cfg.OuterWidth).
		AttrNum("height", cfg.OuterHeight)
	plot = svg.Append("g").Attr("transform", translate(cfg.Margin.Left, cfg.Margin.Top))
	return svg, plot
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", dom.Num(x), dom.Num(y))
}
