package chart

import (
	"fmt"

	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/scale"
)

const (
	tickSize    = 6
	tickPadding = 3
	// Half-pixel offset keeps 1px strokes crisp.
	crisp = 0.5
)

// axisBottom draws a horizontal axis into g, ticks below the line.
func axisBottom(g *dom.Node, s scale.Linear, count float64, format func(float64) string) *dom.Node {
	g.Attr("fill", "none").Attr("font-size", "10").Attr("font-family", "sans-serif").Attr("text-anchor", "middle")

	r0, r1 := s.Range[0], s.Range[1]
	g.Append("path").Class("domain").Attr("stroke", "currentColor").
		Attr("d", fmt.Sprintf("M%s,%dV%sH%sV%d", dom.Num(r0+crisp), tickSize, dom.Num(crisp), dom.Num(r1+crisp), tickSize))

	for _, v := range s.Ticks(count) {
		tick := g.Append("g").Class("tick").Attr("opacity", "1").
			Attr("transform", fmt.Sprintf("translate(%s,0)", dom.Num(s.Apply(v)+crisp)))
		tick.Append("line").Attr("stroke", "currentColor").AttrNum("y2", tickSize)
		tick.Append("text").Attr("fill", "currentColor").AttrNum("y", tickSize+tickPadding).
			Attr("dy", "0.71em").SetText(format(v))
	}
	return g
}

// axisLeft draws a vertical axis into g, ticks left of the line.
func axisLeft(g *dom.Node, s scale.Linear, count float64, format func(float64) string) *dom.Node {
	g.Attr("fill", "none").Attr("font-size", "10").Attr("font-family", "sans-serif").Attr("text-anchor", "end")

	r0, r1 := s.Range[0], s.Range[1]
	g.Append("path").Class("domain").Attr("stroke", "currentColor").
		Attr("d", fmt.Sprintf("M%d,%sH%sV%sH%d", -tickSize, dom.Num(r0+crisp), dom.Num(crisp), dom.Num(r1+crisp), -tickSize))

	for _, v := range s.Ticks(count) {
		tick := g.Append("g").Class("tick").Attr("opacity", "1").
			Attr("transform", fmt.Sprintf("translate(0,%s)", dom.Num(s.Apply(v)+crisp)))
		tick.Append("line").Attr("stroke", "currentColor").AttrNum("x2", -tickSize)
		tick.Append("text").Attr("fill", "currentColor").AttrNum("x", -(tickSize+tickPadding)).
			Attr("dy", "0.32em").Class("axis-label").SetText(format(v))
	}
	return g
}

func axisLabel(g *dom.Node, text string, x, y float64) *dom.Node {
	return g.Append("text").Class("axis-label").Attr("text-anchor", "end").
		AttrNum("x", x).AttrNum("y", y).SetText(text)
}
