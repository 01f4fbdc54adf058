package chart

import (
	"math"
	"strings"

	"github.com/anrid/population-charts/pkg/dom"
)

// Point is a vertex in plot coordinates.
type Point struct {
	X, Y float64
}

// linePath builds an SVG path through pts, e.g. "M0,270L650,0".
// Coordinates are rounded to three decimals.
func linePath(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(coord(p.X))
		b.WriteByte(',')
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

func coord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dom.Num(v)
	}
	return dom.Num(math.Round(v*1000) / 1000)
}
