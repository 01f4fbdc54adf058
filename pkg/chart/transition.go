package chart

import (
	"strconv"
	"time"

	"github.com/anrid/population-charts/pkg/dom"
)

// Transition animates attributes from their current value to a target,
// starting after Delay and lasting Duration, with cubic in-out easing.
// It is written into the document as SMIL animate elements so the page
// plays it without script.
type Transition struct {
	Delay    time.Duration
	Duration time.Duration
}

// cubic-bezier approximation of cubic in-out.
const cubicInOut = "0.645 0.045 0.355 1"

// Attr animates attribute name of n from its current value to the given
// value. The element keeps the start value; fill=freeze holds the end.
func (t Transition) Attr(n *dom.Node, name, to string) *dom.Node {
	from, _ := n.GetAttr(name)
	return n.Append("animate").
		Attr("attributeName", name).
		Attr("from", from).
		Attr("to", to).
		Attr("begin", ms(t.Delay)).
		Attr("dur", ms(t.Duration)).
		Attr("fill", "freeze").
		Attr("calcMode", "spline").
		Attr("keyTimes", "0;1").
		Attr("keySplines", cubicInOut)
}

func ms(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64) + "ms"
}
