package chart

import (
	"github.com/anrid/population-charts/pkg/dom"
)

// Highlighter holds the currently highlighted category of a set of marks
// and derives every mark's opacity from it. With no highlight all marks
// are opaque; otherwise marks outside the category are dimmed.
type Highlighter struct {
	marks  []*dom.Node
	dim    float64
	active string
}

func NewHighlighter(marks []*dom.Node, dim float64) *Highlighter {
	h := &Highlighter{marks: marks, dim: dim}
	h.apply()
	return h
}

// Enter highlights class.
func (h *Highlighter) Enter(class string) {
	h.active = class
	h.apply()
}

// Leave clears the highlight.
func (h *Highlighter) Leave() {
	h.active = ""
	h.apply()
}

// Active returns the highlighted class, if any.
func (h *Highlighter) Active() (string, bool) {
	return h.active, h.active != ""
}

// Bind makes pointer enter/leave on n drive the highlight of class.
func (h *Highlighter) Bind(n *dom.Node, class string) {
	n.Attr("data-highlight", class)
	n.On(dom.PointerEnter, func(dom.Event) { h.Enter(class) })
	n.On(dom.PointerLeave, func(dom.Event) { h.Leave() })
}

// Opacity is the opacity state implies for mark.
func (h *Highlighter) Opacity(mark *dom.Node) float64 {
	if h.active == "" || mark.HasClass(h.active) {
		return 1
	}
	return h.dim
}

func (h *Highlighter) apply() {
	for _, m := range h.marks {
		m.Style("opacity", dom.Num(h.Opacity(m)))
	}
}
