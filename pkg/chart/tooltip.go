package chart

import (
	"strconv"

	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/stats"
)

// Tooltip is a floating panel showing one row's migration figures next
// to the pointer.
type Tooltip struct {
	Panel   *dom.Node
	offsetX float64
	offsetY float64
	visible bool
}

func newTooltip(container *dom.Node, o MigrationOptions) *Tooltip {
	panel := container.Append("div").Class("tooltip").
		Style("opacity", "0").
		Style("background-color", "white").
		Style("border", "solid").
		Style("border-width", "2px").
		Style("border-radius", "5px").
		Style("padding", "5px").
		Attr("data-offset-x", dom.Num(o.TooltipOffsetX)).
		Attr("data-offset-y", dom.Num(o.TooltipOffsetY))
	return &Tooltip{Panel: panel, offsetX: o.TooltipOffsetX, offsetY: o.TooltipOffsetY}
}

func (t *Tooltip) Visible() bool { return t.visible }

// Show makes the panel visible.
func (t *Tooltip) Show() {
	t.visible = true
	t.Panel.Style("opacity", "1")
}

// Move fills the panel with r and positions it next to the pointer.
func (t *Tooltip) Move(r stats.Row, pageX, pageY float64) {
	t.Panel.Clear()
	line := func(label, value string) {
		t.Panel.Append("strong").SetText(label + ":")
		t.Panel.AppendText(" " + value)
	}
	line("Year", yearText(r))
	t.Panel.Append("br")
	line("Emigrants", dom.Num(r.Emigrants))
	t.Panel.Append("br")
	line("Immigrants", dom.Num(r.Immigrants))

	t.Panel.Style("left", dom.Num(pageX+t.offsetX)+"px")
	t.Panel.Style("top", dom.Num(pageY+t.offsetY)+"px")
}

// Hide makes the panel invisible; its content is kept.
func (t *Tooltip) Hide() {
	t.visible = false
	t.Panel.Style("opacity", "0")
}

// Bind attaches the tooltip handlers for row r to mark n.
func (t *Tooltip) Bind(n *dom.Node, r stats.Row) {
	n.Datum(r)
	n.Attr("data-tooltip", tooltipText(r))
	n.On(dom.PointerEnter, func(dom.Event) { t.Show() })
	n.On(dom.PointerMove, func(ev dom.Event) { t.Move(r, ev.PageX, ev.PageY) })
	n.On(dom.PointerLeave, func(dom.Event) { t.Hide() })
}

// tooltipText is the panel content in a form the page script can split:
// label/value pairs separated by "|".
func tooltipText(r stats.Row) string {
	return "Year|" + yearText(r) + "|Emigrants|" + dom.Num(r.Emigrants) + "|Immigrants|" + dom.Num(r.Immigrants)
}

func yearText(r stats.Row) string {
	if !r.YearValid {
		return "NaN"
	}
	return strconv.Itoa(r.Year)
}
