package dom

import (
	"bufio"
	"html"
	"io"
	"strings"
)

var voidElements = map[string]bool{
	"br":   true,
	"hr":   true,
	"img":  true,
	"meta": true,
	"link": true,
}

// Render writes n as markup.
func (n *Node) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n.render(bw)
	return bw.Flush()
}

// String renders n to a string.
func (n *Node) String() string {
	var b strings.Builder
	n.Render(&b)
	return b.String()
}

func (n *Node) render(w *bufio.Writer) {
	if n.Tag == "" {
		w.WriteString(html.EscapeString(n.Text))
		return
	}

	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.attrs {
		writeAttr(w, a.name, a.value)
	}
	if len(n.classes) > 0 {
		writeAttr(w, "class", strings.Join(n.classes, " "))
	}
	if len(n.style) > 0 {
		var b strings.Builder
		for i, s := range n.style {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s.name)
			b.WriteString(": ")
			b.WriteString(s.value)
			b.WriteByte(';')
		}
		writeAttr(w, "style", b.String())
	}
	if voidElements[n.Tag] {
		w.WriteString(">")
		return
	}
	w.WriteByte('>')
	for _, c := range n.children {
		c.render(w)
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(html.EscapeString(value))
	w.WriteByte('"')
}
