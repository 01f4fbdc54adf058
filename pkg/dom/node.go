// Package dom is a small in-memory element tree for building SVG and
// HTML fragments on the server. Elements carry attributes, classes,
// inline styles, a bound datum and pointer event handlers, so chart code
// can be written and tested the way it would run in a browser.
package dom

import (
	"math"
	"strconv"
	"strings"
)

type attr struct {
	name  string
	value string
}

// Node is an element, or a text node when Tag is empty.
type Node struct {
	Tag  string
	Text string
	// Data is the datum bound to the element, if any.
	Data interface{}

	attrs    []attr
	style    []attr
	classes  []string
	children []*Node
	parent   *Node
	handlers map[string][]Handler
}

// New returns a detached element.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// TextNode returns a detached text node.
func TextNode(s string) *Node {
	return &Node{Text: s}
}

// Append creates a child element and returns it.
func (n *Node) Append(tag string) *Node {
	c := New(tag)
	n.AppendNode(c)
	return c
}

// AppendNode attaches c as the last child, detaching it first if needed.
func (n *Node) AppendNode(c *Node) *Node {
	if c.parent != nil {
		c.Remove()
	}
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// AppendText adds a text child and returns n for chaining.
func (n *Node) AppendText(s string) *Node {
	n.AppendNode(TextNode(s))
	return n
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(s string) *Node {
	n.Clear()
	return n.AppendText(s)
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	if n.Tag == "" {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Clear removes every child.
func (n *Node) Clear() *Node {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	return n
}

// Attr sets an attribute, replacing an existing value in place.
func (n *Node) Attr(name, value string) *Node {
	n.attrs = set(n.attrs, name, value)
	return n
}

// AttrNum sets a numeric attribute. NaN is written as "NaN".
func (n *Node) AttrNum(name string, v float64) *Node {
	return n.Attr(name, Num(v))
}

// GetAttr returns an attribute value.
func (n *Node) GetAttr(name string) (string, bool) {
	return get(n.attrs, name)
}

// AttrFloat parses a numeric attribute; missing or malformed values are
// NaN.
func (n *Node) AttrFloat(name string) float64 {
	s, ok := n.GetAttr(name)
	if !ok {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Style sets an inline style property.
func (n *Node) Style(name, value string) *Node {
	n.style = set(n.style, name, value)
	return n
}

// GetStyle returns an inline style property.
func (n *Node) GetStyle(name string) (string, bool) {
	return get(n.style, name)
}

// Class adds class names that are not already present.
func (n *Node) Class(names ...string) *Node {
	for _, name := range names {
		for _, f := range strings.Fields(name) {
			if !n.HasClass(f) {
				n.classes = append(n.classes, f)
			}
		}
	}
	return n
}

func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (n *Node) Classes() []string { return n.classes }

// Datum binds d to the element.
func (n *Node) Datum(d interface{}) *Node {
	n.Data = d
	return n
}

// Num formats v the way a browser prints a number in an attribute.
func Num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func set(list []attr, name, value string) []attr {
	for i := range list {
		if list[i].name == name {
			list[i].value = value
			return list
		}
	}
	return append(list, attr{name, value})
}

func get(list []attr, name string) (string, bool) {
	for _, a := range list {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}
