package dom

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the descendant elements (n excluded) matching pred, in
// document order.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(e *Node) bool {
			if e.Tag != "" && pred(e) {
				out = append(out, e)
			}
			return true
		})
	}
	return out
}

// SelectAll returns descendants carrying class.
func (n *Node) SelectAll(class string) []*Node {
	return n.Find(func(e *Node) bool { return e.HasClass(class) })
}

// SelectTag returns descendants with the given tag.
func (n *Node) SelectTag(tag string) []*Node {
	return n.Find(func(e *Node) bool { return e.Tag == tag })
}

// Select returns the first descendant with the given tag, or nil.
func (n *Node) Select(tag string) *Node {
	if all := n.SelectTag(tag); len(all) > 0 {
		return all[0]
	}
	return nil
}

// ByID returns the first descendant with the given id, or nil.
func (n *Node) ByID(id string) *Node {
	all := n.Find(func(e *Node) bool {
		v, ok := e.GetAttr("id")
		return ok && v == id
	})
	if len(all) > 0 {
		return all[0]
	}
	return nil
}
