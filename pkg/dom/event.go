package dom

// Pointer event types.
const (
	PointerEnter = "mouseover"
	PointerMove  = "mousemove"
	PointerLeave = "mouseleave"
)

// Event is a pointer event delivered to one element.
type Event struct {
	Type   string
	PageX  float64
	PageY  float64
	Target *Node
}

// Handler reacts to an event on the element it is registered on.
type Handler func(ev Event)

// On registers h for events of type typ.
func (n *Node) On(typ string, h Handler) *Node {
	if n.handlers == nil {
		n.handlers = make(map[string][]Handler)
	}
	n.handlers[typ] = append(n.handlers[typ], h)
	return n
}

// Listens reports whether any handler is registered for typ.
func (n *Node) Listens(typ string) bool {
	return len(n.handlers[typ]) > 0
}

// Events lists the event types with handlers, in a stable order.
func (n *Node) Events() []string {
	var out []string
	for _, typ := range []string{PointerEnter, PointerMove, PointerLeave} {
		if n.Listens(typ) {
			out = append(out, typ)
		}
	}
	return out
}

// Dispatch runs the handlers registered on n for ev.Type. Events do not
// bubble. It reports whether any handler ran.
func (n *Node) Dispatch(ev Event) bool {
	ev.Target = n
	hs := n.handlers[ev.Type]
	for _, h := range hs {
		h(ev)
	}
	return len(hs) > 0
}
