package sprig

// ZLayer orders interactables and blockers. Layers compare by z-index first
// and by declaration ordinal within the z-index second, so any number of
// interactables can share one z-index without losing order.
type ZLayer struct {
	Z   int
	Ord int
}

// Above reports whether l is stacked above o.
func (l ZLayer) Above(o ZLayer) bool {
	if l.Z != o.Z {
		return l.Z > o.Z
	}
	return l.Ord > o.Ord
}

// Float returns the conventional fractional encoding Z + Ord/1000. It is for
// display only; ordinals past 999 collide in this form but not in Above.
func (l ZLayer) Float() float64 {
	return float64(l.Z) + float64(l.Ord)/1000
}

// Interactable is a hit-testable rect tied to a node identity.
type Interactable struct {
	ID      ID
	Node    Handle // zero for rects not registered through a node
	Rect    Rect
	Clip    Rect
	Layer   ZLayer
	Blocker bool
}

// hit reports whether p falls in the visible part of the interactable.
func (it *Interactable) hit(p Vec2) bool {
	if it.Blocker {
		return it.Rect.ContainsPoint(p)
	}
	return it.Clip.ContainsPoint(p) && it.Rect.ContainsPoint(p)
}

// interactTable is one frame's interactables and blockers, in declaration
// order.
type interactTable struct {
	items    []Interactable
	byID     map[ID]int
	ordinals map[int]int
}

func newInteractTable() *interactTable {
	return &interactTable{byID: make(map[ID]int), ordinals: make(map[int]int)}
}

func (t *interactTable) reset() {
	t.items = t.items[:0]
	clear(t.byID)
	clear(t.ordinals)
}

func (t *interactTable) nextLayer(z int) ZLayer {
	ord := t.ordinals[z]
	t.ordinals[z] = ord + 1
	return ZLayer{Z: z, Ord: ord}
}

func (t *interactTable) add(it Interactable) {
	if !it.Blocker {
		t.byID[it.ID] = len(t.items)
	}
	t.items = append(t.items, it)
}

func (t *interactTable) lookup(id ID) (*Interactable, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.items[i], true
}

// InteractFlags tune how Interact treats an interactable.
type InteractFlags uint8

const (
	// InteractFocusable makes a click take focus.
	InteractFocusable InteractFlags = 1 << iota
)

// Interaction is the result of evaluating one interactable for this frame.
type Interaction struct {
	ID            ID
	Hovered       bool
	Active        bool
	Focused       bool
	Pressed       bool // became active this frame
	Released      bool // was active and the primary button went up
	Clicked       bool // released while still hovered
	DoubleClicked bool
	HoverEntered  bool
	HoverLeft     bool
}

// Interact registers the node's rect as an interactable and evaluates its
// hover/active/focus state against last frame's committed geometry.
func (n *Node) Interact(flags InteractFlags) Interaction {
	return n.ctx.interact(n.id, n.handle, n.rect, flags)
}

// Interactable registers rect under id and evaluates it like Node.Interact.
func (c *Context) Interactable(id ID, rect Rect, flags InteractFlags) Interaction {
	return c.interact(id, Handle{}, rect, flags)
}

func (c *Context) interact(id ID, h Handle, rect Rect, flags InteractFlags) Interaction {
	c.cur.add(Interactable{
		ID:    id,
		Node:  h,
		Rect:  rect,
		Clip:  c.draw.ClipRect(),
		Layer: c.cur.nextLayer(c.draw.ZIndex()),
	})

	in := c.input
	pos := in.PointerPos()
	res := Interaction{ID: id}

	if it, ok := c.prev.lookup(id); ok && it.hit(pos) && !c.blockedAt(it.Layer, id, pos) {
		res.Hovered = true
		c.hovered = id
	}

	if res.Hovered && in.IsPointerClick(MouseButtonLeft) && c.active == 0 {
		c.active = id
		res.Pressed = true
		c.emit(EventActivate, id, nil)
	}
	if c.active == id && in.PointerReleased(MouseButtonLeft) {
		res.Released = true
		if res.Hovered {
			res.Clicked = true
			c.emit(EventClick, id, nil)
			if flags&InteractFocusable != 0 {
				c.SetFocus(id)
			}
		}
	}
	res.DoubleClicked = res.Hovered && in.IsPointerDoubleClick(MouseButtonLeft)

	switch {
	case res.Hovered && c.prevHovered != id:
		res.HoverEntered = true
		c.emit(EventHoverEnter, id, nil)
	case !res.Hovered && c.prevHovered == id:
		res.HoverLeft = true
		c.emit(EventHoverLeave, id, nil)
	}

	res.Active = c.active == id
	res.Focused = c.focused == id
	c.lastItem = id
	c.lastHovered = res.Hovered
	return res
}

// blockedAt reports whether anything in last frame's table other than id
// sits above layer at p.
func (c *Context) blockedAt(layer ZLayer, id ID, p Vec2) bool {
	for i := range c.prev.items {
		it := &c.prev.items[i]
		if !it.Blocker && it.ID == id {
			continue
		}
		if it.Layer.Above(layer) && it.hit(p) {
			return true
		}
	}
	return false
}

// IsBlockedByInteractable reports whether the pointer position is covered,
// above id's layer, by another interactable or a blocker from last frame.
// Identities absent from last frame report true.
func (c *Context) IsBlockedByInteractable(id ID) bool {
	it, ok := c.prev.lookup(id)
	if !ok {
		return true
	}
	return c.blockedAt(it.Layer, id, c.input.PointerPos())
}

// AddBlocker registers r at the current z-layer as an occluder for every
// interactable below it, independent of their own stacking. Modal surfaces
// call this before declaring their own interactables.
func (c *Context) AddBlocker(r Rect) {
	c.cur.add(Interactable{
		Rect:    r,
		Clip:    c.draw.ClipRect(),
		Layer:   c.cur.nextLayer(c.draw.ZIndex()),
		Blocker: true,
	})
}

// Hovered returns the identity hovered so far this frame.
func (c *Context) Hovered() ID { return c.hovered }

// PrevHovered returns the identity hovered at the end of the last frame.
func (c *Context) PrevHovered() ID { return c.prevHovered }

// Active returns the active identity.
func (c *Context) Active() ID { return c.active }

// Focused returns the focused identity.
func (c *Context) Focused() ID { return c.focused }

// SetActive makes id active. The request is rejected (returns false) while
// another identity is active.
func (c *Context) SetActive(id ID) bool {
	if c.active != 0 && c.active != id {
		return false
	}
	if c.active != id {
		c.active = id
		c.emit(EventActivate, id, nil)
	}
	return true
}

// SetFocus moves focus to id.
func (c *Context) SetFocus(id ID) {
	if c.focused == id {
		return
	}
	if c.focused != 0 {
		c.emit(EventBlur, c.focused, nil)
	}
	c.focused = id
	if id != 0 {
		c.emit(EventFocus, id, nil)
	}
}

// ClearFocus removes focus.
func (c *Context) ClearFocus() { c.SetFocus(0) }

// Interactables returns this frame's interactables and blockers in
// declaration order. The returned slice MUST NOT be mutated by the caller.
func (c *Context) Interactables() []Interactable { return c.cur.items }

// settleInteraction applies the global end-of-frame rules.
func (c *Context) settleInteraction() {
	in := c.input
	if c.active != 0 && (in.PointerReleased(MouseButtonLeft) || !in.PointerDown(MouseButtonLeft)) {
		c.active = 0
	}
}

// commitInteraction swaps the interactable tables.
func (c *Context) commitInteraction() {
	c.prev, c.cur = c.cur, c.prev
	c.cur.reset()
}
