package sprig

// dragState is the single drag operation a Context can carry.
type dragState struct {
	dragging bool
	source   ID
	target   ID
	payload  any
	start    Vec2
}

// dragPreviewKey names the floating node that follows the pointer.
var dragPreviewKey = Named("##drag-preview")

// DragDropSource makes the last queried interactable a drag source. The drag
// starts when that interactable is active, was hovered last frame and the
// pointer moves further than Config.DragDeadZone from the press position
// with the primary button held. Once started the drag stays latched to the
// source until release or CancelDrag, even while the pointer rests.
//
// While dragging, preview (if non-nil) is built inside a screen-positioned
// node at Config.DragZIndex that follows the pointer and is clamped to the
// screen. payload replaces the drag payload on every call.
func (c *Context) DragDropSource(payload any, preview func(n *Node)) bool {
	id := c.lastItem
	if id == 0 {
		return false
	}
	d := &c.drag
	if d.dragging {
		if d.source != id {
			return false
		}
	} else {
		in := c.input
		if c.active != id || c.prevHovered != id || !in.PointerDown(MouseButtonLeft) || !in.PointerMoved() {
			return false
		}
		start := in.PressPos(MouseButtonLeft)
		dz := c.cfg.DragDeadZone
		if in.PointerPos().Sub(start).LenSq() <= dz*dz {
			return false
		}
		d.dragging = true
		d.source = id
		d.start = start
		c.emit(EventDragStart, id, payload)
	}
	d.payload = payload
	c.dragPreview(preview)
	return true
}

// dragPreview builds the floating node at the pointer.
func (c *Context) dragPreview(body func(n *Node)) {
	if body == nil {
		return
	}
	pos := c.input.PointerPos()
	id := c.GetID(dragPreviewKey)
	var size Vec2
	if r, ok := c.CachedRect(id); ok {
		size = r.Size()
	}
	x := clamp(pos.X, c.screen.X, c.screen.X+c.screen.Width-size.X)
	y := clamp(pos.Y, c.screen.Y, c.screen.Y+c.screen.Height-size.Y)
	c.Node(dragPreviewKey, Layout{
		Position: PositionScreen,
		Offset:   Vec2{x - c.screen.X, y - c.screen.Y},
		Z:        Z(c.cfg.DragZIndex),
	}, body)
}

// clamp limits v to [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// DragDropTarget reports whether a drag is in progress and the last queried
// interactable, which is not the drag source, is hovered.
func (c *Context) DragDropTarget() bool {
	d := &c.drag
	if !d.dragging || c.lastItem == 0 || !c.lastHovered || c.lastItem == d.source {
		return false
	}
	d.target = c.lastItem
	return true
}

// DragDropAccept returns the payload when the primary button is released
// over the target queried by DragDropTarget. It succeeds exactly once per
// drag; the drag is over when it returns true.
func (c *Context) DragDropAccept() (any, bool) {
	d := &c.drag
	if !d.dragging || d.target == 0 || d.target != c.lastItem {
		return nil, false
	}
	if !c.input.PointerReleased(MouseButtonLeft) {
		return nil, false
	}
	payload := d.payload
	target := d.target
	*d = dragState{}
	c.emit(EventDrop, target, payload)
	return payload, true
}

// CancelDrag abandons the drag in progress, if any.
func (c *Context) CancelDrag() {
	d := &c.drag
	if !d.dragging {
		return
	}
	source, payload := d.source, d.payload
	*d = dragState{}
	c.emit(EventDragCancel, source, payload)
}

// Dragging reports whether a drag is in progress.
func (c *Context) Dragging() bool { return c.drag.dragging }

// DragSource returns the source identity of the drag in progress.
func (c *Context) DragSource() ID { return c.drag.source }

// DragPayload returns the payload of the drag in progress.
func (c *Context) DragPayload() (any, bool) {
	if !c.drag.dragging {
		return nil, false
	}
	return c.drag.payload, true
}

// settleDrag cancels a drag whose button went up without an accepting
// target.
func (c *Context) settleDrag() {
	in := c.input
	if c.drag.dragging && (in.PointerReleased(MouseButtonLeft) || !in.PointerDown(MouseButtonLeft)) {
		c.CancelDrag()
	}
	c.drag.target = 0
}
