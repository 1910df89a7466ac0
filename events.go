package sprig

// InteractionEvent describes one interaction transition observed during a
// frame.
type InteractionEvent struct {
	Type    EventType
	ID      ID
	Pos     Vec2 // pointer position in layout units
	Payload any  // drag payload for EventDragStart, EventDrop and EventDragCancel
	Frame   uint64
}

// EventSink receives every interaction event as it happens. The ecs package
// provides a sink that republishes events into a Donburi world.
type EventSink interface {
	EmitEvent(InteractionEvent)
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerKind uint8

const (
	handlerInteraction handlerKind = iota
	handlerPointerPos
	handlerCursor
	handlerScreenshot
)

type handlerRegistry struct {
	interaction []handler[func(InteractionEvent)]
	pointerPos  []handler[func(Vec2)]
	cursor      []handler[func(bool)]
	screenshot  []handler[func(string)]
	nextID      uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerInteraction:
		h.reg.interaction = removeHandler(h.reg.interaction, h.id)
	case handlerPointerPos:
		h.reg.pointerPos = removeHandler(h.reg.pointerPos, h.id)
	case handlerCursor:
		h.reg.cursor = removeHandler(h.reg.cursor, h.id)
	case handlerScreenshot:
		h.reg.screenshot = removeHandler(h.reg.screenshot, h.id)
	}
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Registration ---

// OnInteraction registers a callback for every interaction event.
func (c *Context) OnInteraction(fn func(InteractionEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.interaction = append(c.handlers.interaction, handler[func(InteractionEvent)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, kind: handlerInteraction}
}

// OnPointerPosSet registers the host callback that warps the OS pointer. It
// receives host window units.
func (c *Context) OnPointerPosSet(fn func(Vec2)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pointerPos = append(c.handlers.pointerPos, handler[func(Vec2)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, kind: handlerPointerPos}
}

// OnCursorVisibilitySet registers the host callback that shows or hides the
// OS cursor.
func (c *Context) OnCursorVisibilitySet(fn func(bool)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.cursor = append(c.handlers.cursor, handler[func(bool)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, kind: handlerCursor}
}

// OnScreenshot registers the host callback that captures the rendered frame
// under a label. Screenshot and the "screenshot" test step trigger it.
func (c *Context) OnScreenshot(fn func(label string)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.screenshot = append(c.handlers.screenshot, handler[func(string)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, kind: handlerScreenshot}
}

// Screenshot asks the host to capture the frame being built under label.
// Without a registered host callback the request is logged and dropped.
func (c *Context) Screenshot(label string) {
	if len(c.handlers.screenshot) == 0 {
		c.log.Debug("screenshot requested with no host callback", "label", label)
		return
	}
	for _, h := range c.handlers.screenshot {
		h.fn(label)
	}
}

// SetEventSink installs sink as the receiver of interaction events. Pass nil
// to remove it.
func (c *Context) SetEventSink(sink EventSink) { c.sink = sink }

// emit delivers an event to the sink and the registered callbacks.
func (c *Context) emit(t EventType, id ID, payload any) {
	if c.sink == nil && len(c.handlers.interaction) == 0 {
		return
	}
	ev := InteractionEvent{
		Type:    t,
		ID:      id,
		Pos:     c.input.PointerPos(),
		Payload: payload,
		Frame:   c.frame,
	}
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
	for _, h := range c.handlers.interaction {
		h.fn(ev)
	}
}
