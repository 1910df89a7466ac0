package sprig

// syntheticEvent is a single injected input event. Pointer coordinates are
// host window units, the same units SetPointerState takes, so scripts can be
// written against screenshots.
type syntheticEvent struct {
	x, y   float64
	down   bool
	button MouseButton
	key    KeyCode
	isKey  bool
}

// InjectPress queues a left-button press at the given host coordinates. The
// event is applied at the start of the next frame.
func (c *Context) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y,
		down:   true,
		button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the left button held. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (c *Context) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y,
		down:   true,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a left-button release at the given host coordinates.
func (c *Context) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y,
		down:   false,
		button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (c *Context) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The sequence consumes frames frames, at least 2.
func (c *Context) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by a release. Consumes two frames.
func (c *Context) InjectKey(k KeyCode) {
	c.injectQueue = append(c.injectQueue,
		syntheticEvent{key: k, isKey: true, down: true},
		syntheticEvent{key: k, isKey: true, down: false},
	)
}

// PendingInjections returns the number of queued synthetic events.
func (c *Context) PendingInjections() int { return len(c.injectQueue) }

// processInjectedInput pops one queued event and feeds it through the same
// path as host input. Reports whether an event was consumed.
func (c *Context) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if ev.isKey {
		c.input.setKey(ev.key, ev.down)
		return true
	}
	c.input.setPointer(ev.button, ev.x, ev.y, ev.down, false)
	return true
}
