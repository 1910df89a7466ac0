package sprig

import "testing"

// dragScene is a source at (0,0)-(50,50) and a target at (0,60)-(50,110).
type dragScene struct {
	sourcing  bool
	previewed bool
	targeted  bool
	accepted  int
	payload   any
	previewID ID
	srcID     ID
	dstID     ID
}

func (s *dragScene) build(c *Context) {
	s.sourcing, s.previewed, s.targeted = false, false, false
	c.Node(Named("src"), Layout{Width: Px(50), Height: Px(50)}, func(n *Node) {
		s.srcID = n.ID()
		n.Interact(0)
		s.sourcing = c.DragDropSource("card-7", func(p *Node) {
			s.previewed = true
			s.previewID = p.ID()
			c.Node(Named("ghost"), Layout{Width: Px(30), Height: Px(30)}, func(g *Node) {
				g.Draw().FillRect(g.Rect(), red)
			})
		})
	})
	c.Node(Named("gap"), Layout{Height: Px(10)}, nil)
	c.Node(Named("dst"), Layout{Width: Px(50), Height: Px(50)}, func(n *Node) {
		s.dstID = n.ID()
		n.Interact(0)
		if c.DragDropTarget() {
			s.targeted = true
			if v, ok := c.DragDropAccept(); ok {
				s.accepted++
				s.payload = v
			}
		}
	})
}

func TestDragDropRoundTrip(t *testing.T) {
	h := newHarness(t)
	s := &dragScene{}
	var events []EventType
	h.ctx.OnInteraction(func(ev InteractionEvent) {
		switch ev.Type {
		case EventDragStart, EventDrop, EventDragCancel:
			events = append(events, ev.Type)
		}
	})

	h.move(10, 10)
	h.frame(s.build)
	h.press(10, 10)
	h.frame(s.build)
	if s.sourcing || h.ctx.Dragging() {
		t.Fatal("drag should not start without movement")
	}

	h.ctx.SetPointerState(MouseButtonLeft, 20, 20, true, true)
	h.frame(s.build)
	if !s.sourcing || !s.previewed || !h.ctx.Dragging() {
		t.Fatalf("drag did not start: sourcing=%v previewed=%v", s.sourcing, s.previewed)
	}
	if h.ctx.DragSource() != s.srcID {
		t.Errorf("DragSource = %d, want src", h.ctx.DragSource())
	}

	// The drag stays latched while the pointer rests and leaves the source.
	h.frame(s.build)
	if !s.sourcing {
		t.Error("drag should stay latched while the pointer rests")
	}
	h.ctx.SetPointerState(MouseButtonLeft, 25, 80, true, true)
	h.frame(s.build)
	if !s.sourcing || !s.targeted || s.accepted != 0 {
		t.Fatalf("over target: sourcing=%v targeted=%v accepted=%d", s.sourcing, s.targeted, s.accepted)
	}

	h.release(25, 80)
	h.frame(s.build)
	if s.accepted != 1 || s.payload != "card-7" {
		t.Fatalf("accepted=%d payload=%v, want one accept of card-7", s.accepted, s.payload)
	}
	if h.ctx.Dragging() {
		t.Error("drag should be idle after accept")
	}

	h.frame(s.build)
	h.frame(s.build)
	if s.accepted != 1 {
		t.Errorf("accept fired %d times, want exactly once", s.accepted)
	}

	want := []EventType{EventDragStart, EventDrop}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestDragReleasedOutsideTargetCancels(t *testing.T) {
	h := newHarness(t)
	s := &dragScene{}
	var cancelled int
	h.ctx.OnInteraction(func(ev InteractionEvent) {
		if ev.Type == EventDragCancel {
			cancelled++
		}
	})

	h.move(10, 10)
	h.frame(s.build)
	h.press(10, 10)
	h.frame(s.build)
	h.ctx.SetPointerState(MouseButtonLeft, 300, 200, true, true)
	h.frame(s.build)
	if !h.ctx.Dragging() {
		t.Fatal("drag should have started")
	}
	h.release(300, 200)
	h.frame(s.build)

	if h.ctx.Dragging() || s.accepted != 0 || cancelled != 1 {
		t.Errorf("dragging=%v accepted=%d cancelled=%d", h.ctx.Dragging(), s.accepted, cancelled)
	}
}

func TestSourceIsNotItsOwnTarget(t *testing.T) {
	h := newHarness(t)
	var selfTarget bool
	build := func(c *Context) {
		c.Node(Named("src"), Layout{Width: Px(50), Height: Px(50)}, func(n *Node) {
			n.Interact(0)
			c.DragDropSource(1, nil)
			if c.DragDropTarget() {
				selfTarget = true
			}
		})
	}
	h.move(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)
	h.ctx.SetPointerState(MouseButtonLeft, 12, 12, true, true)
	h.frame(build)
	h.frame(build)
	if !h.ctx.Dragging() {
		t.Fatal("drag should have started")
	}
	if selfTarget {
		t.Error("the drag source must not report itself as a target")
	}
}

func TestCancelDrag(t *testing.T) {
	h := newHarness(t)
	s := &dragScene{}
	h.move(10, 10)
	h.frame(s.build)
	h.press(10, 10)
	h.frame(s.build)
	h.ctx.SetPointerState(MouseButtonLeft, 20, 20, true, true)
	h.frame(s.build)

	h.ctx.CancelDrag()
	if h.ctx.Dragging() {
		t.Error("CancelDrag should end the drag")
	}
	if _, ok := h.ctx.DragPayload(); ok {
		t.Error("no payload expected after cancel")
	}
	h.release(20, 20)
	h.frame(s.build)
	if s.accepted != 0 {
		t.Error("a cancelled drag must not be accepted")
	}
}

func TestDragPreviewClampedToScreen(t *testing.T) {
	h := newHarness(t)
	h.screen = Rect{Width: 200, Height: 200}
	s := &dragScene{}

	h.move(10, 10)
	h.frame(s.build)
	h.press(10, 10)
	h.frame(s.build)
	h.ctx.SetPointerState(MouseButtonLeft, 195, 190, true, true)
	h.frame(s.build) // preview size unknown yet
	h.frame(s.build) // clamped with the resolved size

	r, ok := h.ctx.CachedRect(s.previewID)
	if !ok {
		t.Fatal("no cached rect for the preview node")
	}
	if want := (Rect{X: 170, Y: 170, Width: 30, Height: 30}); r != want {
		t.Errorf("preview rect = %+v, want %+v", r, want)
	}

	var top *Bucket
	for _, b := range h.data.Buckets {
		top = b
	}
	if top == nil || top.Z != defaultDragZIndex {
		t.Errorf("preview should draw in the drag z-index bucket, got %+v", top)
	}
}
