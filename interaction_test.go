package sprig

import "testing"

func TestZLayerOrdering(t *testing.T) {
	tests := []struct {
		a, b ZLayer
		want bool
	}{
		{ZLayer{Z: 1, Ord: 0}, ZLayer{Z: 0, Ord: 999}, true},
		{ZLayer{Z: 0, Ord: 2}, ZLayer{Z: 0, Ord: 1}, true},
		{ZLayer{Z: 0, Ord: 1}, ZLayer{Z: 0, Ord: 1}, false},
		{ZLayer{Z: -1, Ord: 5000}, ZLayer{Z: 0, Ord: 0}, false},
		// Ordinals past 1000 keep their order instead of spilling into Z+1.
		{ZLayer{Z: 0, Ord: 1500}, ZLayer{Z: 1, Ord: 0}, false},
		{ZLayer{Z: 0, Ord: 1500}, ZLayer{Z: 0, Ord: 1499}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Above(tt.b); got != tt.want {
			t.Errorf("%+v.Above(%+v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if got := (ZLayer{Z: 2, Ord: 5}).Float(); got != 2.005 {
		t.Errorf("Float = %v, want 2.005", got)
	}
}

func TestInteractableLayersFollowDeclaration(t *testing.T) {
	h := newHarness(t)
	h.frame(func(c *Context) {
		box(c, Named("a"), Layout{Z: Z(1)})
		box(c, Named("b"), Layout{})
		box(c, Named("c"), Layout{Z: Z(1)})
		box(c, Named("d"), Layout{})
	})
	items := h.ctx.prev.items
	if len(items) != 4 {
		t.Fatalf("interactables = %d, want 4", len(items))
	}
	// a < c within z 1, b < d within z 0, anything in z 1 above z 0.
	if !items[2].Layer.Above(items[0].Layer) {
		t.Error("later declaration should be above earlier one in the same z")
	}
	if !items[3].Layer.Above(items[1].Layer) {
		t.Error("later declaration should be above earlier one in z 0")
	}
	if !items[0].Layer.Above(items[3].Layer) {
		t.Error("z 1 should be above every z 0 layer")
	}
}

func TestHoverUsesPreviousFrame(t *testing.T) {
	h := newHarness(t)
	var hovered []bool
	build := func(c *Context) {
		_, res := box(c, Named("btn"), Layout{Width: Px(50), Height: Px(20)})
		hovered = append(hovered, res.Hovered)
	}
	h.move(10, 10)
	h.frame(build)
	h.frame(build)
	h.move(100, 100)
	h.frame(build)

	want := []bool{false, true, false}
	for i := range want {
		if hovered[i] != want[i] {
			t.Errorf("frame %d hovered = %v, want %v", i+1, hovered[i], want[i])
		}
	}
}

func TestHoverOcclusion(t *testing.T) {
	h := newHarness(t)
	var under, over ID
	var hoverUnder, hoverOver bool
	build := func(c *Context) {
		var res Interaction
		under, res = box(c, Named("under"), Layout{Position: PositionAbsolute, Width: Px(100), Height: Px(100)})
		hoverUnder = res.Hovered
		over, res = box(c, Named("over"), Layout{Position: PositionAbsolute, Offset: Vec2{X: 50, Y: 50}, Width: Px(100), Height: Px(100), Z: Z(1)})
		hoverOver = res.Hovered
	}
	h.frame(build)

	h.move(75, 75)
	h.frame(build)
	if hoverUnder || !hoverOver {
		t.Errorf("overlap: under=%v over=%v, want only over hovered", hoverUnder, hoverOver)
	}
	if h.ctx.Hovered() != over {
		t.Errorf("Hovered = %d, want over", h.ctx.Hovered())
	}
	if !h.ctx.IsBlockedByInteractable(under) || h.ctx.IsBlockedByInteractable(over) {
		t.Error("IsBlockedByInteractable should report under as blocked and over as free")
	}

	h.move(25, 25)
	h.frame(build)
	if !hoverUnder || hoverOver {
		t.Errorf("outside overlap: under=%v over=%v, want only under hovered", hoverUnder, hoverOver)
	}
	if h.ctx.Hovered() != under {
		t.Errorf("Hovered = %d, want under", h.ctx.Hovered())
	}
}

func TestLaterSiblingWinsWithinZ(t *testing.T) {
	h := newHarness(t)
	var first, second bool
	build := func(c *Context) {
		_, r1 := box(c, Named("first"), Layout{Position: PositionAbsolute, Width: Px(50), Height: Px(50)})
		_, r2 := box(c, Named("second"), Layout{Position: PositionAbsolute, Width: Px(50), Height: Px(50)})
		first, second = r1.Hovered, r2.Hovered
	}
	h.move(10, 10)
	h.frame(build)
	h.frame(build)
	if first || !second {
		t.Errorf("first=%v second=%v, want later sibling on top", first, second)
	}
}

func TestBlockerOccludesLowerLayers(t *testing.T) {
	h := newHarness(t)
	var hovered bool
	build := func(c *Context) {
		_, res := box(c, Named("btn"), Layout{Width: Px(50), Height: Px(50)})
		hovered = res.Hovered
		c.Node(Named("modal"), Layout{Position: PositionScreen, Z: Z(10)}, func(n *Node) {
			c.AddBlocker(Rect{X: 0, Y: 0, Width: 30, Height: 30})
		})
	}
	h.move(10, 10)
	h.frame(build)
	h.frame(build)
	if hovered {
		t.Error("blocker above should occlude the button")
	}

	h.move(40, 40)
	h.frame(build)
	if !hovered {
		t.Error("button should be hovered outside the blocker")
	}
}

func TestClipLimitsHover(t *testing.T) {
	h := newHarness(t)
	var hovered bool
	build := func(c *Context) {
		c.Node(Named("view"), Layout{Width: Px(50), Height: Px(50), Clip: ClipOuter}, func(n *Node) {
			_, res := box(c, Named("wide"), Layout{Width: Px(200), Height: Px(20)})
			hovered = res.Hovered
		})
	}
	h.move(100, 10)
	h.frame(build)
	h.frame(build)
	if hovered {
		t.Error("part of the interactable outside the clip should not hover")
	}
	h.move(20, 10)
	h.frame(build)
	if !hovered {
		t.Error("visible part of the interactable should hover")
	}
}

func TestAtMostOneActive(t *testing.T) {
	h := newHarness(t)
	h.frame(nil)
	a, b := ID(1), ID(2)
	if !h.ctx.SetActive(a) {
		t.Fatal("SetActive(a) rejected with nothing active")
	}
	if h.ctx.SetActive(b) {
		t.Error("SetActive(b) accepted while a is active")
	}
	if h.ctx.Active() != a {
		t.Errorf("Active = %d, want %d", h.ctx.Active(), a)
	}

	// Button up: the end of the frame clears active.
	h.frame(nil)
	if h.ctx.Active() != 0 {
		t.Errorf("Active = %d after frame with button up, want 0", h.ctx.Active())
	}
	if !h.ctx.SetActive(b) {
		t.Error("SetActive(b) rejected after a was released")
	}
}

func TestPressActivatesTopmostOnly(t *testing.T) {
	h := newHarness(t)
	var actives []bool
	build := func(c *Context) {
		actives = actives[:0]
		for i := 0; i < 3; i++ {
			_, res := box(c, Idx(i), Layout{Position: PositionAbsolute, Width: Px(50), Height: Px(50)})
			actives = append(actives, res.Active)
		}
	}
	h.move(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)

	want := []bool{false, false, true}
	for i := range want {
		if actives[i] != want[i] {
			t.Errorf("item %d active = %v, want %v", i, actives[i], want[i])
		}
	}
}

func TestClickAndFocus(t *testing.T) {
	h := newHarness(t)
	var btnID, plainID ID
	var btn, plain Interaction
	build := func(c *Context) {
		c.Node(Named("btn"), Layout{Width: Px(50), Height: Px(20)}, func(n *Node) {
			btnID = n.ID()
			btn = n.Interact(InteractFocusable)
		})
		plainID, plain = box(c, Named("plain"), Layout{Width: Px(50), Height: Px(20)})
	}
	h.move(10, 10)
	h.frame(build)

	h.press(10, 10)
	h.frame(build)
	if !btn.Pressed || !btn.Active {
		t.Errorf("press frame: %+v", btn)
	}
	h.release(10, 10)
	h.frame(build)
	if !btn.Released || !btn.Clicked {
		t.Errorf("release frame: %+v", btn)
	}
	if h.ctx.Focused() != btnID {
		t.Errorf("Focused = %d, want btn", h.ctx.Focused())
	}
	if h.ctx.Active() != 0 {
		t.Error("release should clear active")
	}

	// Clicking a non-focusable item leaves focus alone.
	h.press(10, 30)
	h.frame(build)
	h.release(10, 30)
	h.frame(build)
	if !plain.Clicked {
		t.Errorf("plain click not reported: %+v", plain)
	}
	if h.ctx.Focused() != btnID {
		t.Errorf("Focused = %d after clicking %d, want btn", h.ctx.Focused(), plainID)
	}

	h.ctx.ClearFocus()
	if h.ctx.Focused() != 0 {
		t.Error("ClearFocus should empty focus")
	}
}

func TestReleaseOffTargetClearsActiveWithoutClick(t *testing.T) {
	h := newHarness(t)
	var res Interaction
	build := func(c *Context) {
		_, res = box(c, Named("btn"), Layout{Width: Px(50), Height: Px(20)})
	}
	h.move(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)
	h.move(200, 200)
	h.frame(build)
	if !res.Active || res.Hovered {
		t.Errorf("dragged off: %+v, want active and not hovered", res)
	}
	h.release(200, 200)
	h.frame(build)
	if !res.Released || res.Clicked {
		t.Errorf("release off target: %+v, want released without click", res)
	}
	if h.ctx.Active() != 0 {
		t.Error("release anywhere should clear active")
	}
}

func TestInteractionEvents(t *testing.T) {
	h := newHarness(t)
	var got []EventType
	handle := h.ctx.OnInteraction(func(ev InteractionEvent) { got = append(got, ev.Type) })
	build := func(c *Context) {
		c.Node(Named("btn"), Layout{Width: Px(50), Height: Px(20)}, func(n *Node) {
			n.Interact(InteractFocusable)
		})
	}
	h.frame(build)
	h.move(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)
	h.release(10, 10)
	h.frame(build)
	h.move(300, 200)
	h.frame(build)

	want := []EventType{EventHoverEnter, EventActivate, EventClick, EventFocus, EventHoverLeave}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	handle.Remove()
	h.move(10, 10)
	h.frame(build)
	if len(got) != len(want) {
		t.Error("removed handler still receives events")
	}
}

func TestDoubleClickedInteraction(t *testing.T) {
	h := newHarness(t)
	var res Interaction
	var doubles int
	build := func(c *Context) {
		_, res = box(c, Named("btn"), Layout{Width: Px(50), Height: Px(20)})
		if res.DoubleClicked {
			doubles++
		}
	}
	h.move(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)
	h.release(10, 10)
	h.frame(build)
	h.press(10, 10)
	h.frame(build)
	if doubles != 1 {
		t.Errorf("double clicks = %d, want 1", doubles)
	}
}
