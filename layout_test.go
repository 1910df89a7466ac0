package sprig

import "testing"

// resolvedRects runs one frame of build and returns the resolved rect of
// every node recorded through rec.
func resolvedRects(t *testing.T, build func(c *Context, rec func(name string, n *Node))) map[string]Rect {
	t.Helper()
	h := newHarness(t)
	ids := map[string]ID{}
	rec := func(name string, n *Node) { ids[name] = n.ID() }
	h.frame(func(c *Context) { build(c, rec) })

	out := map[string]Rect{}
	for name, id := range ids {
		r, ok := h.ctx.CachedRect(id)
		if !ok {
			t.Fatalf("no cached rect for %s", name)
		}
		out[name] = r
	}
	return out
}

func TestLayoutVerticalFlow(t *testing.T) {
	rects := resolvedRects(t, func(c *Context, rec func(string, *Node)) {
		c.Node(Named("panel"), Layout{Width: Px(200), Height: Fit(), Padding: Uniform(10), Gap: 5}, func(n *Node) {
			rec("panel", n)
			c.Node(Named("a"), Layout{Width: Px(50), Height: Px(20)}, func(n *Node) { rec("a", n) })
			c.Node(Named("b"), Layout{Width: Fill(1), Height: Px(30)}, func(n *Node) { rec("b", n) })
		})
	})

	tests := []struct {
		name string
		want Rect
	}{
		{"panel", Rect{X: 0, Y: 0, Width: 200, Height: 75}},
		{"a", Rect{X: 10, Y: 10, Width: 50, Height: 20}},
		{"b", Rect{X: 10, Y: 35, Width: 180, Height: 30}},
	}
	for _, tt := range tests {
		if got := rects[tt.name]; !rectApprox(got, tt.want) {
			t.Errorf("%s = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLayoutHorizontalFillWeights(t *testing.T) {
	rects := resolvedRects(t, func(c *Context, rec func(string, *Node)) {
		c.Node(Named("row"), Layout{Width: Px(300), Height: Px(40), Direction: DirHorizontal}, func(n *Node) {
			c.Node(Named("one"), Layout{Width: Fill(1), Height: Pct(50)}, func(n *Node) { rec("one", n) })
			c.Node(Named("two"), Layout{Width: Fill(2), Height: Pct(50)}, func(n *Node) { rec("two", n) })
			c.Node(Named("fixed"), Layout{Width: Px(60), Height: Fill(1)}, func(n *Node) { rec("fixed", n) })
		})
	})

	tests := []struct {
		name string
		want Rect
	}{
		{"one", Rect{X: 0, Y: 0, Width: 80, Height: 20}},
		{"two", Rect{X: 80, Y: 0, Width: 160, Height: 20}},
		{"fixed", Rect{X: 240, Y: 0, Width: 60, Height: 40}},
	}
	for _, tt := range tests {
		if got := rects[tt.name]; !rectApprox(got, tt.want) {
			t.Errorf("%s = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLayoutFitWrapsChildren(t *testing.T) {
	rects := resolvedRects(t, func(c *Context, rec func(string, *Node)) {
		c.Node(Named("wrap"), Layout{Direction: DirHorizontal, Padding: Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}, Gap: 10}, func(n *Node) {
			rec("wrap", n)
			c.Node(Idx(0), Layout{Width: Px(30), Height: Px(10)}, nil)
			c.Node(Idx(1), Layout{Width: Px(20), Height: Px(25)}, nil)
		})
	})
	want := Rect{Width: 1 + 30 + 10 + 20 + 3, Height: 2 + 25 + 4}
	if got := rects["wrap"]; !rectApprox(got, want) {
		t.Errorf("wrap = %+v, want %+v", got, want)
	}
}

func TestLayoutAbsoluteAndScreenPositions(t *testing.T) {
	rects := resolvedRects(t, func(c *Context, rec func(string, *Node)) {
		c.Node(Named("spacer"), Layout{Width: Px(10), Height: Px(100)}, nil)
		c.Node(Named("parent"), Layout{Width: Px(200), Height: Px(100), Padding: Uniform(5)}, func(n *Node) {
			c.Node(Named("abs"), Layout{Position: PositionAbsolute, Offset: Vec2{X: 30, Y: 40}, Width: Px(10), Height: Px(10)}, func(n *Node) { rec("abs", n) })
			c.Node(Named("flow"), Layout{Width: Px(20), Height: Px(20)}, func(n *Node) { rec("flow", n) })
			c.Node(Named("scr"), Layout{Position: PositionScreen, Offset: Vec2{X: 7, Y: 8}, Width: Px(15), Height: Px(15)}, func(n *Node) { rec("scr", n) })
		})
	})

	tests := []struct {
		name string
		want Rect
	}{
		{"abs", Rect{X: 35, Y: 145, Width: 10, Height: 10}},
		{"flow", Rect{X: 5, Y: 105, Width: 20, Height: 20}},
		{"scr", Rect{X: 7, Y: 8, Width: 15, Height: 15}},
	}
	for _, tt := range tests {
		if got := rects[tt.name]; !rectApprox(got, tt.want) {
			t.Errorf("%s = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLayoutScrollAndContentRect(t *testing.T) {
	h := newHarness(t)
	var view *Node
	var first ID
	build := func(c *Context) {
		view = c.Node(Named("view"), Layout{Width: Px(100), Height: Px(50), Scroll: Vec2{Y: 30}, Clip: ClipInner}, func(n *Node) {
			for i := 0; i < 3; i++ {
				c.Node(Idx(i), Layout{Width: Px(100), Height: Px(40)}, func(n *Node) {
					if i == 0 {
						first = n.ID()
					}
				})
			}
		})
	}
	h.frame(build)
	h.frame(build)

	if got := view.ContentRect(); !approx(got.Height, 120) || !approx(got.Width, 100) {
		t.Errorf("ContentRect = %+v, want 100x120", got)
	}
	if got := view.ScrollRange(); !approx(got.Y, 70) || !approx(got.X, 0) {
		t.Errorf("ScrollRange = %+v, want (0, 70)", got)
	}
	if r, _ := h.ctx.CachedRect(first); !approx(r.Y, -30) {
		t.Errorf("first child Y = %v, want -30", r.Y)
	}
}

func TestGatherSeesPreviousRect(t *testing.T) {
	h := newHarness(t)
	var rects []Rect
	var fresh []bool
	build := func(c *Context) {
		c.Node(Named("n"), Layout{Width: Px(40), Height: Px(30)}, func(n *Node) {
			rects = append(rects, n.Rect())
			fresh = append(fresh, n.IsNew())
		})
	}
	h.frame(build)
	h.frame(build)

	if rects[0] != (Rect{}) || !fresh[0] {
		t.Errorf("frame 1: rect %+v new %v, want zero rect and new", rects[0], fresh[0])
	}
	if want := (Rect{Width: 40, Height: 30}); rects[1] != want || fresh[1] {
		t.Errorf("frame 2: rect %+v new %v, want %+v and cached", rects[1], fresh[1], want)
	}
}

func TestResolveIdempotent(t *testing.T) {
	h := newHarness(t)
	h.frame(func(c *Context) {
		c.Node(Named("panel"), Layout{Width: Pct(50), Height: Fit(), Padding: Uniform(3), Gap: 2}, func(n *Node) {
			for i := 0; i < 4; i++ {
				c.Node(Idx(i), Layout{Width: Fill(float64(i + 1)), Height: Px(12), Direction: DirHorizontal}, func(n *Node) {
					c.Node(Named("abs"), Layout{Position: PositionAbsolute, Offset: Vec2{X: 3, Y: 1}, Width: Px(4), Height: Px(4)}, nil)
				})
			}
		})
	})

	snapshot := func() map[ID]nodeCache {
		out := map[ID]nodeCache{}
		for id, e := range h.ctx.cache {
			out[id] = *e
		}
		return out
	}
	first := snapshot()
	h.ctx.resolve()
	second := snapshot()

	if len(first) != len(second) {
		t.Fatalf("cache size changed: %d -> %d", len(first), len(second))
	}
	for id, a := range first {
		b := second[id]
		if a.rect != b.rect || a.content != b.content {
			t.Errorf("id %d: %+v -> %+v", id, a, b)
		}
	}
}

func TestCacheSweepsVanishedNodes(t *testing.T) {
	h := newHarness(t)
	var gone ID
	h.frame(func(c *Context) {
		gone, _ = box(c, Named("temp"), Layout{Width: Px(10), Height: Px(10)})
	})
	if _, ok := h.ctx.CachedRect(gone); !ok {
		t.Fatal("expected cached rect after first frame")
	}
	h.frame(nil)
	if _, ok := h.ctx.CachedRect(gone); ok {
		t.Error("cache entry should be swept once the node stops appearing")
	}
}
