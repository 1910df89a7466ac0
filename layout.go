package sprig

import "time"

// SizeKind selects how one axis of a node is sized during resolve.
type SizeKind uint8

const (
	SizeFit     SizeKind = iota // wrap children plus padding
	SizeFixed                   // Value layout units
	SizePercent                 // Value percent of the parent inner size
	SizeFill                    // share of the remaining main-axis space, weighted by Value
)

// Size is a sizing rule for one axis.
type Size struct {
	Kind  SizeKind
	Value float64
}

// Fit sizes an axis to its children.
func Fit() Size { return Size{Kind: SizeFit} }

// Px sizes an axis to a fixed length.
func Px(v float64) Size { return Size{Kind: SizeFixed, Value: v} }

// Pct sizes an axis to pct percent of the parent inner size.
func Pct(pct float64) Size { return Size{Kind: SizePercent, Value: pct} }

// Fill makes an axis take a weighted share of the space left over by its
// siblings. Weights <= 0 count as 1.
func Fill(weight float64) Size {
	if weight <= 0 {
		weight = 1
	}
	return Size{Kind: SizeFill, Value: weight}
}

// Direction is the axis flow children are stacked along.
type Direction uint8

const (
	DirVertical   Direction = iota // children stack top to bottom
	DirHorizontal                  // children stack left to right
)

// Position selects how a node is placed inside its parent.
type Position uint8

const (
	PositionFlow     Position = iota // stacked after the previous flow sibling
	PositionAbsolute                 // at Offset from the parent inner origin
	PositionScreen                   // at Offset from the screen origin, clipped to the screen
)

// ClipMode selects whether a node clips what is drawn inside its scope.
type ClipMode uint8

const (
	ClipNone  ClipMode = iota // inherit the active clip
	ClipInner                 // clip to the rect minus padding
	ClipOuter                 // clip to the full rect
)

// ZIndex is an optional z-index override. The zero value inherits the
// parent's z-index.
type ZIndex struct {
	Set   bool
	Value int
}

// Z returns an override for z-index v.
func Z(v int) ZIndex { return ZIndex{Set: true, Value: v} }

// Layout holds the declared rules of a node. It is part of the node's
// structural hash: changing any field marks the frame for relayout.
type Layout struct {
	Width     Size
	Height    Size
	Direction Direction
	Padding   Insets
	Gap       float64
	Position  Position
	Offset    Vec2
	Z         ZIndex
	Clip      ClipMode
	Scroll    Vec2
}

// --- Cross-frame cache ---

// nodeCache is the geometry kept per identity between frames.
type nodeCache struct {
	rect     Rect
	content  Rect
	lastSeen uint64
}

// CachedRect returns the last resolved rect for id.
func (c *Context) CachedRect(id ID) (Rect, bool) {
	e := c.cache[id]
	if e == nil {
		return Rect{}, false
	}
	return e.rect, true
}

// --- Resolve ---

// resolve computes final rects for the current tree and stores them in the
// cache. It only depends on the declared rules and the screen rect, so
// running it twice without an intervening gather yields identical results.
func (c *Context) resolve() {
	t0 := time.Now()
	if c.root == nil {
		return
	}
	measure(c.root)
	c.place(c.root, c.screen, c.screen)
	c.stats.ResolveTime = time.Since(t0)
}

// measure computes the intrinsic size of n bottom-up.
func measure(n *Node) Vec2 {
	var mainSum, crossMax float64
	var flow int
	var extW, extH float64
	horizontal := n.layout.Direction == DirHorizontal
	for _, ch := range n.children {
		s := measure(ch)
		if ch.layout.Position != PositionFlow {
			if ch.layout.Position == PositionAbsolute {
				extW = max(extW, ch.layout.Offset.X+s.X)
				extH = max(extH, ch.layout.Offset.Y+s.Y)
			}
			continue
		}
		flow++
		main, cross := s.Y, s.X
		if horizontal {
			main, cross = s.X, s.Y
		}
		mainSum += main
		crossMax = max(crossMax, cross)
	}
	if flow > 1 {
		mainSum += n.layout.Gap * float64(flow-1)
	}
	contentW, contentH := crossMax, mainSum
	if horizontal {
		contentW, contentH = mainSum, crossMax
	}
	contentW = max(contentW, extW)
	contentH = max(contentH, extH)

	pad := n.layout.Padding
	n.fit = Vec2{
		X: intrinsic(n.layout.Width, contentW+pad.Left+pad.Right),
		Y: intrinsic(n.layout.Height, contentH+pad.Top+pad.Bottom),
	}
	return n.fit
}

func intrinsic(s Size, content float64) float64 {
	if s.Kind == SizeFixed {
		return max(s.Value, 0)
	}
	return content
}

func fillWeight(s Size) float64 {
	if s.Value <= 0 {
		return 1
	}
	return s.Value
}

// axisSize resolves a non-fill size against the reference length.
func axisSize(s Size, fit, ref float64) float64 {
	switch s.Kind {
	case SizeFixed:
		return max(s.Value, 0)
	case SizePercent:
		return max(ref*s.Value/100, 0)
	case SizeFill:
		return ref
	default:
		return fit
	}
}

// place assigns rect to n and lays out its children top-down. clip is the
// clip rect active in the parent's body.
func (c *Context) place(n *Node, rect, clip Rect) {
	n.resolved = rect
	inner := rect.Inset(n.layout.Padding)

	if n.layout.Position == PositionScreen {
		clip = c.screen
	}
	switch n.layout.Clip {
	case ClipInner:
		clip = clip.Intersect(inner)
	case ClipOuter:
		clip = clip.Intersect(rect)
	}
	n.bodyClip = clip
	horizontal := n.layout.Direction == DirHorizontal
	scroll := n.layout.Scroll

	innerMain, innerCross := inner.Height, inner.Width
	if horizontal {
		innerMain, innerCross = inner.Width, inner.Height
	}

	// First pass over flow children: fixed main sizes and fill weights.
	var used, weights float64
	var flow int
	for _, ch := range n.children {
		if ch.layout.Position != PositionFlow {
			continue
		}
		flow++
		ms, mf := ch.layout.Height, ch.fit.Y
		if horizontal {
			ms, mf = ch.layout.Width, ch.fit.X
		}
		if ms.Kind == SizeFill {
			weights += fillWeight(ms)
			continue
		}
		used += axisSize(ms, mf, innerMain)
	}
	if flow > 1 {
		used += n.layout.Gap * float64(flow-1)
	}
	remaining := max(innerMain-used, 0)

	cursor := 0.0
	var extW, extH float64
	for _, ch := range n.children {
		var r Rect
		switch ch.layout.Position {
		case PositionFlow:
			ms, mf := ch.layout.Height, ch.fit.Y
			cs, cf := ch.layout.Width, ch.fit.X
			if horizontal {
				ms, mf = ch.layout.Width, ch.fit.X
				cs, cf = ch.layout.Height, ch.fit.Y
			}
			var main float64
			if ms.Kind == SizeFill {
				main = remaining * fillWeight(ms) / weights
			} else {
				main = axisSize(ms, mf, innerMain)
			}
			cross := axisSize(cs, cf, innerCross)
			if horizontal {
				r = Rect{X: inner.X + cursor, Y: inner.Y, Width: main, Height: cross}
			} else {
				r = Rect{X: inner.X, Y: inner.Y + cursor, Width: cross, Height: main}
			}
			cursor += main + n.layout.Gap
		case PositionAbsolute:
			r = Rect{
				X:      inner.X + ch.layout.Offset.X,
				Y:      inner.Y + ch.layout.Offset.Y,
				Width:  axisSize(ch.layout.Width, ch.fit.X, inner.Width),
				Height: axisSize(ch.layout.Height, ch.fit.Y, inner.Height),
			}
		case PositionScreen:
			r = Rect{
				X:      c.screen.X + ch.layout.Offset.X,
				Y:      c.screen.Y + ch.layout.Offset.Y,
				Width:  axisSize(ch.layout.Width, ch.fit.X, c.screen.Width),
				Height: axisSize(ch.layout.Height, ch.fit.Y, c.screen.Height),
			}
			c.place(ch, r, clip)
			continue
		}
		if ch.layout.Position == PositionFlow {
			r.X += ch.layout.Offset.X
			r.Y += ch.layout.Offset.Y
		}
		extW = max(extW, r.X+r.Width-inner.X)
		extH = max(extH, r.Y+r.Height-inner.Y)
		r.X -= scroll.X
		r.Y -= scroll.Y
		c.place(ch, r, clip)
	}

	content := Rect{X: inner.X, Y: inner.Y, Width: extW, Height: extH}
	e := c.cache[n.id]
	if e == nil {
		e = &nodeCache{}
		c.cache[n.id] = e
	}
	e.rect = rect
	e.content = content
	e.lastSeen = c.frame
}

// refreshInteractables gives node-backed interactables of this frame the
// geometry resolve just produced, so the committed table never carries the
// stale or zero rects seen during gather.
func (c *Context) refreshInteractables() {
	for i := range c.cur.items {
		it := &c.cur.items[i]
		if n := c.arena.get(it.Node); n != nil {
			it.Rect = n.resolved
			it.Clip = n.bodyClip
		}
	}
}
