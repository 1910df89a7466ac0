package sprig

// Node is one element of the per-frame UI tree. Nodes are created by
// Context.Begin (or Context.Node) during the gather phase and belong to the
// frame that created them; the arena recycles them at the next frame. Keep
// the ID or Handle, not the *Node, across frames.
//
// A node's geometry during gather is whatever the last resolve produced for
// its identity: Rect and ContentRect return last frame's values, or zero
// rects for identities that did not exist before.
type Node struct {
	ctx    *Context
	id     ID
	key    Key
	handle Handle

	// Hierarchy
	parent   *Node
	children []*Node

	// Declared rules
	layout Layout

	// Draw state for this scope
	z      int // effective z-index, passed down to children
	baseZ  int // z after Layout.Z, before SetZIndex calls in the body
	clips  int // clip rects pushed by Begin
	cfgZ   bool
	bodyZ  int // z pushes made through SetZIndex
	open   bool
	cached bool

	// Geometry from the cross-frame cache (gather) and from resolve.
	rect     Rect
	content  Rect
	fit      Vec2
	resolved Rect
	bodyClip Rect

	hash uint64
}

// release clears the node for reuse by the arena.
func (n *Node) release() {
	children := n.children[:0]
	for i := range n.children {
		n.children[i] = nil
	}
	*n = Node{children: children}
}

// --- Scope management ---

// Begin creates a node under the current scope and enters it: its identity
// is pushed onto the ID stack, the draw list switches to its z-index, and a
// clip rect is pushed when the layout declares one. Every Begin must be
// matched by End on all paths; prefer Node or `defer n.End()`.
func (c *Context) Begin(k Key, l Layout) *Node {
	parent := c.Current()
	if parent == nil {
		panic("sprig: Begin called outside ProcessFrame")
	}
	id := c.claimID(deriveID(parent.id, c.idTop(), k), k)
	return c.open(parent, id, k, l)
}

// Node creates a node, runs body inside its scope and closes it. The scope
// is closed even when body returns early or panics.
func (c *Context) Node(k Key, l Layout, body func(n *Node)) *Node {
	n := c.Begin(k, l)
	defer n.End()
	if body != nil {
		body(n)
	}
	return n
}

// Current returns the innermost open node, or nil outside a frame.
func (c *Context) Current() *Node {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}

func (c *Context) open(parent *Node, id ID, k Key, l Layout) *Node {
	n := c.arena.alloc()
	n.ctx = c
	n.id = id
	n.key = k
	n.layout = l
	n.open = true

	if entry := c.cache[id]; entry != nil {
		n.rect = entry.rect
		n.content = entry.content
		n.cached = true
		entry.lastSeen = c.frame
	}

	n.z = c.draw.ZIndex()
	if parent != nil {
		n.parent = parent
		n.z = parent.z
		parent.children = append(parent.children, n)
	}
	if l.Z.Set {
		n.z = l.Z.Value
	}
	n.baseZ = n.z

	c.idStack = append(c.idStack, id)
	c.scopes = append(c.scopes, n)
	c.debugCheckTreeDepth(n)

	if n.z != c.draw.ZIndex() {
		c.draw.PushZIndex(n.z)
		n.cfgZ = true
	}
	if l.Position == PositionScreen {
		c.draw.PushClip(c.screen, true)
		n.clips++
	}
	switch l.Clip {
	case ClipInner:
		c.draw.PushClip(n.rect.Inset(l.Padding), false)
		n.clips++
	case ClipOuter:
		c.draw.PushClip(n.rect, false)
		n.clips++
	}
	c.stats.Nodes++
	return n
}

// End leaves the node's scope, undoing Begin in reverse order, and records
// the node's structural hash. Calling End on an already closed node is a
// no-op. Panics if n is not the innermost open node.
func (n *Node) End() {
	if n == nil || !n.open {
		return
	}
	c := n.ctx
	if c.Current() != n {
		panic("sprig: End called out of order")
	}
	for ; n.bodyZ > 0; n.bodyZ-- {
		c.draw.PopZIndex()
	}
	for ; n.clips > 0; n.clips-- {
		c.draw.PopClip()
	}
	if n.cfgZ {
		c.draw.PopZIndex()
		n.cfgZ = false
	}
	c.idStack = c.idStack[:len(c.idStack)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	n.open = false

	n.hash = c.nodeHash(n)
	c.curHashes[n.id] = n.hash
}

// unwindScopes closes every open scope, innermost first.
func (c *Context) unwindScopes() {
	for len(c.scopes) > 0 {
		c.scopes[len(c.scopes)-1].End()
	}
	c.idStack = c.idStack[:0]
}

// --- Accessors ---

// ID returns the node identity.
func (n *Node) ID() ID { return n.id }

// Key returns the discriminator the node was created with.
func (n *Node) Key() Key { return n.key }

// Handle returns the node's generation-indexed handle for this frame.
func (n *Node) Handle() Handle { return n.handle }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children created so far. The returned slice MUST NOT
// be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// Layout returns the declared layout rules.
func (n *Node) Layout() Layout { return n.layout }

// Context returns the owning context.
func (n *Node) Context() *Context { return n.ctx }

// ZIndex returns the z-index draw calls in this scope currently go to.
func (n *Node) ZIndex() int { return n.z }

// IsNew reports whether the identity had no cached geometry this frame.
func (n *Node) IsNew() bool { return !n.cached }

// Rect returns the last resolved outer rect.
func (n *Node) Rect() Rect { return n.rect }

// InnerRect returns the last resolved rect minus padding.
func (n *Node) InnerRect() Rect { return n.rect.Inset(n.layout.Padding) }

// ContentRect returns the extent of the node's children as of the last
// resolve, measured from the unscrolled inner origin. It may be larger than
// InnerRect; scrollable containers derive their range from the difference.
func (n *Node) ContentRect() Rect { return n.content }

// ScrollRange returns how far the content can scroll on each axis.
func (n *Node) ScrollRange() Vec2 {
	inner := n.InnerRect()
	return Vec2{
		X: max(n.content.Width-inner.Width, 0),
		Y: max(n.content.Height-inner.Height, 0),
	}
}

// SetZIndex sends subsequent draw calls of this scope, and children created
// afterwards, to bucket z. The active clip rect carries over. The change is
// undone when the node ends and never leaks into sibling scopes.
func (n *Node) SetZIndex(z int) {
	if !n.open || n.ctx.Current() != n || z == n.z {
		return
	}
	n.ctx.draw.PushZIndex(z)
	n.bodyZ++
	n.z = z
}

// Draw returns the context draw list.
func (n *Node) Draw() *DrawList { return n.ctx.draw }
