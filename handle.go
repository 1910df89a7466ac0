package sprig

// Handle is a generation-indexed reference to a node in a Context's arena.
// Handles from a previous frame are detected as stale instead of resolving to
// whatever node reuses the slot.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool { return h.gen == 0 }

// nodeArena pools Node objects across frames. Each frame bumps the
// generation, invalidating every handle issued before it.
type nodeArena struct {
	nodes []*Node
	used  int
	gen   uint32
}

func (a *nodeArena) reset() {
	a.gen++
	if a.gen == 0 {
		a.gen = 1
	}
	for i := 0; i < a.used; i++ {
		a.nodes[i].release()
	}
	a.used = 0
}

func (a *nodeArena) alloc() *Node {
	if a.used == len(a.nodes) {
		a.nodes = append(a.nodes, &Node{})
	}
	n := a.nodes[a.used]
	n.handle = Handle{index: uint32(a.used), gen: a.gen}
	a.used++
	return n
}

// get resolves h, returning nil for stale or unknown handles.
func (a *nodeArena) get(h Handle) *Node {
	if h.IsZero() || int(h.index) >= a.used {
		return nil
	}
	n := a.nodes[h.index]
	if n.handle != h {
		return nil
	}
	return n
}

// Resolve returns the live node for h, or nil if h belongs to an earlier
// frame.
func (c *Context) Resolve(h Handle) *Node {
	return c.arena.get(h)
}
