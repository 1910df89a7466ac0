package sprig

import (
	"github.com/mitchellh/hashstructure/v2"
)

// nodeConfig is the part of a node that feeds its structural hash.
type nodeConfig struct {
	Layout Layout
	Z      int
}

// nodeHash combines the node's own configuration with the hashes of its
// children, in order. Children always end before their parent, so their
// hashes are final here.
func (c *Context) nodeHash(n *Node) uint64 {
	h, err := hashstructure.Hash(nodeConfig{Layout: n.layout, Z: n.baseZ}, hashstructure.FormatV2, nil)
	if err != nil {
		// Layout only holds plain values; this is unreachable in practice.
		c.log.Error("hash node config", "id", n.id, "err", err)
	}
	h = mix(h, uint64(len(n.children)))
	for _, ch := range n.children {
		h = mix(h, uint64(ch.id))
		h = mix(h, ch.hash)
	}
	return h
}

// Hash returns the structural hash recorded for id in the last committed
// frame.
func (c *Context) Hash(id ID) (uint64, bool) {
	h, ok := c.prevHashes[id]
	return h, ok
}

// validate compares this frame's hash table with the previous one and
// reports whether the resolve phase has to run, and why.
func (c *Context) validate() (bool, string) {
	switch {
	case c.uiScale != c.prevUIScale:
		return true, "ui scale"
	case c.screen != c.prevScreen:
		return true, "screen"
	case len(c.curHashes) != len(c.prevHashes):
		return true, "node count"
	}
	changed := false
	for id, h := range c.curHashes {
		prev, ok := c.prevHashes[id]
		if !ok {
			return true, "new node"
		}
		if prev != h {
			changed = true
		}
	}
	if changed {
		return true, "hash"
	}
	return false, ""
}

// commitHashes makes this frame's table the reference for the next frame.
func (c *Context) commitHashes() {
	c.prevHashes, c.curHashes = c.curHashes, c.prevHashes
	clear(c.curHashes)
	c.prevUIScale = c.uiScale
	c.prevScreen = c.screen
}
