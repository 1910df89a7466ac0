package sprig

import "time"

// FrameStats describes the work done by one ProcessFrame call.
type FrameStats struct {
	Frame         uint64
	Nodes         int
	Interactables int
	Commands      int
	Collisions    int
	Resolved      bool   // the resolve phase ran
	DirtyReason   string // why resolve ran: "ui scale", "screen", "node count", "new node" or "hash"
	Abandoned     bool   // gather panicked and nothing was committed
	GatherTime    time.Duration
	ResolveTime   time.Duration
	FlushTime     time.Duration
}

// LastFrame returns the stats of the most recent ProcessFrame call.
func (c *Context) LastFrame() FrameStats { return c.last }

// debugLog logs frame stats when debug mode is on.
func (c *Context) debugLog(s FrameStats) {
	if !c.cfg.Debug {
		return
	}
	c.log.Debug("frame",
		"frame", s.Frame,
		"gather", s.GatherTime,
		"resolve", s.ResolveTime,
		"flush", s.FlushTime,
		"total", s.GatherTime+s.ResolveTime+s.FlushTime)
	c.log.Debug("frame counts",
		"nodes", s.Nodes,
		"interactables", s.Interactables,
		"commands", s.Commands,
		"resolved", s.Resolved,
		"reason", s.DirtyReason)
	if s.Collisions > 0 {
		c.log.Debug("frame identity collisions", "count", s.Collisions)
	}
}

// debugMaxTreeDepth is the nesting depth past which debug mode warns.
const debugMaxTreeDepth = 64

// debugCheckTreeDepth warns when n is nested deeper than debugMaxTreeDepth.
func (c *Context) debugCheckTreeDepth(n *Node) {
	if !c.cfg.Debug || len(c.scopes) <= debugMaxTreeDepth {
		return
	}
	c.log.Warn("tree depth exceeds threshold",
		"depth", len(c.scopes), "threshold", debugMaxTreeDepth, "id", n.id)
}
