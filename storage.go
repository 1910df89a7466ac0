package sprig

// storageEntry holds one per-identity value.
type storageEntry struct {
	value   any
	touched uint64
}

// Storage returns the value kept for id across frames, creating it with init
// on first use (or the zero T when init is nil). Storing different types
// under one id is a programmer error and panics.
//
// Entries follow the same retention rule as animations: values not looked up
// for Config.RetainFrames frames are dropped.
func Storage[T any](c *Context, id ID, init func() T) *T {
	e := c.storage[id]
	if e == nil {
		v := new(T)
		if init != nil {
			*v = init()
		}
		e = &storageEntry{value: v}
		c.storage[id] = e
	}
	e.touched = c.frame
	p, ok := e.value.(*T)
	if !ok {
		panic("sprig: Storage type mismatch for identity")
	}
	return p
}

// DropStorage removes the value kept for id.
func (c *Context) DropStorage(id ID) { delete(c.storage, id) }

func (c *Context) pruneStorage() {
	keep := c.cfg.RetainFrames
	if keep < 0 || c.frame < uint64(keep) {
		return
	}
	limit := c.frame - uint64(keep)
	for id, e := range c.storage {
		if e.touched < limit {
			delete(c.storage, id)
		}
	}
}
