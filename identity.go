package sprig

// ID is a node identity: stable across frames for the same logical node.
// The zero ID means "none".
type ID uint64

// Key is the explicit discriminator that, combined with the parent identity
// and the ID-stack scope, produces a node's ID. Use Index for positional or
// loop-indexed children and Name for named ones; both may be set.
type Key struct {
	Index int
	Name  string
}

// Idx returns a Key discriminated by index.
func Idx(i int) Key { return Key{Index: i} }

// Named returns a Key discriminated by name.
func Named(name string) Key { return Key{Name: name} }

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// mix folds the 8 bytes of v into h.
func mix(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}

// mixString folds the bytes of s into h, followed by a length terminator so
// that ("ab", "c") and ("a", "bc") differ.
func mixString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return mix(h, uint64(len(s)))
}

// deriveID combines a parent identity, the current ID-stack scope and a key.
func deriveID(parent, scope ID, k Key) ID {
	h := mix(fnvOffset64, uint64(parent))
	h = mix(h, uint64(scope))
	h = mix(h, uint64(int64(k.Index)))
	h = mixString(h, k.Name)
	if h == 0 {
		h = 1
	}
	return ID(h)
}

// salt derives a replacement identity for a collision.
func (id ID) salt(n int) ID {
	h := mix(uint64(id), 0x9e3779b97f4a7c15^uint64(n))
	if h == 0 {
		h = 1
	}
	return ID(h)
}

// --- ID stack ---

// PushID pushes a new ID scope derived from the current scope and k. Nodes
// created while it is pushed derive their identity from it. Must be balanced
// by PopID.
func (c *Context) PushID(k Key) ID {
	top := c.idTop()
	id := deriveID(top, top, k)
	c.idStack = append(c.idStack, id)
	return id
}

// PopID pops the scope pushed by the matching PushID.
func (c *Context) PopID() {
	c.idStack = c.idStack[:len(c.idStack)-1]
}

// WithID runs fn inside a PushID/PopID pair. The pop runs even if fn panics.
func (c *Context) WithID(k Key, fn func()) {
	c.PushID(k)
	defer c.PopID()
	fn()
}

// GetID returns the identity a node created with k would receive under the
// current scope, without registering anything.
func (c *Context) GetID(k Key) ID {
	var parent ID
	if n := c.Current(); n != nil {
		parent = n.id
	}
	return deriveID(parent, c.idTop(), k)
}

func (c *Context) idTop() ID {
	if len(c.idStack) == 0 {
		return 0
	}
	return c.idStack[len(c.idStack)-1]
}

// claimID registers id in this frame's created set, re-salting on collision.
func (c *Context) claimID(id ID, k Key) ID {
	if _, taken := c.curHashes[id]; !taken {
		c.curHashes[id] = 0
		return id
	}
	orig := id
	for n := 1; ; n++ {
		id = orig.salt(n)
		if _, taken := c.curHashes[id]; !taken {
			break
		}
	}
	c.stats.Collisions++
	c.log.Warn("identity collision, re-salted", "id", orig, "salted", id,
		"index", k.Index, "name", k.Name, "frame", c.frame)
	c.curHashes[id] = 0
	return id
}
