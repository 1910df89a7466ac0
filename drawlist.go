package sprig

import "sort"

// CommandKind identifies a draw primitive.
type CommandKind uint8

const (
	CommandFillRect     CommandKind = iota // filled Rect
	CommandStrokeRect                      // Rect outline, Thickness wide
	CommandFillCircle                      // filled circle at Points[0], Radius
	CommandStrokeCircle                    // circle outline at Points[0], Radius, Thickness wide
	CommandFillTriangle                    // filled triangle Points[0..2]
	CommandLine                            // segment Points[0] to Points[1], Thickness wide
	CommandImage                           // Texture region UV drawn into Rect
	CommandText                            // Text run at Rect.X, Rect.Y, FontSize high
)

// TextureID is an opaque texture handle resolved by the renderer.
type TextureID uint32

// Command is a single recorded draw instruction. Clip is the active clip rect
// when the command was appended; renderers must not draw outside it.
type Command struct {
	Kind      CommandKind
	Rect      Rect
	Points    [3]Vec2
	Radius    float64
	Thickness float64
	Color     Color
	Texture   TextureID
	UV        Rect
	Text      string
	FontSize  float64
	Clip      Rect
}

// Bucket is the command list for one z-index, with its own clip stack.
type Bucket struct {
	Z        int
	Commands []Command
	clips    []Rect
}

// Clip returns the active clip rect of the bucket.
func (b *Bucket) Clip() Rect { return b.clips[len(b.clips)-1] }

// ClipDepth returns the number of clip rects pushed above the screen rect.
func (b *Bucket) ClipDepth() int { return len(b.clips) - 1 }

// DrawList records commands into z-index buckets during gather. Buckets are
// created on first use and kept for the lifetime of the Context; their
// contents are cleared every frame.
type DrawList struct {
	buckets map[int]*Bucket
	sorted  []*Bucket
	cur     *Bucket
	zStack  []int
	screen  Rect
}

func newDrawList() *DrawList {
	d := &DrawList{buckets: make(map[int]*Bucket)}
	d.cur = d.bucket(0)
	return d
}

// reset clears every bucket and resets their clip stacks to screen.
func (d *DrawList) reset(screen Rect) {
	d.screen = screen
	for _, b := range d.sorted {
		b.Commands = b.Commands[:0]
		b.clips = append(b.clips[:0], screen)
	}
	d.zStack = d.zStack[:0]
	d.cur = d.bucket(0)
}

// bucket returns the bucket for z, creating it in sorted position.
func (d *DrawList) bucket(z int) *Bucket {
	if b := d.buckets[z]; b != nil {
		return b
	}
	b := &Bucket{Z: z, clips: []Rect{d.screen}}
	d.buckets[z] = b
	i := sort.Search(len(d.sorted), func(i int) bool { return d.sorted[i].Z >= z })
	d.sorted = append(d.sorted, nil)
	copy(d.sorted[i+1:], d.sorted[i:])
	d.sorted[i] = b
	return b
}

// --- Clip and z-index scoping ---

// PushClip makes r the active clip rect of the current bucket. Unless
// overwrite is set, r is intersected with the clip already active.
func (d *DrawList) PushClip(r Rect, overwrite bool) {
	if !overwrite {
		r = d.cur.Clip().Intersect(r)
	}
	d.cur.clips = append(d.cur.clips, r)
}

// PopClip restores the clip rect active before the matching PushClip.
func (d *DrawList) PopClip() {
	d.cur.clips = d.cur.clips[:len(d.cur.clips)-1]
}

// PushZIndex switches appends to bucket z. The clip rect active in the
// current bucket is copied into the new one so clip scoping survives the
// jump. Must be balanced by PopZIndex.
func (d *DrawList) PushZIndex(z int) {
	clip := d.cur.Clip()
	d.zStack = append(d.zStack, d.cur.Z)
	d.cur = d.bucket(z)
	d.cur.clips = append(d.cur.clips, clip)
}

// PopZIndex returns to the bucket active before the matching PushZIndex.
func (d *DrawList) PopZIndex() {
	d.cur.clips = d.cur.clips[:len(d.cur.clips)-1]
	z := d.zStack[len(d.zStack)-1]
	d.zStack = d.zStack[:len(d.zStack)-1]
	d.cur = d.bucket(z)
}

// ZIndex returns the z-index of the current bucket.
func (d *DrawList) ZIndex() int { return d.cur.Z }

// ClipRect returns the active clip rect.
func (d *DrawList) ClipRect() Rect { return d.cur.Clip() }

// Balanced reports whether every clip and z-index push has been popped.
func (d *DrawList) Balanced() bool {
	if len(d.zStack) != 0 || d.cur.Z != 0 {
		return false
	}
	for _, b := range d.sorted {
		if b.ClipDepth() != 0 {
			return false
		}
	}
	return true
}

// --- Primitives ---

func (d *DrawList) add(cmd Command) {
	cmd.Clip = d.cur.Clip()
	d.cur.Commands = append(d.cur.Commands, cmd)
}

// FillRect appends a filled rectangle.
func (d *DrawList) FillRect(r Rect, c Color) {
	d.add(Command{Kind: CommandFillRect, Rect: r, Color: c})
}

// StrokeRect appends a rectangle outline.
func (d *DrawList) StrokeRect(r Rect, thickness float64, c Color) {
	d.add(Command{Kind: CommandStrokeRect, Rect: r, Thickness: thickness, Color: c})
}

// FillCircle appends a filled circle.
func (d *DrawList) FillCircle(center Vec2, radius float64, c Color) {
	d.add(Command{Kind: CommandFillCircle, Points: [3]Vec2{center}, Radius: radius, Color: c})
}

// StrokeCircle appends a circle outline.
func (d *DrawList) StrokeCircle(center Vec2, radius, thickness float64, c Color) {
	d.add(Command{Kind: CommandStrokeCircle, Points: [3]Vec2{center}, Radius: radius, Thickness: thickness, Color: c})
}

// FillTriangle appends a filled triangle.
func (d *DrawList) FillTriangle(a, b, p Vec2, c Color) {
	d.add(Command{Kind: CommandFillTriangle, Points: [3]Vec2{a, b, p}, Color: c})
}

// Line appends a line segment.
func (d *DrawList) Line(from, to Vec2, thickness float64, c Color) {
	d.add(Command{Kind: CommandLine, Points: [3]Vec2{from, to}, Thickness: thickness, Color: c})
}

// Image appends a textured quad: region uv of tex drawn into dst.
func (d *DrawList) Image(tex TextureID, dst, uv Rect, tint Color) {
	d.add(Command{Kind: CommandImage, Texture: tex, Rect: dst, UV: uv, Color: tint})
}

// Text appends a text run with its top-left corner at pos.
func (d *DrawList) Text(pos Vec2, text string, size float64, c Color) {
	d.add(Command{Kind: CommandText, Rect: Rect{X: pos.X, Y: pos.Y}, Text: text, FontSize: size, Color: c})
}

// --- Flush ---

// CommandSink consumes a frame's draw data. The buckets are owned by the
// Context and are only valid until the next ProcessFrame call.
type CommandSink interface {
	Submit(data *DrawData)
}

// CommandSinkFunc adapts a function to CommandSink.
type CommandSinkFunc func(data *DrawData)

// Submit calls f(data).
func (f CommandSinkFunc) Submit(data *DrawData) { f(data) }

// DrawData is the render output of one frame. Buckets are in ascending
// z-index order and only non-empty buckets are included; within a bucket,
// commands are in append order. Coordinates are layout units: multiply by
// UIScale to get framebuffer pixels.
type DrawData struct {
	Frame            uint64
	Buckets          []*Bucket
	Screen           Rect
	UIScale          float64
	FramebufferScale Vec2
	AntiAliasing     bool
}

// CommandCount returns the total number of commands in data.
func (data *DrawData) CommandCount() int {
	n := 0
	for _, b := range data.Buckets {
		n += len(b.Commands)
	}
	return n
}

// collect fills data.Buckets with the non-empty buckets in z order.
func (d *DrawList) collect(data *DrawData) {
	data.Buckets = data.Buckets[:0]
	for _, b := range d.sorted {
		if len(b.Commands) > 0 {
			data.Buckets = append(data.Buckets, b)
		}
	}
}

// Buckets returns every bucket created so far, in ascending z-index order.
// The returned slice MUST NOT be mutated by the caller.
func (d *DrawList) Buckets() []*Bucket { return d.sorted }
