package ebitenhost

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprig"
)

// batchKey groups geometry that can be submitted in a single draw call:
// the same source texture under the same clip rect.
type batchKey struct {
	texture sprig.TextureID // 0 is the white pixel
	clip    image.Rectangle
}

// batcher accumulates triangles in framebuffer pixels until the key
// changes or the frame ends.
type batcher struct {
	key   batchKey
	verts []ebiten.Vertex
	inds  []uint32
}

// rgba is a premultiplied vertex color.
type rgba struct{ r, g, b, a float32 }

func premultiply(c sprig.Color) rgba {
	a := float32(c.A)
	return rgba{float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a}
}

func (b *batcher) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *batcher) empty() bool { return len(b.inds) == 0 }

func (b *batcher) vertex(p, src sprig.Vec2, c rgba) {
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   float32(src.X),
		SrcY:   float32(src.Y),
		ColorR: c.r,
		ColorG: c.g,
		ColorB: c.b,
		ColorA: c.a,
	})
}

// whiteUV samples the center of the 1x1 white pixel.
var whiteUV = sprig.Vec2{X: 0.5, Y: 0.5}

// quad appends four corners in TL, TR, BL, BR order as two triangles.
func (b *batcher) quad(p, src [4]sprig.Vec2, c rgba) {
	base := uint32(len(b.verts))
	for i := range p {
		b.vertex(p[i], src[i], c)
	}
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// rect appends a solid axis-aligned rectangle.
func (b *batcher) rect(r sprig.Rect, c rgba) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	b.quad(
		[4]sprig.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}},
		[4]sprig.Vec2{whiteUV, whiteUV, whiteUV, whiteUV},
		c,
	)
}

// image appends a textured rectangle sampling the pixel region uv.
func (b *batcher) image(r, uv sprig.Rect, c rgba) {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	u0, v0, u1, v1 := uv.X, uv.Y, uv.X+uv.Width, uv.Y+uv.Height
	b.quad(
		[4]sprig.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}},
		[4]sprig.Vec2{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u0, Y: v1}, {X: u1, Y: v1}},
		c,
	)
}

// strokeRect appends four edge bars drawn inside r.
func (b *batcher) strokeRect(r sprig.Rect, t float64, c rgba) {
	t = math.Min(t, math.Min(r.Width, r.Height)/2)
	if t <= 0 {
		return
	}
	b.rect(sprig.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: t}, c)
	b.rect(sprig.Rect{X: r.X, Y: r.Y + r.Height - t, Width: r.Width, Height: t}, c)
	b.rect(sprig.Rect{X: r.X, Y: r.Y + t, Width: t, Height: r.Height - 2*t}, c)
	b.rect(sprig.Rect{X: r.X + r.Width - t, Y: r.Y + t, Width: t, Height: r.Height - 2*t}, c)
}

// fan appends a convex polygon with vertex 0 as the hub.
func (b *batcher) fan(points []sprig.Vec2, c rgba) {
	n := len(points)
	if n < 3 {
		return
	}
	base := uint32(len(b.verts))
	for _, p := range points {
		b.vertex(p, whiteUV, c)
	}
	for i := 0; i < n-2; i++ {
		b.inds = append(b.inds, base, base+uint32(i+1), base+uint32(i+2))
	}
}

// line appends a segment as a quad extruded along its perpendicular.
func (b *batcher) line(from, to sprig.Vec2, t float64, c rgba) {
	if t <= 0 {
		return
	}
	px, py := perpendicular(from, to)
	hx, hy := px*t/2, py*t/2
	b.quad(
		[4]sprig.Vec2{
			{X: from.X + hx, Y: from.Y + hy},
			{X: to.X + hx, Y: to.Y + hy},
			{X: from.X - hx, Y: from.Y - hy},
			{X: to.X - hx, Y: to.Y - hy},
		},
		[4]sprig.Vec2{whiteUV, whiteUV, whiteUV, whiteUV},
		c,
	)
}

// circle appends a filled circle as a triangle fan around its center.
func (b *batcher) circle(center sprig.Vec2, radius float64, c rgba) {
	if radius <= 0 {
		return
	}
	n := circleSegments(radius)
	base := uint32(len(b.verts))
	b.vertex(center, whiteUV, c)
	for i := 0; i < n; i++ {
		b.vertex(circlePoint(center, radius, i, n), whiteUV, c)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		b.inds = append(b.inds, base, base+1+uint32(i), base+1+uint32(next))
	}
}

// ring appends a circle outline as a strip between radius-t/2 and radius+t/2.
func (b *batcher) ring(center sprig.Vec2, radius, t float64, c rgba) {
	if radius <= 0 || t <= 0 {
		return
	}
	inner := math.Max(radius-t/2, 0)
	outer := radius + t/2
	n := circleSegments(outer)
	base := uint32(len(b.verts))
	for i := 0; i < n; i++ {
		b.vertex(circlePoint(center, outer, i, n), whiteUV, c)
		b.vertex(circlePoint(center, inner, i, n), whiteUV, c)
	}
	for i := 0; i < n; i++ {
		v := base + uint32(i*2)
		w := base + uint32(((i+1)%n)*2)
		b.inds = append(b.inds,
			v, v+1, w,
			v+1, w+1, w,
		)
	}
}

// circleSegments picks a segment count that keeps edges around 4px long.
func circleSegments(radius float64) int {
	n := int(math.Ceil(2 * math.Pi * radius / 4))
	return min(max(n, 12), 128)
}

func circlePoint(center sprig.Vec2, radius float64, i, n int) sprig.Vec2 {
	a := 2 * math.Pi * float64(i) / float64(n)
	return sprig.Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b sprig.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
