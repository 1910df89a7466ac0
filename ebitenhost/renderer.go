package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/sprig"
)

// Renderer draws sprig.DrawData onto an ebiten.Image. Solid geometry and
// textured quads are batched into DrawTriangles32 calls per texture and
// clip rect; text runs go through text/v2, or through the debug font when
// no Font is set.
type Renderer struct {
	font     *Font
	log      *log.Logger
	textures map[sprig.TextureID]*ebiten.Image
	nextID   sprig.TextureID
	missing  map[sprig.TextureID]bool

	batch batcher
	aa    bool
	scale float64
}

// NewRenderer creates a renderer. font may be nil.
func NewRenderer(font *Font, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		font:     font,
		log:      logger,
		textures: make(map[sprig.TextureID]*ebiten.Image),
		missing:  make(map[sprig.TextureID]bool),
	}
}

// Font returns the text font, or nil.
func (r *Renderer) Font() *Font { return r.font }

// RegisterTexture makes img drawable through DrawList.Image and returns its
// identifier.
func (r *Renderer) RegisterTexture(img *ebiten.Image) sprig.TextureID {
	r.nextID++
	r.textures[r.nextID] = img
	return r.nextID
}

// SetTexture replaces the image behind id. A nil img unregisters it.
func (r *Renderer) SetTexture(id sprig.TextureID, img *ebiten.Image) {
	if img == nil {
		delete(r.textures, id)
		return
	}
	r.textures[id] = img
	delete(r.missing, id)
}

// Render draws every bucket of data in ascending z order.
func (r *Renderer) Render(dst *ebiten.Image, data *sprig.DrawData) {
	if data == nil {
		return
	}
	r.scale = data.UIScale
	if r.scale <= 0 {
		r.scale = 1
	}
	r.aa = data.AntiAliasing
	r.batch.reset()
	bounds := dst.Bounds()

	for _, b := range data.Buckets {
		for i := range b.Commands {
			cmd := &b.Commands[i]
			clip := pixelRect(cmd.Clip, r.scale).Intersect(bounds)
			if clip.Empty() {
				continue
			}
			r.command(dst, cmd, clip)
		}
	}
	r.flush(dst)
}

func (r *Renderer) command(dst *ebiten.Image, cmd *sprig.Command, clip image.Rectangle) {
	s := r.scale
	c := premultiply(cmd.Color)

	switch cmd.Kind {
	case sprig.CommandText:
		r.flush(dst)
		r.text(dst.SubImage(clip).(*ebiten.Image), cmd)
		return
	case sprig.CommandImage:
		r.use(dst, batchKey{texture: cmd.Texture, clip: clip})
		uv := cmd.UV
		if uv.Width <= 0 || uv.Height <= 0 {
			b := r.texture(cmd.Texture).Bounds()
			uv = sprig.Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
		}
		if cmd.Color == (sprig.Color{}) {
			c = premultiply(sprig.ColorWhite)
		}
		r.batch.image(scaleRect(cmd.Rect, s), uv, c)
		return
	}

	r.use(dst, batchKey{clip: clip})
	switch cmd.Kind {
	case sprig.CommandFillRect:
		r.batch.rect(scaleRect(cmd.Rect, s), c)
	case sprig.CommandStrokeRect:
		r.batch.strokeRect(scaleRect(cmd.Rect, s), cmd.Thickness*s, c)
	case sprig.CommandFillCircle:
		r.batch.circle(scaleVec(cmd.Points[0], s), cmd.Radius*s, c)
	case sprig.CommandStrokeCircle:
		r.batch.ring(scaleVec(cmd.Points[0], s), cmd.Radius*s, cmd.Thickness*s, c)
	case sprig.CommandFillTriangle:
		r.batch.fan([]sprig.Vec2{
			scaleVec(cmd.Points[0], s),
			scaleVec(cmd.Points[1], s),
			scaleVec(cmd.Points[2], s),
		}, c)
	case sprig.CommandLine:
		r.batch.line(scaleVec(cmd.Points[0], s), scaleVec(cmd.Points[1], s), cmd.Thickness*s, c)
	}
}

// use switches the batch to key, flushing pending geometry first.
func (r *Renderer) use(dst *ebiten.Image, key batchKey) {
	if r.batch.key == key {
		return
	}
	r.flush(dst)
	r.batch.key = key
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (r *Renderer) flush(dst *ebiten.Image) {
	if r.batch.empty() {
		r.batch.reset()
		return
	}
	target := dst.SubImage(r.batch.key.clip).(*ebiten.Image)

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = r.aa
	target.DrawTriangles32(r.batch.verts, r.batch.inds, r.texture(r.batch.key.texture), &op)

	r.batch.reset()
}

// texture resolves id, falling back to the white pixel for 0 and to a
// magenta placeholder for unknown identifiers.
func (r *Renderer) texture(id sprig.TextureID) *ebiten.Image {
	if id == 0 {
		return ensureWhitePixel()
	}
	if img := r.textures[id]; img != nil {
		return img
	}
	if !r.missing[id] {
		r.missing[id] = true
		r.log.Warn("texture not registered, using magenta placeholder", "texture", id)
	}
	return ensureMagentaImage()
}

func (r *Renderer) text(dst *ebiten.Image, cmd *sprig.Command) {
	x, y := cmd.Rect.X*r.scale, cmd.Rect.Y*r.scale
	if r.font == nil {
		ebitenutil.DebugPrintAt(dst, cmd.Text, int(x), int(y))
		return
	}
	size := cmd.FontSize * r.scale
	if size <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toRGBA(cmd.Color))
	op.LineSpacing = r.font.LineHeight(size)
	text.Draw(dst, cmd.Text, r.font.Face(size), op)
}

// pixelRect converts a layout-unit rect to the framebuffer pixels it
// touches.
func pixelRect(r sprig.Rect, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X*scale)),
		int(math.Floor(r.Y*scale)),
		int(math.Ceil((r.X+r.Width)*scale)),
		int(math.Ceil((r.Y+r.Height)*scale)),
	)
}

func scaleRect(r sprig.Rect, s float64) sprig.Rect {
	return sprig.Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

func scaleVec(v sprig.Vec2, s float64) sprig.Vec2 {
	return sprig.Vec2{X: v.X * s, Y: v.Y * s}
}

// toRGBA converts a straight-alpha color to a premultiplied color.RGBA.
func toRGBA(c sprig.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var whitePixelImage, magentaImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
