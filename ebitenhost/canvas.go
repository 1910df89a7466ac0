package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprig"
)

// Canvas is a persistent offscreen image registered with a Renderer, so UI
// code can show it with DrawList.Image(canvas.ID(), ...). The caller owns
// its contents; nothing clears it between frames.
type Canvas struct {
	r     *Renderer
	id    sprig.TextureID
	image *ebiten.Image
	w, h  int
}

// NewCanvas creates a w×h canvas and registers it with r.
func (r *Renderer) NewCanvas(w, h int) *Canvas {
	img := ebiten.NewImage(w, h)
	return &Canvas{r: r, id: r.RegisterTexture(img), image: img, w: w, h: h}
}

// ID returns the texture identifier to pass to DrawList.Image.
func (c *Canvas) ID() sprig.TextureID { return c.id }

// Image returns the underlying *ebiten.Image for direct drawing.
func (c *Canvas) Image() *ebiten.Image { return c.image }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.h }

// Clear fills the canvas with transparent black.
func (c *Canvas) Clear() { c.image.Clear() }

// Fill fills the canvas with col.
func (c *Canvas) Fill(col sprig.Color) { c.image.Fill(toRGBA(col)) }

// DrawImageAt draws src with its top-left corner at (x, y).
func (c *Canvas) DrawImageAt(src *ebiten.Image, x, y float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	c.image.DrawImage(src, &op)
}

// Resize replaces the image with a blank one of the new size. The texture
// identifier stays the same.
func (c *Canvas) Resize(w, h int) {
	if c.image != nil {
		c.image.Deallocate()
	}
	c.image = ebiten.NewImage(w, h)
	c.w, c.h = w, h
	c.r.SetTexture(c.id, c.image)
}

// Dispose releases the image and unregisters the texture.
func (c *Canvas) Dispose() {
	c.r.SetTexture(c.id, nil)
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
}
