package ebitenhost

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps an Ebitengine text/v2 face source and caches one face per size.
type Font struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFont parses TrueType or OpenType data.
func LoadFont(ttf []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: parse font: %w", err)
	}
	return &Font{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// DefaultFont returns Go Regular.
func DefaultFont() (*Font, error) {
	return LoadFont(goregular.TTF)
}

// Face returns the face for size, creating it on first use.
func (f *Font) Face(size float64) *text.GoTextFace {
	face := f.faces[size]
	if face == nil {
		face = &text.GoTextFace{Source: f.source, Size: size}
		f.faces[size] = face
	}
	return face
}

// LineHeight returns the distance between baselines at size.
func (f *Font) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Measure returns the width and height of s rendered at size.
func (f *Font) Measure(s string, size float64) (width, height float64) {
	return text.Measure(s, f.Face(size), f.LineHeight(size))
}
