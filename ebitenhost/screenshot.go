package ebitenhost

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// queueScreenshot records a capture request; Draw writes it after the
// frame is rendered.
func (h *Host) queueScreenshot(label string) {
	h.shots = append(h.shots, label)
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file under Config.ScreenshotDir.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.shots) == 0 {
		return
	}
	defer func() { h.shots = h.shots[:0] }()

	dir := h.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.log.Error("screenshot: create directory", "dir", dir, "err", err)
		return
	}

	bounds := screen.Bounds()
	w, ht := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*ht)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, ht)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.shots {
		path := screenshotPath(dir, stamp, label)
		if err := writePNG(path, img); err != nil {
			h.log.Error("screenshot", "err", err)
			continue
		}
		h.log.Info("screenshot written", "path", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func screenshotPath(dir, stamp, label string) string {
	return filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
}

// writePNG encodes img in memory and writes it to path in one call, so a
// failed encode never leaves a truncated file behind.
func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

// fileSafe keeps ASCII letters, digits, '-' and '.'.
func fileSafe(r rune) rune {
	if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
		return r
	}
	return '_'
}

// sanitizeLabel maps a screenshot label to a file name fragment.
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(fileSafe, label)
}
