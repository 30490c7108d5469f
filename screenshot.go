package oilshape

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw call. The resulting PNG is written to ScreenshotDir with a
// timestamped filename. Safe to call from any goroutine.
func (c *Compositor) Screenshot(label string) {
	c.shotMu.Lock()
	c.screenshotQueue = append(c.screenshotQueue, label)
	c.shotMu.Unlock()
}

// takeScreenshots empties the queue and returns its labels.
func (c *Compositor) takeScreenshots() []string {
	c.shotMu.Lock()
	defer c.shotMu.Unlock()
	q := c.screenshotQueue
	c.screenshotQueue = nil
	return q
}

// flushScreenshots captures the composited frame for every queued label
// and writes each as a PNG file. Called at the end of Compositor.Draw.
func (c *Compositor) flushScreenshots(screen *ebiten.Image) {
	queue := c.takeScreenshots()
	if len(queue) == 0 {
		return
	}

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		c.log.Error().Err(err).Str("dir", c.ScreenshotDir).Msg("screenshot: mkdir")
		return
	}

	img := unpremultiply(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range queue {
		path := filepath.Join(c.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			c.log.Error().Err(err).Msg("screenshot")
			continue
		}
		c.log.Debug().Str("path", path).Msg("screenshot saved")
	}
}

// unpremultiply reads the frame and converts premultiplied RGBA to
// straight-alpha NRGBA.
func unpremultiply(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
