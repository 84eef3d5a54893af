// Package debug provides frame capture for diagnostics.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/texture"
	"github.com/Faultbox/lumen/internal/logger"
)

const timestampLayout = "2006-01-02_15-04-05.000"

// Screenshot writes framebuffer contents to timestamped PNG files.
type Screenshot struct {
	outputDir string
	prefix    string
	now       func() time.Time
	last      string
	log       *zap.Logger
}

// NewScreenshot creates a capture handler writing to outputDir.
func NewScreenshot(outputDir, prefix string) *Screenshot {
	return &Screenshot{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
		log:       logger.Named("debug"),
	}
}

// Filename returns the path the next capture would be written to. Captures
// within the same millisecond get a numeric suffix.
func (sc *Screenshot) Filename() string {
	base := fmt.Sprintf("%s_%s", sc.prefix, sc.now().Format(timestampLayout))
	name := base + ".png"
	for n := 1; sc.exists(name); n++ {
		name = fmt.Sprintf("%s_%d.png", base, n)
	}
	return name
}

func (sc *Screenshot) exists(name string) bool {
	if name == sc.last {
		return true
	}
	_, err := os.Stat(filepath.Join(sc.outputDir, name))
	return err == nil
}

// CaptureFromPixels saves tightly packed RGBA rows read from OpenGL. Rows
// are stored bottom-up, so the image is flipped vertically.
func (sc *Screenshot) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := &image.RGBA{Pix: pixels, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return sc.Capture(texture.FlipVertical(img))
}

// Capture encodes img as PNG and returns the written path.
func (sc *Screenshot) Capture(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := sc.Filename()
	path := filepath.Join(sc.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	sc.last = name
	sc.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
