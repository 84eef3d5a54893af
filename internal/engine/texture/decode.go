package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
)

// ErrDecode is returned when image bytes cannot be decoded.
var ErrDecode = errors.New("texture: decode failed")

// Decode decodes image bytes into RGBA. The format is picked from the path
// extension for TGA and sniffed from the data otherwise.
func Decode(path string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return ImageToRGBA(img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with its origin at (0,0).
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows in reverse order.
// GL expects the first row at the bottom of the texture.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:rowLen]
		dst := out.Pix[(b.Dy()-1-y)*out.Stride:][:rowLen]
		copy(dst, src)
	}
	return out
}
