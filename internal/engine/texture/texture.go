// Package texture provides image decoding for model textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/Faultbox/objviewer/internal/logger"
)

// MissingSize is the edge length of the generated fallback texture.
const MissingSize = 64

// Decode decodes an encoded image and converts it to RGBA rows ordered
// bottom-up, the order OpenGL expects for texture coordinates with v=0 at the
// bottom.
func Decode(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	logger.Debug("texture decoded",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return FlipVertical(ToRGBA(img)), nil
}

// Load reads and decodes a texture file.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %s: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadOrMissing loads path, falling back to the missing-texture pattern when
// the file cannot be read or decoded.
func LoadOrMissing(path string) *image.RGBA {
	img, err := Load(path)
	if err != nil {
		logger.Warn("using missing texture", zap.String("path", path), zap.Error(err))
		return Missing()
	}
	return img
}

// Missing returns a magenta/black checkerboard used in place of textures that
// failed to load.
func Missing() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, MissingSize, MissingSize))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	const cell = MissingSize / 8

	for y := 0; y < MissingSize; y++ {
		for x := 0; x < MissingSize; x++ {
			c := black
			if (x/cell+y/cell)%2 == 0 {
				c = magenta
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// ToRGBA converts any image to an *image.RGBA with origin (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows in reverse order.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dstY := b.Dy() - 1 - y
		copy(out.Pix[dstY*out.Stride:dstY*out.Stride+rowLen], src)
	}
	return out
}
