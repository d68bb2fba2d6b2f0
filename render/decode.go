package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode     = errors.New("failed to decode image")
	ErrEmptyImage = errors.New("image has no pixels")
)

// MaxDecodePixels bounds the pixel count of a decoded image (16384x8192).
const MaxDecodePixels = 1 << 27

// Decode decodes JPEG, PNG, GIF, WebP, BMP or TIFF data. The header is
// checked first so that oversized images fail before any pixel buffer is
// allocated.
func Decode(b []byte) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", ErrEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxDecodePixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, MaxDecodePixels)
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if r := img.Bounds(); r.Dx() == 0 || r.Dy() == 0 {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}

// fitRGBA converts img to RGBA, shrinking it to maxSize on its longer side.
// maxSize <= 0 disables shrinking.
func fitRGBA(img image.Image, maxSize int) *image.RGBA {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return clone.AsRGBA(img)
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}
