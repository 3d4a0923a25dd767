// Package thumbnail renders book cover images into small JPEG previews.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register decoder
)

const (
	defaultWidth     = 300
	defaultHeight    = 450
	defaultQuality   = 85
	defaultMaxPixels = 100 * 1000 * 1000 // 100 megapixels
)

// ErrImageTooLarge is returned when the source exceeds the pixel limit.
var ErrImageTooLarge = errors.New("thumbnail: image too large to decode")

// Renderer scales cover images to fit inside a bounding box.
type Renderer struct {
	Width     int
	Height    int
	Quality   int
	MaxPixels int // Total pixel count limit for decode (width * height)
}

// Thumbnail holds an encoded preview.
type Thumbnail struct {
	Data         []byte
	Width        int
	Height       int
	SourceFormat string
	SourceWidth  int
	SourceHeight int
}

// NewRenderer creates a renderer, applying defaults to zero values.
// Quality is clamped to 1-100.
func NewRenderer(width, height, quality int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if quality <= 0 {
		quality = defaultQuality
	}
	if quality > 100 {
		quality = 100
	}
	return &Renderer{
		Width:     width,
		Height:    height,
		Quality:   quality,
		MaxPixels: defaultMaxPixels,
	}
}

// Render decodes input and returns a JPEG that fits the renderer's box
// while keeping the aspect ratio. Images already inside the box are
// re-encoded at their original size.
func (r *Renderer) Render(mediaType string, input []byte) (Thumbnail, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(input))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("thumbnail: unsupported image %s: %w", mediaType, err)
	}
	pixels := uint64(cfg.Width) * uint64(cfg.Height)
	if r.MaxPixels > 0 && pixels > uint64(r.MaxPixels) {
		return Thumbnail{}, fmt.Errorf("%w: %dx%d (%d pixels)", ErrImageTooLarge, cfg.Width, cfg.Height, pixels)
	}

	src, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("thumbnail: decode failed: %w", err)
	}

	processed := src
	if src.Bounds().Dx() > r.Width || src.Bounds().Dy() > r.Height {
		processed = imaging.Fit(src, r.Width, r.Height, imaging.Lanczos)
	}
	if hasAlpha(processed) {
		// JPEG has no alpha channel; flatten onto white.
		bg := imaging.New(processed.Bounds().Dx(), processed.Bounds().Dy(), image.White)
		processed = imaging.Overlay(bg, processed, image.Pt(0, 0), 1.0)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: r.Quality}); err != nil {
		return Thumbnail{}, fmt.Errorf("thumbnail: jpeg encode failed: %w", err)
	}

	return Thumbnail{
		Data:         buf.Bytes(),
		Width:        processed.Bounds().Dx(),
		Height:       processed.Bounds().Dy(),
		SourceFormat: strings.ToLower(format),
		SourceWidth:  cfg.Width,
		SourceHeight: cfg.Height,
	}, nil
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a < 0xFFFF {
				return true
			}
		}
	}
	return false
}
