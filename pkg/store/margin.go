package store

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultMarginRatio is the fraction of a page image's width taken by the
// margin strip when no ratio is configured.
const DefaultMarginRatio = 0.25

// maxMarginWidth caps the stored strip width; wider crops are downscaled.
const maxMarginWidth = 600

// CropMargin cuts the left-hand slice of a page image at the given width
// ratio and re-encodes it as PNG. Oversized strips are downscaled with
// CatmullRom interpolation.
func CropMargin(page []byte, ratio float64) ([]byte, error) {
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultMarginRatio
	}

	img, _, err := image.Decode(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	bounds := img.Bounds()
	stripWidth := int(float64(bounds.Dx()) * ratio)
	if stripWidth < 1 {
		return nil, fmt.Errorf("page image too narrow for margin crop")
	}

	crop := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+stripWidth, bounds.Max.Y)
	strip := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Copy(strip, image.Point{}, img, crop, draw.Src, nil)

	var out image.Image = strip
	if strip.Bounds().Dx() > maxMarginWidth {
		scale := float64(maxMarginWidth) / float64(strip.Bounds().Dx())
		h := int(float64(strip.Bounds().Dy()) * scale)
		scaled := image.NewRGBA(image.Rect(0, 0, maxMarginWidth, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), strip, strip.Bounds(), draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode margin strip: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveMarginFromPage crops the left margin strip from a page image and
// delegates to SaveMarginStrip. The strip feeds the page's margin fields.
func (s *Store) SaveMarginFromPage(chapter, index int, side string, page []byte, ratio float64) (string, error) {
	strip, err := CropMargin(page, ratio)
	if err != nil {
		return "", err
	}
	return s.SaveMarginStrip(chapter, index, side, strip)
}
