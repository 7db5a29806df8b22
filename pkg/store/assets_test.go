package store

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavoli/pensvm/pkg/data"
)

// pagePNG renders a synthetic page scan of the given size.
func pagePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveAndListAssets(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.SavePageImage(3, 1, pagePNG(t, 40, 60))
	require.NoError(t, err)
	assert.Equal(t, "chapters/ch-03/assets/page-001.png", rel)

	_, err = s.SavePageImage(3, 2, pagePNG(t, 40, 60))
	require.NoError(t, err)
	_, err = s.SaveMarginStrip(3, 1, data.SideLeft, pagePNG(t, 10, 60))
	require.NoError(t, err)
	_, err = s.SaveIllustration(3, 1, pagePNG(t, 20, 20))
	require.NoError(t, err)

	pages, err := s.ListPageImages(3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"chapters/ch-03/assets/page-001.png",
		"chapters/ch-03/assets/page-002.png",
	}, pages)

	margins, err := s.ListMarginStrips(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"chapters/ch-03/assets/margin-001-left.png"}, margins)

	illustrations, err := s.ListIllustrations(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"chapters/ch-03/assets/illustration-001.png"}, illustrations)
}

func TestListAssetsEmptyChapter(t *testing.T) {
	s := newTestStore(t)

	pages, err := s.ListPageImages(9)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestDeleteAsset(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.SavePageImage(1, 1, pagePNG(t, 10, 10))
	require.NoError(t, err)

	require.NoError(t, s.DeleteAsset(rel))
	require.NoError(t, s.DeleteAsset(rel), "deleting a missing asset is not an error")

	pages, err := s.ListPageImages(1)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestCropMargin(t *testing.T) {
	page := pagePNG(t, 400, 200)

	strip, err := CropMargin(page, 0.25)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(strip))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestCropMarginDefaultsBadRatio(t *testing.T) {
	page := pagePNG(t, 400, 100)

	for _, ratio := range []float64{0, -0.5, 1, 2} {
		strip, err := CropMargin(page, ratio)
		require.NoError(t, err, "ratio %v", ratio)
		img, err := png.Decode(bytes.NewReader(strip))
		require.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx(), "ratio %v falls back to the default", ratio)
	}
}

func TestCropMarginDownscalesWideStrips(t *testing.T) {
	page := pagePNG(t, 4000, 100)

	strip, err := CropMargin(page, 0.5)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(strip))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestCropMarginRejectsGarbage(t *testing.T) {
	_, err := CropMargin([]byte("not an image"), 0.25)
	assert.Error(t, err)
}

func TestSaveMarginFromPage(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.SaveMarginFromPage(2, 1, data.SideLeft, pagePNG(t, 200, 300), 0.25)
	require.NoError(t, err)
	assert.Equal(t, "chapters/ch-02/assets/margin-001-left.png", rel)
}
