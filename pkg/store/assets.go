package store

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Asset filename patterns. Each kind is keyed by chapter number and a
// zero-padded sequential index; margins additionally carry a side.
const (
	pagePrefix         = "page-"
	marginPrefix       = "margin-"
	illustrationPrefix = "illustration-"
	assetExt           = ".png"
)

func assetsDir(chapter int) string {
	return path.Join(chapterDir(chapter), "assets")
}

// SavePageImage stores a full-page image and returns its store-relative
// path.
func (s *Store) SavePageImage(chapter, index int, img []byte) (string, error) {
	name := fmt.Sprintf("%s%03d%s", pagePrefix, index, assetExt)
	return s.saveAsset(chapter, name, img)
}

// SaveMarginStrip stores a margin strip for one side of a page.
func (s *Store) SaveMarginStrip(chapter, index int, side string, img []byte) (string, error) {
	name := fmt.Sprintf("%s%03d-%s%s", marginPrefix, index, side, assetExt)
	return s.saveAsset(chapter, name, img)
}

// SaveIllustration stores an inline illustration image.
func (s *Store) SaveIllustration(chapter, index int, img []byte) (string, error) {
	name := fmt.Sprintf("%s%03d%s", illustrationPrefix, index, assetExt)
	return s.saveAsset(chapter, name, img)
}

func (s *Store) saveAsset(chapter int, name string, img []byte) (string, error) {
	rel := path.Join(assetsDir(chapter), name)
	if err := os.MkdirAll(filepath.Dir(s.abs(rel)), 0755); err != nil {
		return "", fmt.Errorf("failed to create assets directory: %w", err)
	}
	if err := WriteFileAtomic(s.abs(rel), img); err != nil {
		return "", fmt.Errorf("failed to save asset %s: %w", name, err)
	}
	return rel, nil
}

// ListPageImages enumerates a chapter's page images in sorted order.
func (s *Store) ListPageImages(chapter int) ([]string, error) {
	return s.listAssets(chapter, pagePrefix)
}

// ListMarginStrips enumerates a chapter's margin strips in sorted order.
func (s *Store) ListMarginStrips(chapter int) ([]string, error) {
	return s.listAssets(chapter, marginPrefix)
}

// ListIllustrations enumerates a chapter's illustrations in sorted order.
func (s *Store) ListIllustrations(chapter int) ([]string, error) {
	return s.listAssets(chapter, illustrationPrefix)
}

// listAssets enumerates the assets directory filtered by filename prefix
// and extension. A chapter without an assets directory has no assets.
func (s *Store) listAssets(chapter int, prefix string) ([]string, error) {
	dir := s.abs(assetsDir(chapter))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, assetExt) {
			out = append(out, path.Join(assetsDir(chapter), name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// DeleteAsset removes a single asset by its store-relative path.
func (s *Store) DeleteAsset(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset %s: %w", rel, err)
	}
	return nil
}
