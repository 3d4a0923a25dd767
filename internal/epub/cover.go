package epub

import (
	"path"
	"strings"
)

// CoverInfo holds information about the detected cover image.
type CoverInfo struct {
	Item            *ManifestItem
	DetectionMethod string // "properties", "meta", "filename"
}

// DetectCover finds the cover image in a manifest.
// Methods are tried in priority order:
//  1. properties="cover-image" (EPUB 3.0)
//  2. meta name="cover" (EPUB 2.0)
//  3. filename pattern (basename contains "cover", case-insensitive, SVG excluded)
func DetectCover(manifest BookManifest, md BookMetadata) (CoverInfo, bool) {
	for _, item := range manifest.Items {
		if item.HasProperty("cover-image") {
			return CoverInfo{Item: item, DetectionMethod: "properties"}, true
		}
	}

	if md.CoverID != "" {
		if item, ok := manifest.ByID(md.CoverID); ok && isImageMediaType(item.MediaType) {
			return CoverInfo{Item: item, DetectionMethod: "meta"}, true
		}
	}

	for _, item := range manifest.Items {
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if strings.Contains(strings.ToLower(path.Base(item.Href)), "cover") {
			return CoverInfo{Item: item, DetectionMethod: "filename"}, true
		}
	}

	return CoverInfo{}, false
}

// Cover returns the book's cover image, if one can be detected.
func (b *Book) Cover() (CoverInfo, bool) {
	return DetectCover(b.Manifest, b.Metadata)
}

// isImageMediaType checks if a media type is a raster image (SVG excluded).
func isImageMediaType(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
