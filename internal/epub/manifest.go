package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const mediaTypeNCX = "application/x-dtbncx+xml"

// ManifestItem represents an item in the manifest.
// Href is relative to the package document.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// Equal reports whether two items share id, href and media type.
func (m ManifestItem) Equal(other ManifestItem) bool {
	return m.ID == other.ID && m.Href == other.Href && m.MediaType == other.MediaType
}

// HasProperty reports whether the item lists the given property.
func (m ManifestItem) HasProperty(name string) bool {
	for _, p := range m.Properties {
		if p == name {
			return true
		}
	}
	return false
}

// BookManifest owns the manifest items in document order.
type BookManifest struct {
	Items []*ManifestItem
}

// ExtractManifest streams the package document and collects every <item>.
// Missing attributes default to the empty string.
func ExtractManifest(opf string) (BookManifest, error) {
	var manifest BookManifest

	d := newDecoder(opf)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return manifest, fmt.Errorf("failed to parse manifest: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		item := &ManifestItem{}
		item.ID, _ = attr(start, "id")
		item.Href, _ = attr(start, "href")
		item.MediaType, _ = attr(start, "media-type")
		if props, ok := attr(start, "properties"); ok {
			item.Properties = strings.Fields(props)
		}
		manifest.Items = append(manifest.Items, item)
	}

	return manifest, nil
}

// SearchForItem returns the first item whose id or href contains query.
func (m BookManifest) SearchForItem(query string) (*ManifestItem, bool) {
	for _, item := range m.Items {
		if strings.Contains(item.ID, query) || strings.Contains(item.Href, query) {
			return item, true
		}
	}
	return nil, false
}

// ByID returns the item whose id equals id.
func (m BookManifest) ByID(id string) (*ManifestItem, bool) {
	for _, item := range m.Items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// ByMediaType returns the first item with the given media type.
func (m BookManifest) ByMediaType(mediaType string) (*ManifestItem, bool) {
	for _, item := range m.Items {
		if item.MediaType == mediaType {
			return item, true
		}
	}
	return nil, false
}

// ByProperty returns the first item carrying the given property.
func (m BookManifest) ByProperty(property string) (*ManifestItem, bool) {
	for _, item := range m.Items {
		if item.HasProperty(property) {
			return item, true
		}
	}
	return nil, false
}
