package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// SpineItem is one entry of the reading order. Item points into the
// manifest that produced the spine.
type SpineItem struct {
	ID     string
	Item   *ManifestItem
	Linear bool
}

// BookSpine is the reading order, kept exactly as the package document
// lists it.
type BookSpine struct {
	Items []SpineItem
}

// ExtractSpine streams the package document's <itemref> elements and
// resolves each idref against the manifest by exact id.
func ExtractSpine(opf string, manifest BookManifest) (BookSpine, error) {
	var spine BookSpine

	d := newDecoder(opf)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spine, fmt.Errorf("failed to parse spine: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "itemref" {
			continue
		}

		idref, ok := attr(start, "idref")
		if !ok {
			continue
		}

		item, ok := manifest.ByID(idref)
		if !ok {
			return spine, fmt.Errorf("%w: %q", ErrDanglingSpineReference, idref)
		}

		linear, _ := attr(start, "linear")
		spine.Items = append(spine.Items, SpineItem{
			ID:     idref,
			Item:   item,
			Linear: linear != "no",
		})
	}

	return spine, nil
}
