package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// unknown is shown for descriptive fields a book does not carry.
const unknown = "Unknown"

// BookMetadata holds the descriptive fields of the package document.
// A nil field was not present in the source.
type BookMetadata struct {
	Title      *string
	Creator    *string
	Identifier *string
	Language   *string
	Publisher  *string
	Rights     *string

	// CoverID is the manifest id named by <meta name="cover">, if any.
	CoverID string
}

// DisplayTitle returns the title, or "Unknown" when absent.
func (m BookMetadata) DisplayTitle() string {
	return valueOr(m.Title, unknown)
}

// DisplayCreator returns the creator, or "Unknown" when absent.
func (m BookMetadata) DisplayCreator() string {
	return valueOr(m.Creator, unknown)
}

// ExtractMetadata streams the package document and collects the Dublin
// Core fields. Repeated fields keep the last value seen.
func ExtractMetadata(opf string) (BookMetadata, error) {
	var md BookMetadata
	var current **string

	d := newDecoder(opf)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return md, fmt.Errorf("failed to parse metadata: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			current = md.field(t.Name)
			if current != nil && *current == nil {
				empty := ""
				*current = &empty
			}
			if t.Name.Local == "meta" {
				if name, _ := attr(t, "name"); name == "cover" {
					md.CoverID, _ = attr(t, "content")
				}
			}
		case xml.CharData:
			if current == nil {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			*current = &text
		case xml.EndElement:
			current = nil
		}
	}

	return md, nil
}

// field maps a Dublin Core element name to the metadata slot it fills.
func (m *BookMetadata) field(n xml.Name) **string {
	if !inNamespace(n, nsDublinCore, "dc") {
		return nil
	}
	switch n.Local {
	case "title":
		return &m.Title
	case "creator":
		return &m.Creator
	case "identifier":
		return &m.Identifier
	case "language":
		return &m.Language
	case "publisher":
		return &m.Publisher
	case "rights":
		return &m.Rights
	}
	return nil
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
