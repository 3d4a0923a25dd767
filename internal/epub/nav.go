package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const navTypeTOC = "toc"

// parseNav reads an EPUB 3 navigation document. Links are collected from
// the first element whose epub:type names "toc"; parsing stops when that
// element closes.
func parseNav(content, contentRoot string) (TableOfContents, error) {
	var (
		toc        TableOfContents
		depth      int
		scopeDepth int
		linkDepth  int
		label      strings.Builder
		href       string
	)

	d := newDecoder(content)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return toc, fmt.Errorf("failed to parse navigation document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if scopeDepth == 0 {
				if isTOCNav(t) {
					scopeDepth = depth
				}
				continue
			}
			if linkDepth == 0 && t.Name.Local == "a" {
				if h, ok := attr(t, "href"); ok {
					href = joinContentPath(contentRoot, h)
					linkDepth = depth
					label.Reset()
				}
			}
		case xml.CharData:
			if linkDepth > 0 {
				label.Write(t)
			}
		case xml.EndElement:
			if scopeDepth > 0 && depth == scopeDepth {
				return toc, nil
			}
			if linkDepth > 0 && depth == linkDepth {
				toc.Items = append(toc.Items, NewTableOfContentsItem(href, collapseSpace(label.String()), nil))
				linkDepth = 0
			}
			depth--
		}
	}

	return toc, nil
}

// isTOCNav reports whether the element carries epub:type="toc".
func isTOCNav(e xml.StartElement) bool {
	for _, a := range e.Attr {
		if a.Name.Local != "type" || !inNamespace(a.Name, nsOPS, "epub") {
			continue
		}
		for _, token := range strings.Fields(a.Value) {
			if token == navTypeTOC {
				return true
			}
		}
	}
	return false
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
