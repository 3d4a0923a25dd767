package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseNCX reads an EPUB 2 navigation control document. Entries are taken
// from the <navMap> scope only; nested navPoints are flattened in document
// order and parsing stops once the navMap closes.
func parseNCX(content, contentRoot string) (TableOfContents, error) {
	var (
		toc        TableOfContents
		depth      int
		scopeDepth int
		inLabel    bool
		inText     bool
		label      strings.Builder
		href       string
		pending    bool
	)

	commit := func() {
		if pending {
			toc.Items = append(toc.Items, NewTableOfContentsItem(href, collapseSpace(label.String()), nil))
		}
		pending = false
		href = ""
		label.Reset()
	}

	d := newDecoder(content)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return toc, fmt.Errorf("failed to parse NCX: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if scopeDepth == 0 {
				if t.Name.Local == "navMap" {
					scopeDepth = depth
				}
				continue
			}
			switch t.Name.Local {
			case "navPoint":
				commit()
			case "navLabel":
				inLabel = true
			case "text":
				inText = inLabel
			case "content":
				if src, ok := attr(t, "src"); ok {
					href = joinContentPath(contentRoot, src)
					pending = true
				}
			}
		case xml.CharData:
			if inText {
				label.Write(t)
			}
		case xml.EndElement:
			if scopeDepth > 0 && depth == scopeDepth {
				commit()
				return toc, nil
			}
			depth--
			switch t.Name.Local {
			case "navPoint":
				commit()
			case "navLabel":
				inLabel = false
			case "text":
				inText = false
			}
		}
	}

	commit()
	return toc, nil
}
