package chapter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// softHyphen marks optional line breaks in some EPUBs; it never reaches
// extracted text.
const softHyphen = "\u00ad"

// Parse reconstructs the element tree of an XHTML chapter. Text is kept
// exactly as it appears between tags, whitespace included, and appended to
// the innermost open element.
func Parse(xhtml string) (*Tree, error) {
	tree := newTree()
	cursor := tree.Root().id

	d := xml.NewDecoder(strings.NewReader(strings.TrimPrefix(xhtml, "\ufeff")))
	d.Entity = xml.HTMLEntity
	d.CharsetReader = utf8Reader

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, markupError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			cursor = tree.appendChild(cursor, t.Name.Local, classesOf(t.Attr))
		case xml.CharData:
			tree.appendText(cursor, cleanText(string(t)))
		case xml.EndElement:
			if cursor, err = tree.up(cursor); err != nil {
				return nil, fmt.Errorf("%w: </%s>", err, t.Name.Local)
			}
		}
	}

	if cursor != tree.Root().id {
		return nil, fmt.Errorf("%w: <%s> not closed", ErrUnbalancedMarkup, tree.nodes[cursor].tag)
	}
	return tree, nil
}

// utf8Reader accepts any declared encoding. Chapter markup reaches Parse as
// a Go string, already decoded to UTF-8 by the archive.
func utf8Reader(_ string, r io.Reader) (io.Reader, error) {
	return r, nil
}

// markupError classifies a decoder failure.
func markupError(err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		msg := syntax.Msg
		if strings.Contains(msg, "end element") || strings.Contains(msg, "closed by") || strings.Contains(msg, "unexpected EOF") {
			return fmt.Errorf("%w: line %d: %s", ErrUnbalancedMarkup, syntax.Line, msg)
		}
		return fmt.Errorf("%w: line %d: %s", ErrMalformedMarkup, syntax.Line, msg)
	}
	return fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
}

func classesOf(attrs []xml.Attr) []string {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "class" {
			return strings.Fields(a.Value)
		}
	}
	return nil
}

func cleanText(s string) string {
	return strings.ReplaceAll(s, softHyphen, "")
}
