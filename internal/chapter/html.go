package chapter

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never have content or an end tag in HTML.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// ParseHTML reconstructs a chapter from markup that is not well-formed
// XML. Void elements close themselves, an end tag closes the nearest open
// element with the same name, stray end tags are dropped and elements
// left open at the end are closed implicitly.
func ParseHTML(markup string) (*Tree, error) {
	tree := newTree()
	cursor := tree.Root().id

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return tree, nil
			}
			return nil, markupError(z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			child := tree.appendChild(cursor, localName(tok.Data), htmlClasses(tok.Attr))
			if tt == html.StartTagToken && !voidElements[tok.DataAtom] {
				cursor = child
			}
		case html.EndTagToken:
			tok := z.Token()
			if open, ok := tree.nearestOpen(cursor, localName(tok.Data)); ok {
				cursor, _ = tree.up(open)
			}
		case html.TextToken:
			tree.appendText(cursor, cleanText(string(z.Text())))
		}
	}
}

// nearestOpen walks from cursor towards the root looking for an open
// element tagged tag.
func (t *Tree) nearestOpen(cursor NodeID, tag string) (NodeID, bool) {
	for id := cursor; id != noParent && id != 0; id = t.nodes[id].parent {
		if t.nodes[id].tag == tag {
			return id, true
		}
	}
	return noParent, false
}

// localName drops a namespace prefix such as "epub:" from a tag name.
func localName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func htmlClasses(attrs []html.Attribute) []string {
	for _, a := range attrs {
		if a.Namespace == "" && a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}
