package epub

import (
	"fmt"
	"strings"
)

const ncxExtension = ".ncx"

// TableOfContentsItem is one navigation entry. Path is relative to the
// archive root and never carries a fragment; Anchor holds the fragment,
// empty when there is none.
type TableOfContentsItem struct {
	Path   string
	Anchor string
	Label  string

	// Content, when set, is used instead of reading Path from the archive.
	Content *string
}

// NewTableOfContentsItem splits an optional "#anchor" suffix off path.
// "x.xhtml#" yields no anchor.
func NewTableOfContentsItem(path, label string, content *string) TableOfContentsItem {
	p, anchor := splitFragment(path)
	return TableOfContentsItem{
		Path:    p,
		Anchor:  anchor,
		Label:   label,
		Content: content,
	}
}

// HasAnchor reports whether the entry targets a fragment.
func (t TableOfContentsItem) HasAnchor() bool {
	return t.Anchor != ""
}

// Equal compares entries by path and label only.
func (t TableOfContentsItem) Equal(other TableOfContentsItem) bool {
	return t.Path == other.Path && t.Label == other.Label
}

// TableOfContents is the flat, ordered list of navigation entries.
type TableOfContents struct {
	Items []TableOfContentsItem
}

type tocFormat int

const (
	formatNCX tocFormat = iota // EPUB 2
	formatNav                  // EPUB 3
)

func (f tocFormat) String() string {
	if f == formatNCX {
		return "ncx"
	}
	return "nav"
}

func detectTOCFormat(docPath string) tocFormat {
	if strings.HasSuffix(strings.ToLower(docPath), ncxExtension) {
		return formatNCX
	}
	return formatNav
}

// ParseTableOfContents parses a TOC document located at docPath. Entry
// hrefs are prefixed with contentRoot.
func ParseTableOfContents(docPath, content, contentRoot string) (TableOfContents, error) {
	switch detectTOCFormat(docPath) {
	case formatNCX:
		return parseNCX(content, contentRoot)
	default:
		return parseNav(content, contentRoot)
	}
}

// SearchForItem returns the first entry whose path equals path.
func (t TableOfContents) SearchForItem(path string) (TableOfContentsItem, bool) {
	for _, item := range t.Items {
		if item.Path == path {
			return item, true
		}
	}
	return TableOfContentsItem{}, false
}

// NextRelative returns the entry after the one at path. ok is false when
// that entry is the last one.
func (t TableOfContents) NextRelative(path string) (TableOfContentsItem, bool, error) {
	current, found := t.SearchForItem(path)
	if !found {
		return TableOfContentsItem{}, false, fmt.Errorf("%w: %s", ErrTOCItemNotFound, path)
	}
	return t.NextAfter(current)
}

// PreviousRelative returns the entry before the one at path. ok is false
// when that entry is the first one.
func (t TableOfContents) PreviousRelative(path string) (TableOfContentsItem, bool, error) {
	current, found := t.SearchForItem(path)
	if !found {
		return TableOfContentsItem{}, false, fmt.Errorf("%w: %s", ErrTOCItemNotFound, path)
	}
	return t.PreviousBefore(current)
}

// NextAfter returns the entry following the first entry equal to current.
func (t TableOfContents) NextAfter(current TableOfContentsItem) (TableOfContentsItem, bool, error) {
	i := t.IndexOf(current)
	if i < 0 {
		return TableOfContentsItem{}, false, fmt.Errorf("%w: %s", ErrTOCItemNotFound, current.Path)
	}
	if i == len(t.Items)-1 {
		return TableOfContentsItem{}, false, nil
	}
	return t.Items[i+1], true, nil
}

// PreviousBefore returns the entry preceding the first entry equal to
// current.
func (t TableOfContents) PreviousBefore(current TableOfContentsItem) (TableOfContentsItem, bool, error) {
	i := t.IndexOf(current)
	if i < 0 {
		return TableOfContentsItem{}, false, fmt.Errorf("%w: %s", ErrTOCItemNotFound, current.Path)
	}
	if i == 0 {
		return TableOfContentsItem{}, false, nil
	}
	return t.Items[i-1], true, nil
}

// IndexOf returns the index of the first entry equal to item, or -1.
func (t TableOfContents) IndexOf(item TableOfContentsItem) int {
	for i, candidate := range t.Items {
		if candidate.Equal(item) {
			return i
		}
	}
	return -1
}

// splitFragment splits a source path into the path and fragment identifier.
func splitFragment(src string) (path, fragment string) {
	path, fragment, _ = strings.Cut(src, "#")
	return path, fragment
}

// joinContentPath prefixes href with the content root using a forward
// slash, as archive entry names do on every platform.
func joinContentPath(root, href string) string {
	href = strings.TrimPrefix(href, "./")
	if root == "" || root == "." {
		return href
	}
	return strings.TrimSuffix(root, "/") + "/" + href
}
