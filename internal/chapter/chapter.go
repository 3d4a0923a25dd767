package chapter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuanying/epubreader/internal/epub"
)

// BodyTag is the element FindBody looks for.
const BodyTag = "body"

// Mode selects how chapter markup is reconstructed.
type Mode int

const (
	// ModeXHTML parses chapters as XML and rejects unbalanced markup.
	ModeXHTML Mode = iota
	// ModeHTML parses chapters with a lenient HTML tokenizer.
	ModeHTML
	// ModeAuto tries XHTML first and falls back to HTML.
	ModeAuto
)

// ParseMode converts a configuration value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xhtml":
		return ModeXHTML, nil
	case "html":
		return ModeHTML, nil
	case "auto":
		return ModeAuto, nil
	}
	return ModeXHTML, fmt.Errorf("unknown parser mode %q (want xhtml, html or auto)", s)
}

func (m Mode) String() string {
	switch m {
	case ModeHTML:
		return "html"
	case ModeAuto:
		return "auto"
	default:
		return "xhtml"
	}
}

// ContentSource fetches the raw text of a table-of-contents entry.
// *epub.Book implements it.
type ContentSource interface {
	ContentByTOCItem(item epub.TableOfContentsItem) (string, error)
}

// Chapter is one table-of-contents entry with its reconstructed markup.
type Chapter struct {
	Path  string
	Label string
	Tree  *Tree

	raw    string
	logger *slog.Logger
}

// Option configures a Chapter.
type Option func(*Chapter)

// WithLogger sets the logger used when reconstruction falls back to the
// lenient parser.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chapter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a chapter from raw markup.
func New(path, label, raw string, mode Mode, opts ...Option) (*Chapter, error) {
	c := &Chapter{Path: path, Label: label, raw: raw, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Rebuild(mode); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the content of item from src and reconstructs it. Content
// supplied on the item itself is used without touching src.
func Load(src ContentSource, item epub.TableOfContentsItem, mode Mode, opts ...Option) (*Chapter, error) {
	var raw string
	if item.Content != nil {
		raw = *item.Content
	} else {
		var err error
		if raw, err = src.ContentByTOCItem(item); err != nil {
			return nil, fmt.Errorf("failed to load chapter %s: %w", item.Path, err)
		}
	}

	c, err := New(item.Path, item.Label, raw, mode, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct chapter %s: %w", item.Path, err)
	}
	return c, nil
}

// Rebuild reconstructs the tree from the retained raw content.
func (c *Chapter) Rebuild(mode Mode) error {
	var (
		tree *Tree
		err  error
	)
	switch mode {
	case ModeHTML:
		tree, err = ParseHTML(c.raw)
	case ModeAuto:
		tree, err = Parse(c.raw)
		if errors.Is(err, ErrUnbalancedMarkup) || errors.Is(err, ErrMalformedMarkup) {
			c.log().Debug("falling back to HTML reconstruction", "chapter", c.Path, "error", err)
			tree, err = ParseHTML(c.raw)
		}
	default:
		tree, err = Parse(c.raw)
	}
	if err != nil {
		return err
	}
	c.Tree = tree
	return nil
}

func (c *Chapter) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Equal compares chapters by path and label; content is ignored.
func (c *Chapter) Equal(other *Chapter) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Path == other.Path && c.Label == other.Label
}

// RawContent returns the markup the chapter was built from.
func (c *Chapter) RawContent() string {
	return c.raw
}

// Root returns the synthetic root of the chapter tree.
func (c *Chapter) Root() Node {
	return c.Tree.Root()
}

// Body returns the chapter's <body> element.
func (c *Chapter) Body() (Node, bool) {
	return FindBody(c.Tree)
}

// FindBody looks for a body element among the root's children and
// grandchildren, first child first.
func FindBody(t *Tree) (Node, bool) {
	for _, child := range t.Root().Children() {
		if child.Tag() == BodyTag {
			return child, true
		}
		for _, grandchild := range child.Children() {
			if grandchild.Tag() == BodyTag {
				return grandchild, true
			}
		}
	}
	return Node{}, false
}
