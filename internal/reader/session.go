// Package reader holds a reading session over a parsed book: the chapter
// currently shown and sequential movement through the table of contents.
package reader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"

	"github.com/yuanying/epubreader/internal/chapter"
	"github.com/yuanying/epubreader/internal/epub"
)

// ErrEmptyTableOfContents is returned when a session is started on a book
// without navigation entries.
var ErrEmptyTableOfContents = errors.New("reader: table of contents is empty")

// Book is what a session needs from a parsed EPUB.
type Book interface {
	chapter.ContentSource
	Contents() epub.TableOfContents
}

// Session tracks the chapter being read. It is not safe for concurrent
// use; run it on one goroutine and hand the resulting chapters out.
type Session struct {
	id      string
	book    Book
	toc     epub.TableOfContents
	current *chapter.Chapter
	item    epub.TableOfContentsItem
	index   int

	mode   chapter.Mode
	cache  *lru.Cache
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheSize keeps up to n recently visited chapters in memory.
// Zero, the default, rebuilds every chapter on each visit.
func WithCacheSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.cache = lru.New(n)
		} else {
			s.cache = nil
		}
	}
}

// WithMode selects how chapter markup is reconstructed.
func WithMode(mode chapter.Mode) Option {
	return func(s *Session) { s.mode = mode }
}

// New starts a session on the first table-of-contents entry.
func New(book Book, opts ...Option) (*Session, error) {
	s := &Session{
		id:     uuid.NewString(),
		book:   book,
		toc:    book.Contents(),
		mode:   chapter.ModeXHTML,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)

	if len(s.toc.Items) == 0 {
		return nil, ErrEmptyTableOfContents
	}

	first := s.toc.Items[0]
	c, err := s.load(first)
	if err != nil {
		return nil, err
	}
	s.current, s.item, s.index = c, first, 0
	s.logger.Debug("session started", "path", first.Path, "label", first.Label, "entries", len(s.toc.Items))
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// CurrentChapter returns the chapter being read.
func (s *Session) CurrentChapter() *chapter.Chapter {
	return s.current
}

// CurrentItem returns the table-of-contents entry being read.
func (s *Session) CurrentItem() epub.TableOfContentsItem {
	return s.item
}

// Position returns the index of the current entry and the number of
// entries.
func (s *Session) Position() (index, total int) {
	return s.index, len(s.toc.Items)
}

// MoveToNextChapter advances to the next entry. At the last entry it does
// nothing. On error the current chapter is left unchanged.
func (s *Session) MoveToNextChapter() error {
	if s.index == len(s.toc.Items)-1 {
		s.logger.Debug("already at last chapter", "path", s.item.Path)
		return nil
	}
	return s.moveTo(s.index + 1)
}

// MoveToPreviousChapter steps back to the previous entry. At the first
// entry it does nothing. On error the current chapter is left unchanged.
func (s *Session) MoveToPreviousChapter() error {
	if s.index == 0 {
		s.logger.Debug("already at first chapter", "path", s.item.Path)
		return nil
	}
	return s.moveTo(s.index - 1)
}

// moveTo loads the entry at index i. Entries are addressed by position, so
// duplicate entries are each visited in turn.
func (s *Session) moveTo(i int) error {
	item := s.toc.Items[i]
	c, err := s.load(item)
	if err != nil {
		return err
	}
	s.current, s.item, s.index = c, item, i
	s.logger.Debug("moved to chapter", "path", item.Path, "label", item.Label, "index", i)
	return nil
}

func (s *Session) load(item epub.TableOfContentsItem) (*chapter.Chapter, error) {
	key := cacheKey(item)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(*chapter.Chapter), nil
		}
	}

	c, err := chapter.Load(s.book, item, s.mode, chapter.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}

	if s.cache != nil {
		s.cache.Add(key, c)
	}
	return c, nil
}

type chapterKey struct {
	path  string
	label string
}

func cacheKey(item epub.TableOfContentsItem) chapterKey {
	return chapterKey{path: item.Path, label: item.Label}
}
