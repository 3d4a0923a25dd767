package epub

import (
	"errors"
	"fmt"
	"log/slog"
)

// Book is a fully parsed EPUB. It keeps the archive open for on-demand
// chapter reads until Close is called.
type Book struct {
	Metadata        BookMetadata
	Path            string
	Spine           BookSpine
	Manifest        BookManifest
	TableOfContents TableOfContents

	// ContentRoot is the archive directory holding the package document.
	ContentRoot string
	// OPFPath is the archive path of the package document.
	OPFPath string

	archive *Archive
	logger  *slog.Logger
}

// Option configures ReadEPUB.
type Option func(*options)

type options struct {
	strict bool
	logger *slog.Logger
}

// WithStrict makes container-level violations such as a bad mimetype
// entry fatal instead of logged.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger used for recoverable oddities.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ReadEPUB opens the EPUB at path and parses its container, package
// document and table of contents.
func ReadEPUB(path string, opts ...Option) (*Book, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	archive, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}

	book, err := assemble(archive, path, o)
	if err != nil {
		archive.Close()
		return nil, err
	}
	return book, nil
}

func assemble(archive *Archive, path string, o options) (*Book, error) {
	logger := o.logger.With("book", path)

	if err := archive.ValidateMimetype(); err != nil {
		if o.strict {
			return nil, err
		}
		logger.Warn("ignoring invalid mimetype entry", "error", err)
	}

	opfPath, err := archive.PackagePath()
	if err != nil {
		return nil, err
	}

	opf, err := archive.ReadEntry(opfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPackageDocumentUnreadable, opfPath, err)
	}

	book := &Book{
		Path:        path,
		OPFPath:     opfPath,
		ContentRoot: contentRootOf(opfPath),
		archive:     archive,
		logger:      logger,
	}

	if book.Metadata, err = ExtractMetadata(opf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackageDocumentUnreadable, err)
	}
	if book.Manifest, err = ExtractManifest(opf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackageDocumentUnreadable, err)
	}
	if book.Spine, err = ExtractSpine(opf, book.Manifest); err != nil {
		if errors.Is(err, ErrDanglingSpineReference) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPackageDocumentUnreadable, err)
	}

	if book.TableOfContents, err = book.readTableOfContents(); err != nil {
		return nil, err
	}

	logger.Debug("book parsed",
		"opf", opfPath,
		"manifest_items", len(book.Manifest.Items),
		"spine_items", len(book.Spine.Items),
		"toc_items", len(book.TableOfContents.Items),
	)

	return book, nil
}

const (
	// tocQuery is the loose manifest lookup for the navigation document.
	tocQuery = "toc"
	// navProperty marks the EPUB 3 navigation document.
	navProperty = "nav"
)

func (b *Book) readTableOfContents() (TableOfContents, error) {
	item, ok := b.Manifest.SearchForItem(tocQuery)
	if !ok {
		item, ok = b.Manifest.ByMediaType(mediaTypeNCX)
	}
	if !ok {
		item, ok = b.Manifest.ByProperty(navProperty)
	}
	if !ok {
		return TableOfContents{}, ErrTableOfContentsNotFound
	}

	tocPath := joinContentPath(b.ContentRoot, item.Href)
	content, err := b.archive.ReadEntry(tocPath)
	if err != nil {
		return TableOfContents{}, fmt.Errorf("failed to read table of contents: %w", err)
	}

	toc, err := ParseTableOfContents(tocPath, content, b.ContentRoot)
	if err != nil {
		return TableOfContents{}, err
	}
	b.logger.Debug("table of contents parsed", "path", tocPath, "format", detectTOCFormat(tocPath).String())
	return toc, nil
}

// ContentByTOCItem returns the text of the document an entry points at.
// The entry path is already prefixed with the content root.
func (b *Book) ContentByTOCItem(item TableOfContentsItem) (string, error) {
	return b.archive.ReadEntry(item.Path)
}

// Contents returns the parsed table of contents.
func (b *Book) Contents() TableOfContents {
	return b.TableOfContents
}

// ReadResource returns the raw bytes of a manifest resource, given its
// path relative to the content root.
func (b *Book) ReadResource(href string) ([]byte, error) {
	return b.archive.ReadBytes(joinContentPath(b.ContentRoot, href))
}

// Close releases the underlying archive.
func (b *Book) Close() error {
	return b.archive.Close()
}
