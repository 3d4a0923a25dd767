package epub

import "errors"

// Archive errors
var (
	ErrNotFound      = errors.New("epub: file not found")
	ErrNotAZip       = errors.New("epub: not a zip archive")
	ErrEntryNotFound = errors.New("epub: entry not found in archive")
	ErrInvalidUTF8   = errors.New("epub: entry is not valid UTF-8")
	ErrEntryTooLarge = errors.New("epub: entry exceeds maximum size")

	ErrInvalidMimetype    = errors.New("invalid mimetype: must be 'application/epub+zip'")
	ErrMimetypeCompressed = errors.New("mimetype must not be compressed")
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
)

// Structural errors
var (
	ErrContainerNotFound         = errors.New("META-INF/container.xml not found")
	ErrMalformedContainer        = errors.New("malformed container.xml")
	ErrOPFNotFound               = errors.New("OPF path not found in container.xml")
	ErrPackageDocumentUnreadable = errors.New("package document unreadable")
	ErrDanglingSpineReference    = errors.New("spine itemref has no matching manifest item")
	ErrTableOfContentsNotFound   = errors.New("table of contents not found in manifest")
	ErrTOCItemNotFound           = errors.New("path not present in table of contents")
)
