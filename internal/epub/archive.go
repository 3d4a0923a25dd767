package epub

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"unicode/utf8"
)

// maxEntrySize caps the decompressed size of a single archive entry.
const maxEntrySize int64 = 256 * 1024 * 1024

const epubMimetype = "application/epub+zip"

// Archive provides access to the entries of an EPUB container.
// Reads are serialized; the entry index never changes after OpenArchive.
type Archive struct {
	mu        sync.Mutex
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
}

// OpenArchive opens a ZIP file and indexes its entries by normalized name.
func OpenArchive(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, zip.ErrFormat), errors.Is(err, zip.ErrAlgorithm), errors.Is(err, zip.ErrChecksum):
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAZip, path, err)
		}
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	a := &Archive{
		zipReader: zr,
		files:     make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		a.files[normalizePath(f.Name)] = f
	}

	return a, nil
}

// Close closes the underlying ZIP reader.
func (a *Archive) Close() error {
	return a.zipReader.Close()
}

// Names returns the normalized names of all entries in archive order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.zipReader.File))
	for _, f := range a.zipReader.File {
		names = append(names, normalizePath(f.Name))
	}
	return names
}

// Has reports whether the archive contains the named entry.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[normalizePath(name)]
	return ok
}

// ReadEntry returns the decoded text of one archive entry. Documents that
// are not UTF-8 must declare their encoding.
func (a *Archive) ReadEntry(name string) (string, error) {
	data, err := a.ReadBytes(name)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	text, ok := transcode(data)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidUTF8, name)
	}
	return text, nil
}

// ReadBytes returns the raw bytes of one archive entry.
func (a *Archive) ReadBytes(name string) ([]byte, error) {
	name = normalizePath(name)
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	if int64(len(data)) > maxEntrySize {
		return nil, fmt.Errorf("%w: %s", ErrEntryTooLarge, name)
	}
	return data, nil
}

// ValidateMimetype checks that the mimetype entry exists, is stored
// uncompressed and names the EPUB media type.
func (a *Archive) ValidateMimetype() error {
	f, ok := a.files["mimetype"]
	if !ok {
		return ErrMimetypeNotFound
	}

	if f.Method != zip.Store {
		return ErrMimetypeCompressed
	}

	content, err := a.ReadBytes("mimetype")
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}

	if strings.TrimSpace(string(content)) != epubMimetype {
		return ErrInvalidMimetype
	}

	return nil
}

// normalizePath normalizes archive entry names (removes ./ prefix)
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "./")
}
