package epub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// containerPath locates the package document, per EPUB 3.3 §4.2.6.3.1.
const containerPath = "META-INF/container.xml"

// rootfileXPath selects the first rootfile carrying a full-path,
// regardless of the container namespace.
const rootfileXPath = "//*[local-name()='rootfile'][@full-path]"

// PackagePath reads container.xml and returns the archive path of the
// package document.
func (a *Archive) PackagePath() (string, error) {
	container, err := a.ReadEntry(containerPath)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return "", ErrContainerNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	return parseContainer(container)
}

// parseContainer extracts the package document path from container.xml.
func parseContainer(content string) (string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	node, err := xmlquery.Query(doc, rootfileXPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	if node == nil {
		return "", ErrOPFNotFound
	}

	path := normalizePath(strings.TrimSpace(node.SelectAttr("full-path")))
	if path == "" {
		return "", ErrOPFNotFound
	}
	return path, nil
}

// contentRootOf returns the directory holding the package document, or ""
// when it sits at the archive root.
func contentRootOf(opfPath string) string {
	i := strings.LastIndex(opfPath, "/")
	if i < 0 {
		return ""
	}
	return opfPath[:i]
}
